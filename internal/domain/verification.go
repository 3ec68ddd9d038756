package domain

// VerificationLoginOTP is the sort key of OTPs issued by the admin login flow.
const VerificationLoginOTP = "login_otp"

// OTPVerification stores an issued one-time password.
// PK: email, SK: type.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type OTPVerification struct {
	Email     string `json:"email" dynamodbav:"email"`
	Type      string `json:"type" dynamodbav:"type"`
	Code      string `json:"code" dynamodbav:"code"`
	IssuedAt  int64  `json:"issued_at" dynamodbav:"issued_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
	Attempts  int    `json:"attempts" dynamodbav:"attempts"`
}
