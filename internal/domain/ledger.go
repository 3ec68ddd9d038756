package domain

import "time"

// Withdrawal statuses.
const (
	WithdrawalPending  = "PENDING"
	WithdrawalApproved = "APPROVED"
	WithdrawalRejected = "REJECTED"
)

type Withdrawal struct {
	WithdrawalID string    `json:"id" dynamodbav:"withdrawal_id"`
	MemberID     string    `json:"member_id" dynamodbav:"member_id"`
	Amount       string    `json:"amount" dynamodbav:"amount"` // decimal string, never float
	Method       string    `json:"method" dynamodbav:"method"`
	Status       string    `json:"status" dynamodbav:"status"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

type Merchant struct {
	MerchantID    string    `json:"id" dynamodbav:"merchant_id"`
	AccountName   string    `json:"account_name" dynamodbav:"account_name"`
	AccountNumber string    `json:"account_number" dynamodbav:"account_number"`
	BankName      string    `json:"bank_name" dynamodbav:"bank_name"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
}
