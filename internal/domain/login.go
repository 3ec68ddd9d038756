package domain

import "errors"

// Credentials is the first-step login form. It only lives for one submission.
type Credentials struct {
	UserName string `json:"userName" validate:"required,min=6,max=20,username"`
	Password string `json:"password" validate:"required,min=6"`
}

// OtpCode is the second-step login form.
type OtpCode struct {
	OTP string `json:"otp" validate:"required,otp"`
}

// FlowState is the position of a login attempt. It only moves forward; the
// way back to AwaitingCredentials is an explicit restart.
type FlowState int

const (
	AwaitingCredentials FlowState = iota
	AwaitingOtp
	Authenticated
)

func (s FlowState) String() string {
	switch s {
	case AwaitingCredentials:
		return "login"
	case AwaitingOtp:
		return "verify"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// ErrChallengeConsumed is returned when a token is used twice.
var ErrChallengeConsumed = errors.New("challenge token already consumed")

// ChallengeToken is the proof-of-humanity token issued by the bot-challenge
// widget. It may be consumed once; Reset discards it so a fresh one is needed.
type ChallengeToken struct {
	value    string
	consumed bool
}

func NewChallengeToken(value string) ChallengeToken {
	return ChallengeToken{value: value}
}

// Valid reports whether the token is present and unconsumed.
func (t *ChallengeToken) Valid() bool {
	return t != nil && t.value != "" && !t.consumed
}

// Consume returns the token value and marks it used.
func (t *ChallengeToken) Consume() (string, error) {
	if !t.Valid() {
		return "", ErrChallengeConsumed
	}
	t.consumed = true
	return t.value, nil
}

// Reset forgets the token entirely.
func (t *ChallengeToken) Reset() {
	t.value = ""
	t.consumed = false
}
