package login

import "github.com/pr1me-admin/internal/domain"

// Error is a login failure whose message is safe to show the user. Kind is
// one of the domain login sentinels and is reachable through errors.Is.
type Error struct {
	Message string
	Kind    error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrChallengeRequired  = &Error{"Captcha is required.", domain.ErrPrecondition}
	ErrChallengeFailed    = &Error{"Captcha verification failed. Please try again.", domain.ErrPrecondition}
	ErrRetryLogin         = &Error{"Email is missing. Please try logging in again.", domain.ErrPrecondition}
	ErrWrongStep          = &Error{"Please finish the current step or restart the login.", domain.ErrPrecondition}
	ErrInvalidInput       = &Error{"Invalid input", domain.ErrValidation}
	ErrNotAllowed         = &Error{"Not Allowed", domain.ErrRejected}
	ErrInvalidCredentials = &Error{"Invalid username or password", domain.ErrProvider}
	ErrInvalidOTP         = &Error{"Invalid OTP", domain.ErrProvider}
	ErrTooManyAttempts    = &Error{"Too many invalid codes. Please log in again.", domain.ErrRejected}
	ErrBusy               = &Error{"Please wait for the current request to finish.", domain.ErrConflict}
)
