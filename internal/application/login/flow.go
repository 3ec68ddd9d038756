// Package login drives the two-step admin sign-in: a password check against
// the RPC backend followed by a one-time password mailed by the identity
// provider.
package login

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pr1me-admin/internal/domain"
	"github.com/pr1me-admin/internal/pkg/normalize"
	"github.com/pr1me-admin/internal/pkg/validate"
)

// AdminChecker answers whether credentials belong to an enabled administrator.
type AdminChecker interface {
	CheckAdmin(ctx context.Context, userName, password string) (bool, error)
}

// ChallengeVerifier checks a bot-challenge token with its provider. Tokens
// are single use on the provider side.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// IdentityProvider issues and verifies one-time passwords.
type IdentityProvider interface {
	RequestOTP(ctx context.Context, email, challengeToken string) error
	VerifyOTP(ctx context.Context, email, code string) (*domain.AuthSession, error)
}

type FlowDeps struct {
	Challenge      ChallengeVerifier
	Checker        AdminChecker
	Identity       IdentityProvider
	Mapper         normalize.EmailMapper
	MaxOTPAttempts int // <= 0 means unlimited
}

// Flow is the login state of one browser. Transitions never overlap: a
// submission made while another is in flight fails with ErrBusy.
type Flow struct {
	deps FlowDeps

	call sync.Mutex // held for the whole of a transition; see begin
	busy atomic.Bool

	mu       sync.Mutex // guards the fields below
	state    domain.FlowState
	token    domain.ChallengeToken
	email    string
	form     domain.Credentials
	attempts int
	session  *domain.AuthSession
}

func NewFlow(deps FlowDeps) *Flow {
	return &Flow{deps: deps}
}

// begin claims the flow for one transition. The returned func releases it.
func (f *Flow) begin() (func(), error) {
	if !f.call.TryLock() {
		return nil, ErrBusy
	}
	f.busy.Store(true)
	return func() {
		f.busy.Store(false)
		f.call.Unlock()
	}, nil
}

// VerifyChallenge records the token handed over by the challenge widget's
// callback, replacing any previous one. The provider checks it when the
// credentials are submitted.
func (f *Flow) VerifyChallenge(token string) error {
	end, err := f.begin()
	if err != nil {
		return err
	}
	defer end()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = domain.NewChallengeToken(token)
	if !f.token.Valid() {
		return ErrChallengeRequired
	}
	return nil
}

// SubmitCredentials runs the first step. On success the flow awaits an OTP
// sent to the email derived from the username; on any failure it stays at
// AwaitingCredentials.
func (f *Flow) SubmitCredentials(ctx context.Context, raw domain.Credentials) error {
	end, err := f.begin()
	if err != nil {
		return err
	}
	defer end()

	f.mu.Lock()
	if f.state != domain.AwaitingCredentials {
		f.mu.Unlock()
		return ErrWrongStep
	}
	if !f.token.Valid() {
		f.mu.Unlock()
		return ErrChallengeRequired
	}
	creds := normalize.EscapeFormData(raw)
	f.form = domain.Credentials{UserName: creds.UserName}
	f.mu.Unlock()

	if err := validate.Struct(creds); err != nil {
		return ErrInvalidInput
	}

	// From here on the token is spent, whatever the outcome.
	f.mu.Lock()
	tok, err := f.token.Consume()
	f.mu.Unlock()
	if err != nil {
		return ErrChallengeRequired
	}
	if err := f.deps.Challenge.Verify(ctx, tok, RemoteIPFromContext(ctx)); err != nil {
		slog.Warn("challenge rejected", "err", err)
		return ErrChallengeFailed
	}

	ok, err := f.deps.Checker.CheckAdmin(ctx, creds.UserName, creds.Password)
	if err != nil {
		slog.Warn("admin check failed", "err", err)
		return ErrNotAllowed
	}
	if !ok {
		return ErrNotAllowed
	}

	email := f.deps.Mapper.UserNameToEmail(creds.UserName)
	if err := f.deps.Identity.RequestOTP(ctx, email, tok); err != nil {
		slog.Warn("otp issuance failed", "email", email, "err", err)
		return ErrInvalidCredentials
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = domain.AwaitingOtp
	f.email = email
	f.form = domain.Credentials{}
	f.attempts = 0
	return nil
}

// SubmitOTP runs the second step against the email recorded by the first.
// A wrong code leaves the flow at AwaitingOtp until MaxOTPAttempts wrong
// codes have been entered, at which point the flow restarts. The identity
// provider keeps its own count per issued code.
func (f *Flow) SubmitOTP(ctx context.Context, code domain.OtpCode) (*domain.AuthSession, error) {
	end, err := f.begin()
	if err != nil {
		return nil, err
	}
	defer end()

	f.mu.Lock()
	state, email := f.state, f.email
	f.mu.Unlock()
	if state == domain.Authenticated {
		return nil, ErrWrongStep
	}
	if email == "" {
		return nil, ErrRetryLogin
	}
	if err := validate.Struct(code); err != nil {
		return nil, ErrInvalidInput
	}

	sess, err := f.deps.Identity.VerifyOTP(ctx, email, code.OTP)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		slog.Warn("otp verification failed", "email", email, "err", err)
		f.attempts++
		if f.deps.MaxOTPAttempts > 0 && f.attempts >= f.deps.MaxOTPAttempts {
			f.reset()
			return nil, ErrTooManyAttempts
		}
		return nil, ErrInvalidOTP
	}
	f.state = domain.Authenticated
	f.session = sess
	return sess, nil
}

// Restart abandons the attempt and returns to AwaitingCredentials.
func (f *Flow) Restart() error {
	end, err := f.begin()
	if err != nil {
		return err
	}
	defer end()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
	return nil
}

func (f *Flow) reset() {
	f.state = domain.AwaitingCredentials
	f.token.Reset()
	f.email = ""
	f.form = domain.Credentials{}
	f.attempts = 0
	f.session = nil
}

// Busy reports whether a transition is in progress.
func (f *Flow) Busy() bool { return f.busy.Load() }

func (f *Flow) State() domain.FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Email is the address the pending OTP was sent to, empty before step one succeeds.
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Form returns what is left of the credential form: the last username
// submitted, or nothing once step one succeeds. Passwords are never kept.
func (f *Flow) Form() domain.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// HasChallenge reports whether an unconsumed challenge token is recorded.
func (f *Flow) HasChallenge() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token.Valid()
}

// Attempts is the number of wrong codes entered since the last OTP was issued.
func (f *Flow) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

// Session is the authenticated session, nil until the flow completes.
func (f *Flow) Session() *domain.AuthSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}
