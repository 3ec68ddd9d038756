// Package identity issues and verifies the one-time passwords of the admin
// login flow and mints the admin session once a code is accepted.
package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pr1me-admin/internal/domain"
	"github.com/pr1me-admin/internal/infrastructure/smtp"
	"github.com/pr1me-admin/internal/infrastructure/sns"
	"github.com/pr1me-admin/internal/pkg/id"
	pkgtoken "github.com/pr1me-admin/internal/pkg/token"
)

const otpLength = 6

type Service interface {
	// RequestOTP emails a fresh code to email. challengeToken is the token the
	// login gate already verified; an empty one is refused.
	RequestOTP(ctx context.Context, email, challengeToken string) error
	// VerifyOTP consumes the code issued to email and opens a session.
	VerifyOTP(ctx context.Context, email, code string) (*domain.AuthSession, error)
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.OTPVerification) error
	Get(ctx context.Context, email, verType string) (*domain.OTPVerification, error)
	Delete(ctx context.Context, email, verType string) error
	AddAttempt(ctx context.Context, email, verType string) (int, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
}

type jwtSigner interface {
	Sign(userID, role, sessionID string) (string, error)
	Expiry() time.Duration
}

type service struct {
	verifications  verificationStore
	users          userStore
	sessions       sessionStore
	signer         jwtSigner
	mailer         smtp.Mailer
	alerts         sns.Notifier
	otpTTL         time.Duration
	resendCooldown time.Duration
	maxAttempts    int
	now            func() time.Time
}

type ServiceDeps struct {
	VerificationRepo verificationStore
	UserRepo         userStore
	SessionRepo      sessionStore
	JWTProvider      jwtSigner
	Mailer           smtp.Mailer
	Alerts           sns.Notifier // optional
	OTPTTL           time.Duration
	ResendCooldown   time.Duration
	MaxAttempts      int // wrong codes before the code is revoked; <= 0 means unlimited
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verifications:  deps.VerificationRepo,
		users:          deps.UserRepo,
		sessions:       deps.SessionRepo,
		signer:         deps.JWTProvider,
		mailer:         deps.Mailer,
		alerts:         deps.Alerts,
		otpTTL:         deps.OTPTTL,
		resendCooldown: deps.ResendCooldown,
		maxAttempts:    deps.MaxAttempts,
		now:            time.Now,
	}
}

func (s *service) RequestOTP(ctx context.Context, email, challengeToken string) error {
	if challengeToken == "" {
		return fmt.Errorf("no challenge presented: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", email, err)
	}
	if !u.Enable {
		return fmt.Errorf("user %s disabled: %w", u.UserID, domain.ErrForbidden)
	}

	now := s.now()
	if prev, err := s.verifications.Get(ctx, email, domain.VerificationLoginOTP); err == nil {
		if now.Unix() < prev.ExpiresAt && now.Unix() < prev.IssuedAt+int64(s.resendCooldown/time.Second) {
			// A code was mailed moments ago and is still valid; the user can use it.
			slog.Info("otp resend suppressed", "email", email)
			return nil
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("load verification: %w", err)
	}

	code, err := pkgtoken.NumericCode(otpLength)
	if err != nil {
		return err
	}
	v := &domain.OTPVerification{
		Email:     email,
		Type:      domain.VerificationLoginOTP,
		Code:      code,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.otpTTL).Unix(),
	}
	if err := s.verifications.Put(ctx, v); err != nil {
		return fmt.Errorf("store verification: %w", err)
	}
	subject, body := smtp.OTPMail(code, s.otpTTL)
	if err := s.mailer.SendEmail(email, subject, body); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (*domain.AuthSession, error) {
	v, err := s.verifications.Get(ctx, email, domain.VerificationLoginOTP)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no pending otp: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	now := s.now()
	if v.ExpiresAt <= now.Unix() {
		if err := s.verifications.Delete(ctx, email, domain.VerificationLoginOTP); err != nil {
			slog.Warn("failed to delete expired otp", "email", email, "err", err)
		}
		return nil, fmt.Errorf("otp expired: %w", domain.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(v.Code), []byte(code)) != 1 {
		s.recordMiss(ctx, v)
		return nil, fmt.Errorf("invalid otp: %w", domain.ErrUnauthorized)
	}
	if err := s.verifications.Delete(ctx, email, domain.VerificationLoginOTP); err != nil {
		// Codes are single use; one that cannot be consumed is not accepted.
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", email, err)
	}
	if !u.Enable {
		return nil, fmt.Errorf("user %s disabled: %w", u.UserID, domain.ErrForbidden)
	}

	sess := &domain.Session{
		SessionID: id.New(),
		UserID:    u.UserID,
		Enable:    true,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	tok, err := s.signer.Sign(u.UserID, u.Role, sess.SessionID)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	if s.alerts != nil {
		alert := sns.LoginAlert{UserID: u.UserID, Email: u.Email, Role: u.Role, SessionID: sess.SessionID, At: now.UTC()}
		if err := s.alerts.NotifyLogin(ctx, alert); err != nil {
			slog.Warn("login alert failed", "user_id", u.UserID, "err", err)
		}
	}

	return &domain.AuthSession{
		Token:     tok,
		SessionID: sess.SessionID,
		UserID:    u.UserID,
		Role:      u.Role,
		ExpiresAt: now.Add(s.signer.Expiry()),
	}, nil
}

// recordMiss counts a wrong code against the stored verification and revokes
// it once maxAttempts is reached, whichever login flow submitted the guesses.
func (s *service) recordMiss(ctx context.Context, v *domain.OTPVerification) {
	if s.maxAttempts <= 0 {
		return
	}
	n, err := s.verifications.AddAttempt(ctx, v.Email, v.Type)
	if err != nil {
		slog.Error("failed to record otp attempt", "email", v.Email, "err", err)
		return
	}
	if n < s.maxAttempts {
		return
	}
	if err := s.verifications.Delete(ctx, v.Email, v.Type); err != nil {
		slog.Error("failed to revoke otp", "email", v.Email, "err", err)
		return
	}
	slog.Info("otp revoked after too many attempts", "email", v.Email, "attempts", n)
}
