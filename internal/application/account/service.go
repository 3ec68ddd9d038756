// Package account implements the auth and user operations of the RPC backend.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pr1me-admin/internal/domain"
	"github.com/pr1me-admin/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a user does not exist so that unknown
// usernames cost the same bcrypt work as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, sessionID string) error
	// CheckAdmin reports whether the credentials belong to an enabled admin.
	CheckAdmin(ctx context.Context, userName, password string) (bool, error)
	Profile(ctx context.Context, userID string) (domain.Profile, error)
	UpdateProfile(ctx context.Context, userID, name, email string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, email string) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Disable(ctx context.Context, sessionID string) error
}

type jwtSigner interface {
	Sign(userID, role, sessionID string) (string, error)
}

type service struct {
	users    userStore
	sessions sessionStore
	signer   jwtSigner
}

type ServiceDeps struct {
	UserRepo    userStore
	SessionRepo sessionStore
	JWTProvider jwtSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{users: deps.UserRepo, sessions: deps.SessionRepo, signer: deps.JWTProvider}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	if !passwordMatches(u, password) || !u.Enable {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID: id.New(),
		UserID:    u.UserID,
		Enable:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return s.signer.Sign(u.UserID, u.Role, sess.SessionID)
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Disable(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *service) CheckAdmin(ctx context.Context, userName, password string) (bool, error) {
	u, err := s.users.GetByUsername(ctx, userName)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	if !passwordMatches(u, password) {
		return false, nil
	}
	return u.Enable && u.Role == domain.RoleAdmin, nil
}

func (s *service) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return u.Profile(), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID, name, email string) error {
	other, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil && other.UserID != userID:
		return fmt.Errorf("email already in use: %w", domain.ErrConflict)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return s.users.UpdateProfile(ctx, userID, name, email)
}

// passwordMatches runs bcrypt even when u is nil.
func passwordMatches(u *domain.User, password string) bool {
	hash := dummyHash
	if u != nil {
		hash = []byte(u.PasswordHash)
	}
	ok := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	return ok && u != nil
}
