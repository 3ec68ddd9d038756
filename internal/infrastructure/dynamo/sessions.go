package dynamo

import (
	"context"
	"errors"

	"github.com/pr1me-admin/internal/domain"
)

// SessionRepo holds server-side admin sessions. The JWT carries the session
// id; disabling the item here revokes the token before it expires.
type SessionRepo struct {
	t table
}

func NewSessionRepo(db DB, tableName string) *SessionRepo {
	return &SessionRepo{t: table{db: db, name: tableName, entity: "session"}}
}

func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	return r.t.put(ctx, s, "")
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return getItem[domain.Session](ctx, r.t, strKey("session_id", sessionID), false)
}

// IsActive reports whether the session exists and is enabled. A missing
// session is not an error.
func (r *SessionRepo) IsActive(ctx context.Context, sessionID string) (bool, error) {
	s, err := r.Get(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return s.Enable, nil
}

// Disable marks a session as logged out.
func (r *SessionRepo) Disable(ctx context.Context, sessionID string) error {
	return r.t.update(ctx, "session_id", sessionID, map[string]interface{}{fieldEnable: false})
}
