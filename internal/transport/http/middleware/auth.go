package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	jwtinfra "github.com/pr1me-admin/internal/infrastructure/jwt"
	"github.com/pr1me-admin/internal/rpc/contract"
)

// SessionCookieName is the cookie holding the admin session JWT. The admin app
// sets it after OTP verification and forwards it on every RPC call.
const SessionCookieName = contract.SessionCookie

type contextKey string

const claimsKey contextKey = "claims"

// SessionChecker reports whether a server-side session is still enabled.
type SessionChecker interface {
	IsActive(ctx context.Context, sessionID string) (bool, error)
}

// Auth returns middleware that validates the session JWT, taken from the
// Authorization header or the session cookie, and injects claims into context.
// When sessions is non-nil, revoked sessions are rejected too.
func Auth(provider *jwtinfra.Provider, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := TokenFromRequest(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization")
				return
			}
			claims, err := provider.Verify(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if sessions != nil {
				active, err := sessions.IsActive(r.Context(), claims.SessionID)
				if err != nil {
					slog.Warn("session lookup failed", "session_id", claims.SessionID, "err", err)
				}
				if err != nil || !active {
					writeJSONError(w, http.StatusUnauthorized, "session expired")
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// TokenFromRequest extracts the bearer token or, failing that, the session cookie.
func TokenFromRequest(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tok := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		return tok, tok != ""
	}
	c, err := r.Cookie(SessionCookieName)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return "", false
	}
	return c.Value, true
}

// WithClaims returns a context carrying claims.
func WithClaims(ctx context.Context, claims *jwtinfra.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtinfra.Claims)
	return c, ok
}
