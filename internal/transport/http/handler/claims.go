package handler

import (
	"context"
	"fmt"

	"github.com/pr1me-admin/internal/domain"
	jwtinfra "github.com/pr1me-admin/internal/infrastructure/jwt"
	"github.com/pr1me-admin/internal/transport/http/middleware"
)

// callerClaims returns the verified claims of a non-public endpoint's caller.
func callerClaims(ctx context.Context) (*jwtinfra.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("no session: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}
