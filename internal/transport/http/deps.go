package http

import (
	"github.com/pr1me-admin/internal/application/account"
	"github.com/pr1me-admin/internal/application/ledger"
	"github.com/pr1me-admin/internal/application/todo"
	jwtinfra "github.com/pr1me-admin/internal/infrastructure/jwt"
	appmiddleware "github.com/pr1me-admin/internal/transport/http/middleware"
)

// Deps holds the services and infrastructure the API router serves.
type Deps struct {
	Account     account.Service
	Todos       todo.Service
	Ledger      ledger.Service
	JWTProvider *jwtinfra.Provider
	Sessions    appmiddleware.SessionChecker // optional; nil skips the revocation lookup
}
