package web

import (
	"github.com/pr1me-admin/internal/application/login"
	jwtinfra "github.com/pr1me-admin/internal/infrastructure/jwt"
	"github.com/pr1me-admin/internal/rpc/client"
	appmiddleware "github.com/pr1me-admin/internal/transport/http/middleware"
)

// Deps holds what the admin web app serves from.
type Deps struct {
	Logins      *login.Store
	RPC         *client.Client
	JWTProvider *jwtinfra.Provider
	Sessions    appmiddleware.SessionChecker // optional; nil trusts the JWT until the backend says otherwise
}
