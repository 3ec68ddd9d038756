package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pr1me-admin/internal/config"
	"github.com/pr1me-admin/internal/rpc/contract"
	"github.com/pr1me-admin/internal/rpc/server"
	"github.com/pr1me-admin/internal/transport/http/handler"
	appmiddleware "github.com/pr1me-admin/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds the RPC backend router: every contract endpoint under
// contract.BasePath plus health checks. It fails if an endpoint is unmounted.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", contract.VersionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthH := handler.NewHealthHandler()
	r.Get("/health-check/{action}", healthH.Ping)
	r.Get("/version", healthH.Version)

	// The admin app forwards its user's address, so admins are limited one by
	// one as long as the admin app is a trusted proxy.
	ips, err := appmiddleware.NewClientIP(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	// 5 requests/second, burst of 10, on the credential-checking endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10, ips)
	authH := handler.NewAuthHandler(deps.Account)
	userH := handler.NewUserHandler(deps.Account)
	todoH := handler.NewTodoHandler(deps.Todos)
	ledgerH := handler.NewLedgerHandler(deps.Ledger)

	m := server.NewMux(r, appmiddleware.Auth(deps.JWTProvider, deps.Sessions))
	server.Handle(m, contract.Root, userH.GetProfile)
	server.Handle(m, contract.Auth.Login, authH.Login, sensitiveRL.Limit)
	server.Handle(m, contract.Auth.Logout, authH.Logout)
	server.Handle(m, contract.Auth.CheckAdmin, authH.CheckAdmin, sensitiveRL.Limit)
	server.Handle(m, contract.User.GetProfile, userH.GetProfile)
	server.Handle(m, contract.User.UpdateProfile, userH.UpdateProfile)
	server.Handle(m, contract.Todos.Create, todoH.Create)
	server.Handle(m, contract.Todos.List, todoH.List)
	server.Handle(m, contract.Withdrawals.List, ledgerH.Withdrawals)
	server.Handle(m, contract.Merchants.List, ledgerH.Merchants)

	if missing := m.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("contract endpoints without handler: %v", missing)
	}
	return r, nil
}
