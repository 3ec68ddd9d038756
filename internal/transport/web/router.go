// Package web is the HTTP surface of the admin app: the two-step login and
// the signed-in dashboard data, fetched from the RPC backend.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pr1me-admin/internal/config"
	appmiddleware "github.com/pr1me-admin/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds the admin app router. It fails on a malformed
// trusted proxy list.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	ips, err := appmiddleware.NewClientIP(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	cookies := cookieJar{secure: cfg.CookieSecure, flowTTL: cfg.LoginFlowTTL}
	loginH := NewLoginHandler(deps.Logins, cookies, cfg.TurnstileSiteKey, ips)
	adminH := NewAdminHandler(deps.RPC, cookies)

	// 2 requests/second, burst of 5, on the credential and code submissions.
	loginRL := appmiddleware.NewRateLimiter(rate.Limit(2), 5, ips)

	r.Route("/login", func(r chi.Router) {
		r.Get("/config", loginH.Config)
		r.Get("/state", loginH.State)
		r.Post("/challenge", loginH.Challenge)
		r.Post("/restart", loginH.Restart)
		r.Group(func(r chi.Router) {
			r.Use(loginRL.Limit)
			r.Post("/", loginH.Credentials)
			r.Post("/otp", loginH.OTP)
		})
	})

	// The admin cookie is the same JWT the backend verifies; checking it here
	// keeps anonymous requests from reaching the backend at all.
	requireSession := appmiddleware.Auth(deps.JWTProvider, deps.Sessions)

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/profile", adminH.Profile)
		r.Post("/profile", adminH.UpdateProfile)
		r.Get("/withdrawals", adminH.Withdrawals)
		r.Get("/merchants", adminH.Merchants)
		r.Get("/todos", adminH.Todos)
		r.Post("/todos", adminH.CreateTodo)
		r.Post("/logout", adminH.Logout)
	})

	return r, nil
}
