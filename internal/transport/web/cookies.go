package web

import (
	"net/http"
	"time"

	"github.com/pr1me-admin/internal/rpc/contract"
)

// FlowCookie identifies the browser's login flow in the login.Store.
const FlowCookie = "admin_login_flow"

type cookieJar struct {
	secure  bool
	flowTTL time.Duration
}

func (c cookieJar) setFlow(w http.ResponseWriter, flowID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlowCookie,
		Value:    flowID,
		Path:     "/login",
		MaxAge:   int(c.flowTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c cookieJar) clearFlow(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name: FlowCookie, Value: "", Path: "/login", MaxAge: -1,
		HttpOnly: true, Secure: c.secure, SameSite: http.SameSiteStrictMode,
	})
}

func (c cookieJar) setSession(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     contract.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c cookieJar) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name: contract.SessionCookie, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, Secure: c.secure, SameSite: http.SameSiteLaxMode,
	})
}
