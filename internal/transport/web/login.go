package web

import (
	"net/http"

	"github.com/pr1me-admin/internal/application/login"
	"github.com/pr1me-admin/internal/domain"
	"github.com/pr1me-admin/internal/transport/http/handler"
	appmiddleware "github.com/pr1me-admin/internal/transport/http/middleware"
)

// LoginHandler exposes the login flow of the requesting browser.
type LoginHandler struct {
	store   *login.Store
	cookies cookieJar
	siteKey string
	ips     *appmiddleware.ClientIP
}

func NewLoginHandler(store *login.Store, cookies cookieJar, siteKey string, ips *appmiddleware.ClientIP) *LoginHandler {
	return &LoginHandler{store: store, cookies: cookies, siteKey: siteKey, ips: ips}
}

type configResponse struct {
	SiteKey string `json:"site_key"`
}

type stateResponse struct {
	Step     string `json:"step"`
	Busy     bool   `json:"busy"`
	Email    string `json:"email,omitempty"`
	Attempts int    `json:"attempts,omitempty"`
}

type challengeRequest struct {
	Token string `json:"token"`
}

type redirectResponse struct {
	RedirectTo string `json:"redirect_to"`
}

func stateOf(f *login.Flow) stateResponse {
	return stateResponse{Step: f.State().String(), Busy: f.Busy(), Email: f.Email(), Attempts: f.Attempts()}
}

// flow returns the browser's flow, starting one if it has none or it expired.
func (h *LoginHandler) flow(w http.ResponseWriter, r *http.Request) (string, *login.Flow) {
	if c, err := r.Cookie(FlowCookie); err == nil {
		if f, ok := h.store.Get(c.Value); ok {
			return c.Value, f
		}
	}
	flowID, f := h.store.Create()
	h.cookies.setFlow(w, flowID)
	return flowID, f
}

// Config returns the public site key the challenge widget is rendered with.
func (h *LoginHandler) Config(w http.ResponseWriter, _ *http.Request) {
	handler.WriteJSON(w, http.StatusOK, configResponse{SiteKey: h.siteKey})
}

// State reports the step to render. A browser without a flow is at the login step.
func (h *LoginHandler) State(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(FlowCookie); err == nil {
		if f, ok := h.store.Get(c.Value); ok {
			handler.WriteJSON(w, http.StatusOK, stateOf(f))
			return
		}
	}
	handler.WriteJSON(w, http.StatusOK, stateResponse{Step: domain.AwaitingCredentials.String()})
}

// Challenge records the token from the widget's verification callback.
func (h *LoginHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := decodeJSON(r, &req); err != nil {
		handler.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	_, f := h.flow(w, r)
	if err := f.VerifyChallenge(req.Token); err != nil {
		writeLoginError(w, err, f.State())
		return
	}
	handler.WriteJSON(w, http.StatusOK, stateOf(f))
}

// Credentials runs the password step; on success an OTP has been mailed.
func (h *LoginHandler) Credentials(w http.ResponseWriter, r *http.Request) {
	var req domain.Credentials
	if err := decodeJSON(r, &req); err != nil {
		handler.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	_, f := h.flow(w, r)
	ctx := login.WithRemoteIP(r.Context(), h.ips.Of(r))
	if err := f.SubmitCredentials(ctx, req); err != nil {
		writeLoginError(w, err, f.State())
		return
	}
	handler.WriteJSON(w, http.StatusOK, stateOf(f))
}

// OTP runs the code step. On success the session cookie is set and the
// flow is forgotten.
func (h *LoginHandler) OTP(w http.ResponseWriter, r *http.Request) {
	var req domain.OtpCode
	if err := decodeJSON(r, &req); err != nil {
		handler.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	flowID, f := h.flow(w, r)
	sess, err := f.SubmitOTP(r.Context(), req)
	if err != nil {
		writeLoginError(w, err, f.State())
		return
	}
	h.store.Delete(flowID)
	h.cookies.clearFlow(w)
	h.cookies.setSession(w, sess.Token, sess.ExpiresAt)
	handler.WriteJSON(w, http.StatusOK, redirectResponse{RedirectTo: "/admin"})
}

// Restart returns the flow to the login step.
func (h *LoginHandler) Restart(w http.ResponseWriter, r *http.Request) {
	_, f := h.flow(w, r)
	if err := f.Restart(); err != nil {
		writeLoginError(w, err, f.State())
		return
	}
	handler.WriteJSON(w, http.StatusOK, stateOf(f))
}
