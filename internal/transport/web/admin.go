package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pr1me-admin/internal/pkg/id"
	"github.com/pr1me-admin/internal/pkg/validate"
	"github.com/pr1me-admin/internal/rpc/client"
	"github.com/pr1me-admin/internal/rpc/contract"
	"github.com/pr1me-admin/internal/transport/http/handler"
	appmiddleware "github.com/pr1me-admin/internal/transport/http/middleware"
)

// AdminHandler serves the dashboard data by calling the RPC backend on behalf
// of the signed-in admin.
type AdminHandler struct {
	rpc     *client.Client
	cookies cookieJar
}

func NewAdminHandler(rpc *client.Client, cookies cookieJar) *AdminHandler {
	return &AdminHandler{rpc: rpc, cookies: cookies}
}

// sessionOf forwards the token the session middleware already verified.
func sessionOf(r *http.Request) client.Session {
	tok, _ := appmiddleware.TokenFromRequest(r)
	return client.Session{Cookie: tok}
}

// forward runs one backend call and writes its output or its failure.
func forward[Out any](w http.ResponseWriter, r *http.Request, call func(context.Context, client.Session) (Out, error)) {
	out, err := call(r.Context(), sessionOf(r))
	if err != nil {
		writeRPCError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) Profile(w http.ResponseWriter, r *http.Request) {
	forward(w, r, h.rpc.Root.Get)
}

func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in contract.UpdateProfileInput
	if err := decodeJSON(r, &in); err != nil {
		handler.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(in); err != nil {
		handler.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	forward(w, r, func(ctx context.Context, s client.Session) (contract.SuccessOutput, error) {
		return h.rpc.User.UpdateProfile(ctx, s, in)
	})
}

func (h *AdminHandler) Withdrawals(w http.ResponseWriter, r *http.Request) {
	forward(w, r, h.rpc.Withdrawal.List)
}

func (h *AdminHandler) Merchants(w http.ResponseWriter, r *http.Request) {
	forward(w, r, h.rpc.Merchant.List)
}

func (h *AdminHandler) Todos(w http.ResponseWriter, r *http.Request) {
	forward(w, r, h.rpc.Todo.List)
}

// CreateTodo assigns an ID when the page did not send one.
func (h *AdminHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var in contract.TodoInput
	if err := decodeJSON(r, &in); err != nil {
		handler.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.ID == "" {
		in.ID = id.New()
	}
	if err := validate.Struct(in); err != nil {
		handler.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	forward(w, r, func(ctx context.Context, s client.Session) (contract.MessageOutput, error) {
		return h.rpc.Todo.Create(ctx, s, in)
	})
}

// Logout disables the backend session and clears the cookie. The cookie is
// cleared even when the backend call fails.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.rpc.Auth.Logout(r.Context(), sessionOf(r)); err != nil {
		slog.Warn("backend logout failed", "err", err)
	}
	h.cookies.clearSession(w)
	handler.WriteJSON(w, http.StatusOK, redirectResponse{RedirectTo: "/login"})
}
