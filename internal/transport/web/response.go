package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/pr1me-admin/internal/application/login"
	"github.com/pr1me-admin/internal/domain"
	"github.com/pr1me-admin/internal/rpc/client"
	"github.com/pr1me-admin/internal/transport/http/handler"
)

const maxBodyBytes = 1 << 16

// errorBody is the login error: the handler envelope plus the flow step.
type errorBody struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
}

func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// loginStatus maps a login failure kind to its HTTP status.
func loginStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPrecondition):
		return http.StatusPreconditionFailed
	case errors.Is(err, domain.ErrRejected):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrProvider):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeLoginError answers with the flow's user-facing message and the step the
// flow is now at. Anything that is not a login.Error is hidden.
func writeLoginError(w http.ResponseWriter, err error, step domain.FlowState) {
	var le *login.Error
	if !errors.As(err, &le) {
		slog.Error("login flow failed", "err", err)
		handler.WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Step: step.String()})
		return
	}
	handler.WriteJSON(w, loginStatus(le), errorBody{Error: le.Message, Step: step.String()})
}

// writeRPCError passes a backend rejection through unchanged. Transport
// failures become 502.
func writeRPCError(w http.ResponseWriter, err error) {
	var se *client.StatusError
	if errors.As(err, &se) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(se.StatusCode)
		_, _ = w.Write(se.Body)
		return
	}
	slog.Error("rpc call failed", "err", err)
	handler.WriteError(w, http.StatusBadGateway, "backend unavailable")
}
