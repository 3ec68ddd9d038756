// Package server mounts contract endpoints on a chi router. Handlers are typed
// by the same contract.Endpoint values the client uses, so a handler whose
// input or output drifts from the contract does not compile.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/pr1me-admin/internal/domain"
	"github.com/pr1me-admin/internal/pkg/validate"
	"github.com/pr1me-admin/internal/rpc/contract"
	"github.com/pr1me-admin/internal/transport/http/handler"
	"github.com/pr1me-admin/internal/transport/http/middleware"
)

// maxBodyBytes caps request bodies; every contract input is a small JSON object.
const maxBodyBytes = 1 << 20

// HandlerFunc implements one contract operation.
type HandlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// Mux registers contract endpoints under contract.BasePath.
type Mux struct {
	router  chi.Router
	auth    func(http.Handler) http.Handler
	mounted map[string]bool
}

// NewMux wraps r. auth guards every non-public endpoint; nil leaves them open.
func NewMux(r chi.Router, auth func(http.Handler) http.Handler) *Mux {
	if auth == nil {
		auth = func(next http.Handler) http.Handler { return next }
	}
	return &Mux{router: r, auth: auth, mounted: make(map[string]bool)}
}

// Handle mounts h for ep, applying auth, role checks, the contract version
// check, JSON decoding and validation of the input. mws wrap the endpoint
// outermost, before the version check.
func Handle[In, Out any](m *Mux, ep contract.Endpoint[In, Out], h HandlerFunc[In, Out], mws ...func(http.Handler) http.Handler) {
	d := ep.Descriptor()
	var next http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in In
		if r.Method == http.MethodPost {
			err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&in)
			if err != nil && !errors.Is(err, io.EOF) {
				handler.WriteError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}
		if err := validate.Struct(in); err != nil {
			handler.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		out, err := h(r.Context(), in)
		if err != nil {
			status, msg := httpError(err)
			if status == http.StatusInternalServerError {
				slog.Error("rpc handler failed", "endpoint", d.Name, "err", err)
			}
			handler.WriteError(w, status, msg)
			return
		}
		handler.WriteJSON(w, http.StatusOK, out)
	})
	if len(d.Roles) > 0 {
		next = middleware.RequireRole(d.Roles...)(next)
	}
	if !d.Public {
		next = m.auth(next)
	}
	next = requireVersion(next)
	for i := len(mws) - 1; i >= 0; i-- {
		next = mws[i](next)
	}

	m.router.Method(d.Method, contract.BasePath+d.Path, next)
	m.mounted[d.Name] = true
}

// Missing returns the names of contract endpoints that have no handler.
func (m *Mux) Missing() []string {
	var missing []string
	for _, d := range contract.All() {
		if !m.mounted[d.Name] {
			missing = append(missing, d.Name)
		}
	}
	sort.Strings(missing)
	return missing
}

// requireVersion rejects callers built against another contract version.
// Requests without the header (curl, health checks) are let through.
func requireVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get(contract.VersionHeader); v != "" && v != contract.Version {
			handler.WriteError(w, http.StatusPreconditionFailed, "unsupported contract version "+v)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// httpError maps domain sentinels to a status code and a message safe to return.
func httpError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
