package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pr1me-admin/internal/rpc/contract"
)

// HealthHandler handles health-check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	if action == "ping" {
		WriteJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
		return
	}
	WriteError(w, http.StatusBadRequest, "unknown action")
}

// Version reports the contract version this server speaks.
func (h *HealthHandler) Version(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, MessageEnvelope{Message: contract.Version})
}
