// internal/handlers/dashboard.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/procure-be/internal/core/ports"
)

// DashboardHandler handles dashboard operations
type DashboardHandler struct {
	responder
	service ports.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service ports.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		responder: responder{logger: logger.With(slog.String("handler", "dashboard"))},
		service:   service,
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.service.Summary(ctx)
	if err != nil {
		h.respondServiceError(ctx, w, err, "load dashboard")
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}
