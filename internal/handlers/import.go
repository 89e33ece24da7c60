// internal/handlers/import.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// ImportHandler accepts snapshot and sales feeds for background processing
type ImportHandler struct {
	responder
	service ports.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(service ports.ImportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		responder: responder{logger: logger.With(slog.String("handler", "import"))},
		service:   service,
	}
}

// SnapshotImportRequest is the body of POST /api/v1/imports/snapshots
type SnapshotImportRequest struct {
	Source string                 `json:"source"`
	Rows   []domain.StockSnapshot `json:"rows"`
}

// SalesImportRequest is the body of POST /api/v1/imports/sales
type SalesImportRequest struct {
	Source string        `json:"source"`
	Rows   []domain.Sale `json:"rows"`
}

// ImportSnapshots handles POST /api/v1/imports/snapshots
func (h *ImportHandler) ImportSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SnapshotImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondServiceError(ctx, w, err, "submit snapshot import")
		return
	}

	log, err := h.service.SubmitSnapshots(ctx, req.Source, req.Rows)
	if err != nil {
		h.respondServiceError(ctx, w, err, "submit snapshot import")
		return
	}

	h.logger.InfoContext(ctx, "snapshot import accepted",
		slog.String("import_id", log.ID.String()),
		slog.Int("rows", len(req.Rows)))
	h.respondJSON(w, http.StatusAccepted, log)
}

// ImportSales handles POST /api/v1/imports/sales
func (h *ImportHandler) ImportSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SalesImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondServiceError(ctx, w, err, "submit sales import")
		return
	}

	log, err := h.service.SubmitSales(ctx, req.Source, req.Rows)
	if err != nil {
		h.respondServiceError(ctx, w, err, "submit sales import")
		return
	}

	h.logger.InfoContext(ctx, "sales import accepted",
		slog.String("import_id", log.ID.String()),
		slog.Int("rows", len(req.Rows)))
	h.respondJSON(w, http.StatusAccepted, log)
}

// Status handles GET /api/v1/imports/{id}
func (h *ImportHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "get import status")
		return
	}

	log, err := h.service.Status(ctx, id)
	if err != nil {
		h.respondServiceError(ctx, w, err, "get import status")
		return
	}
	h.respondJSON(w, http.StatusOK, log)
}
