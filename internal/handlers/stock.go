// internal/handlers/stock.go
package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// StockHandler handles stock resolution and product master requests
type StockHandler struct {
	responder
	service ports.StockService
	clock   func() time.Time
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service ports.StockService, clock func() time.Time, logger *slog.Logger) *StockHandler {
	if clock == nil {
		clock = time.Now
	}
	return &StockHandler{
		responder: responder{logger: logger.With(slog.String("handler", "stock"))},
		service:   service,
		clock:     clock,
	}
}

// Resolve handles GET /api/v1/stock/{sku}
func (h *StockHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	asOf, err := h.asOf(r)
	if err != nil {
		h.respondServiceError(ctx, w, err, "resolve stock")
		return
	}

	level, err := h.service.Resolve(ctx, r.PathValue("sku"), asOf)
	if err != nil {
		h.respondServiceError(ctx, w, err, "resolve stock")
		return
	}
	h.respondJSON(w, http.StatusOK, level)
}

// Report handles GET /api/v1/stock
func (h *StockHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	asOf, err := h.asOf(r)
	if err != nil {
		h.respondServiceError(ctx, w, err, "build stock report")
		return
	}

	report, err := h.service.Report(ctx, ports.StockReportParams{
		Search:   r.URL.Query().Get("search"),
		Status:   domain.StockStatus(strings.ToUpper(r.URL.Query().Get("status"))),
		AsOf:     asOf,
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 50),
	})
	if err != nil {
		h.respondServiceError(ctx, w, err, "build stock report")
		return
	}
	h.respondJSON(w, http.StatusOK, report)
}

// UpsertProduct handles PUT /api/v1/products/{sku}
func (h *StockHandler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var product domain.Product
	if err := decodeJSON(w, r, &product); err != nil {
		h.respondServiceError(ctx, w, err, "save product")
		return
	}
	product.SKU = r.PathValue("sku")

	if err := h.service.UpsertProduct(ctx, &product); err != nil {
		h.respondServiceError(ctx, w, err, "save product")
		return
	}
	h.respondJSON(w, http.StatusOK, product)
}

// MinLimitRequest is the body of a min-limit update
type MinLimitRequest struct {
	MinLimit int64 `json:"min_limit"`
}

// SetMinLimit handles PATCH /api/v1/products/{sku}/min-limit
func (h *StockHandler) SetMinLimit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sku := r.PathValue("sku")

	var req MinLimitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondServiceError(ctx, w, err, "update min limit")
		return
	}

	if err := h.service.SetMinLimit(ctx, sku, req.MinLimit); err != nil {
		h.respondServiceError(ctx, w, err, "update min limit")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"sku":       sku,
		"min_limit": req.MinLimit,
	})
}

// asOf reads the as_of query parameter, defaulting to today
func (h *StockHandler) asOf(r *http.Request) (time.Time, error) {
	d, err := queryDate(r, "as_of")
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return domain.DateOf(h.clock()), nil
	}
	return *d, nil
}
