// internal/handlers/purchase_orders.go
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// PurchaseOrderHandler handles purchase order HTTP requests
type PurchaseOrderHandler struct {
	responder
	service ports.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(service ports.PurchaseOrderService, logger *slog.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		responder: responder{logger: logger.With(slog.String("handler", "purchase_order"))},
		service:   service,
	}
}

// UpsertHeader handles POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) UpsertHeader(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req HeaderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondServiceError(ctx, w, err, "save purchase order")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.respondServiceError(ctx, w, err, "save purchase order")
		return
	}

	view, err := h.service.UpsertHeader(ctx, in)
	if err != nil {
		h.respondServiceError(ctx, w, err, "save purchase order")
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// List handles GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	params := ports.ListParams{
		Search:    q.Get("search"),
		Status:    domain.Status(strings.ToUpper(q.Get("status"))),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Page:      queryInt(r, "page", 1),
		PageSize:  queryInt(r, "page_size", 50),
	}
	var err error
	if params.OrderedFrom, err = queryDate(r, "ordered_from"); err != nil {
		h.respondServiceError(ctx, w, err, "list purchase orders")
		return
	}
	if params.OrderedTo, err = queryDate(r, "ordered_to"); err != nil {
		h.respondServiceError(ctx, w, err, "list purchase orders")
		return
	}

	result, err := h.service.List(ctx, params)
	if err != nil {
		h.respondServiceError(ctx, w, err, "list purchase orders")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// GetView handles GET /api/v1/purchase-orders/{id}
func (h *PurchaseOrderHandler) GetView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "get purchase order")
		return
	}

	view, err := h.service.GetView(ctx, id)
	if err != nil {
		h.respondServiceError(ctx, w, err, "get purchase order")
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// GetViewByNumber handles GET /api/v1/purchase-orders/by-number/{poNumber}
func (h *PurchaseOrderHandler) GetViewByNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.service.GetViewByNumber(ctx, r.PathValue("poNumber"))
	if err != nil {
		h.respondServiceError(ctx, w, err, "get purchase order")
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// UpsertItem handles PUT /api/v1/purchase-orders/{id}/items
func (h *PurchaseOrderHandler) UpsertItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	headerID, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "save line item")
		return
	}
	var req ItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondServiceError(ctx, w, err, "save line item")
		return
	}

	view, err := h.service.UpsertItem(ctx, ports.ItemInput{
		HeaderID:   headerID,
		ItemID:     req.ItemID,
		SKU:        req.SKU,
		QtyOrdered: req.QtyOrdered,
	})
	if err != nil {
		h.respondServiceError(ctx, w, err, "save line item")
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/v1/purchase-orders/{id}/items/{itemId}
func (h *PurchaseOrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	headerID, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "remove line item")
		return
	}
	itemID, err := pathUUID(r, "itemId")
	if err != nil {
		h.respondServiceError(ctx, w, err, "remove line item")
		return
	}

	view, err := h.service.RemoveItem(ctx, headerID, itemID)
	if err != nil {
		h.respondServiceError(ctx, w, err, "remove line item")
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// SubmitBatchReceipt handles POST /api/v1/purchase-orders/{id}/receipts/batches
func (h *PurchaseOrderHandler) SubmitBatchReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	headerID, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "submit receipt batch")
		return
	}
	var req BatchReceiptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondServiceError(ctx, w, err, "submit receipt batch")
		return
	}
	in, err := req.ToInput(headerID)
	if err != nil {
		h.respondServiceError(ctx, w, err, "submit receipt batch")
		return
	}

	view, err := h.service.SubmitBatchReceipt(ctx, in)
	if err != nil {
		h.respondServiceError(ctx, w, err, "submit receipt batch")
		return
	}

	h.logger.InfoContext(ctx, "receipt batch submitted",
		slog.String("header_id", headerID.String()),
		slog.Int("batch_no", req.BatchNo),
		slog.Int("items", len(req.Items)))
	h.respondJSON(w, http.StatusCreated, view)
}

// RecordReceipt handles POST /api/v1/purchase-orders/{id}/receipts
func (h *PurchaseOrderHandler) RecordReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	headerID, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "record receipt")
		return
	}
	var req ReceiptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondServiceError(ctx, w, err, "record receipt")
		return
	}
	received, err := parseDate("received_date", req.ReceivedDate)
	if err != nil {
		h.respondServiceError(ctx, w, err, "record receipt")
		return
	}

	view, err := h.service.RecordReceipt(ctx, ports.AdhocReceiptInput{
		HeaderID:     headerID,
		ItemID:       req.ItemID,
		Qty:          req.Qty,
		Volume:       req.Volume,
		Weight:       req.Weight,
		ReceivedDate: received,
	})
	if err != nil {
		h.respondServiceError(ctx, w, err, "record receipt")
		return
	}
	h.respondJSON(w, http.StatusCreated, view)
}

// DeleteReceipt handles DELETE /api/v1/receipts/{id}
func (h *PurchaseOrderHandler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "delete receipt")
		return
	}

	view, err := h.service.DeleteReceipt(ctx, id)
	if err != nil {
		h.respondServiceError(ctx, w, err, "delete receipt")
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// Request DTOs

// HeaderRequest is the body of a header upsert. Dates are YYYY-MM-DD.
type HeaderRequest struct {
	PONumber              string              `json:"po_number"`
	SupplierName          string              `json:"supplier_name,omitempty"`
	OrderType             domain.OrderType    `json:"order_type,omitempty"`
	ShippingType          domain.ShippingType `json:"shipping_type,omitempty"`
	OrderDate             string              `json:"order_date"`
	EstimatedDate         *string             `json:"estimated_date,omitempty"`
	BillDate              *string             `json:"bill_date,omitempty"`
	ExchangeRate          decimal.Decimal     `json:"exchange_rate"`
	TotalCostForeign      decimal.Decimal     `json:"total_cost_foreign"`
	ShippingRatePerVolume decimal.Decimal     `json:"shipping_rate_per_volume"`
	TransportationCost    decimal.Decimal     `json:"transportation_cost"`
	Note                  string              `json:"note,omitempty"`
}

// ToInput validates the date fields and converts to the service input
func (req *HeaderRequest) ToInput() (ports.HeaderInput, error) {
	orderDate, err := parseDate("order_date", req.OrderDate)
	if err != nil {
		return ports.HeaderInput{}, err
	}
	eta, err := parseOptionalDate("estimated_date", req.EstimatedDate)
	if err != nil {
		return ports.HeaderInput{}, err
	}
	bill, err := parseOptionalDate("bill_date", req.BillDate)
	if err != nil {
		return ports.HeaderInput{}, err
	}

	return ports.HeaderInput{
		PONumber:              req.PONumber,
		SupplierName:          req.SupplierName,
		OrderType:             domain.OrderType(strings.ToUpper(string(req.OrderType))),
		ShippingType:          domain.ShippingType(strings.ToUpper(string(req.ShippingType))),
		OrderDate:             orderDate,
		EstimatedDate:         eta,
		BillDate:              bill,
		ExchangeRate:          req.ExchangeRate,
		TotalCostForeign:      req.TotalCostForeign,
		ShippingRatePerVolume: req.ShippingRatePerVolume,
		TransportationCost:    req.TransportationCost,
		Note:                  req.Note,
	}, nil
}

// ItemRequest is the body of a line item upsert
type ItemRequest struct {
	ItemID     *uuid.UUID `json:"item_id,omitempty"`
	SKU        string     `json:"sku"`
	QtyOrdered int64      `json:"qty_ordered"`
}

// BatchReceiptRequest is the body of a batch receiving submission
type BatchReceiptRequest struct {
	BatchNo          int                   `json:"batch_no"`
	BillDate         *string               `json:"bill_date,omitempty"`
	ReceivedDate     string                `json:"received_date"`
	BatchTotalVolume *decimal.Decimal      `json:"batch_total_volume,omitempty"`
	BatchTotalWeight *decimal.Decimal      `json:"batch_total_weight,omitempty"`
	Items            []domain.ItemQuantity `json:"items"`
}

// ToInput validates the date fields and converts to the service input
func (req *BatchReceiptRequest) ToInput(headerID uuid.UUID) (ports.BatchReceiptInput, error) {
	received, err := parseDate("received_date", req.ReceivedDate)
	if err != nil {
		return ports.BatchReceiptInput{}, err
	}
	bill, err := parseOptionalDate("bill_date", req.BillDate)
	if err != nil {
		return ports.BatchReceiptInput{}, err
	}

	return ports.BatchReceiptInput{
		HeaderID:         headerID,
		BatchNo:          req.BatchNo,
		BillDate:         bill,
		ReceivedDate:     received,
		BatchTotalVolume: req.BatchTotalVolume,
		BatchTotalWeight: req.BatchTotalWeight,
		Items:            req.Items,
	}, nil
}

// ReceiptRequest is the body of a single batch-less receipt
type ReceiptRequest struct {
	ItemID       uuid.UUID       `json:"item_id"`
	Qty          int64           `json:"qty"`
	Volume       decimal.Decimal `json:"volume"`
	Weight       decimal.Decimal `json:"weight"`
	ReceivedDate string          `json:"received_date"`
}
