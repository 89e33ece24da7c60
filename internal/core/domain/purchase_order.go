// internal/core/domain/purchase_order.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the cached lifecycle status of a purchase order
type Status string

// Status constants
const (
	StatusPending      Status = "PENDING"
	StatusArrivingSoon Status = "ARRIVING_SOON"
	StatusOverdue      Status = "OVERDUE"
	StatusIncomplete   Status = "INCOMPLETE"
	StatusComplete     Status = "COMPLETE"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusArrivingSoon, StatusOverdue, StatusIncomplete, StatusComplete:
		return true
	}
	return false
}

// OrderType distinguishes imported from domestic purchase orders
type OrderType string

const (
	OrderTypeImported OrderType = "IMPORTED"
	OrderTypeDomestic OrderType = "DOMESTIC"
)

// ShippingType selects the default lead time of an order
type ShippingType string

const (
	ShippingTypeCar  ShippingType = "CAR"
	ShippingTypeShip ShippingType = "SHIP"
)

// LeadTime returns the default order-to-arrival duration for the shipping type
func (s ShippingType) LeadTime() time.Duration {
	if s == ShippingTypeShip {
		return 25 * 24 * time.Hour
	}
	return 14 * 24 * time.Hour
}

// Rounding places used across costing and receiving
const (
	MoneyPlaces  int32 = 2
	VolumePlaces int32 = 4
	WeightPlaces int32 = 3
)

// PurchaseOrderHeader is the root of a purchase order aggregate
type PurchaseOrderHeader struct {
	ID                    uuid.UUID       `json:"id"`
	PONumber              string          `json:"po_number"`
	SupplierName          string          `json:"supplier_name,omitempty"`
	OrderType             OrderType       `json:"order_type"`
	ShippingType          ShippingType    `json:"shipping_type"`
	OrderDate             time.Time       `json:"order_date"`
	EstimatedDate         *time.Time      `json:"estimated_date,omitempty"`
	BillDate              *time.Time      `json:"bill_date,omitempty"`
	ExchangeRate          decimal.Decimal `json:"exchange_rate"`
	TotalCostForeign      decimal.Decimal `json:"total_cost_foreign"`
	ShippingRatePerVolume decimal.Decimal `json:"shipping_rate_per_volume"`
	TransportationCost    decimal.Decimal `json:"transportation_cost"`
	Note                  string          `json:"note,omitempty"`
	Status                Status          `json:"status"`
	Version               int64           `json:"version"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the header
func (h *PurchaseOrderHeader) Validate() error {
	h.PONumber = strings.TrimSpace(h.PONumber)
	if h.PONumber == "" {
		return NewValidationError("po_number", ErrMissingPONumber)
	}
	if h.OrderDate.IsZero() {
		return Invalid("order_date", "order_date is required")
	}
	if h.ExchangeRate.IsNegative() {
		return Invalid("exchange_rate", "exchange_rate cannot be negative")
	}
	if h.TotalCostForeign.IsNegative() {
		return Invalid("total_cost_foreign", "total_cost_foreign cannot be negative")
	}
	if h.ShippingRatePerVolume.IsNegative() {
		return Invalid("shipping_rate_per_volume", "shipping_rate_per_volume cannot be negative")
	}
	if h.TransportationCost.IsNegative() {
		return Invalid("transportation_cost", "transportation_cost cannot be negative")
	}
	if h.EstimatedDate != nil && h.EstimatedDate.Before(DateOf(h.OrderDate)) {
		return Invalid("estimated_date", "estimated_date cannot be before order_date")
	}
	return nil
}

// ApplyDefaults fills in values a freshly entered header may leave out
func (h *PurchaseOrderHeader) ApplyDefaults() {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.OrderType == "" {
		h.OrderType = OrderTypeImported
	}
	if h.Status == "" {
		h.Status = StatusPending
	}
	if !h.OrderDate.IsZero() {
		h.OrderDate = DateOf(h.OrderDate)
		// Only a shipping type the caller chose implies an arrival date.
		if h.EstimatedDate == nil && h.ShippingType != "" {
			eta := h.OrderDate.Add(h.ShippingType.LeadTime())
			h.EstimatedDate = &eta
		}
	}
	if h.ShippingType == "" {
		h.ShippingType = ShippingTypeCar
	}
	if h.EstimatedDate != nil {
		eta := DateOf(*h.EstimatedDate)
		h.EstimatedDate = &eta
	}
}

// LineItem is one SKU ordered on a purchase order
type LineItem struct {
	ID             uuid.UUID       `json:"id"`
	HeaderID       uuid.UUID       `json:"header_id"`
	SKU            string          `json:"sku"`
	QtyOrdered     int64           `json:"qty_ordered"`
	CostForeign    decimal.Decimal `json:"cost_foreign"`
	CostLocal      decimal.Decimal `json:"cost_local"`
	ReceivedQty    int64           `json:"received_qty"`
	ReceivedVolume decimal.Decimal `json:"received_volume"`
	ReceivedWeight decimal.Decimal `json:"received_weight"`
	Position       int             `json:"position"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// UnitCostLocal returns the prorated local cost per ordered unit
func (i *LineItem) UnitCostLocal() decimal.Decimal {
	if i.QtyOrdered == 0 {
		return decimal.Zero
	}
	return i.CostLocal.Div(decimal.NewFromInt(i.QtyOrdered)).Round(MoneyPlaces)
}

// RemainingQty returns how many ordered units have not arrived yet
func (i *LineItem) RemainingQty() int64 {
	if i.ReceivedQty >= i.QtyOrdered {
		return 0
	}
	return i.QtyOrdered - i.ReceivedQty
}

// FreightLocal returns the freight charge for the volume received so far
func (i *LineItem) FreightLocal(ratePerVolume decimal.Decimal) decimal.Decimal {
	return i.ReceivedVolume.Mul(ratePerVolume).Round(MoneyPlaces)
}

// LandedUnitCost returns (cost_local + freight) per ordered unit
func (i *LineItem) LandedUnitCost(ratePerVolume decimal.Decimal) decimal.Decimal {
	if i.QtyOrdered == 0 {
		return decimal.Zero
	}
	return i.CostLocal.Add(i.FreightLocal(ratePerVolume)).
		Div(decimal.NewFromInt(i.QtyOrdered)).
		Round(MoneyPlaces)
}

// ReceiptBatch is one physical shipment event that may cover several items
type ReceiptBatch struct {
	ID           uuid.UUID       `json:"id"`
	HeaderID     uuid.UUID       `json:"header_id"`
	BatchNo      int             `json:"batch_no"`
	BillDate     *time.Time      `json:"bill_date,omitempty"`
	ReceivedDate time.Time       `json:"received_date"`
	TotalVolume  decimal.Decimal `json:"total_volume"`
	TotalWeight  decimal.Decimal `json:"total_weight"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Receipt records the quantity received for one line item, optionally within a batch
type Receipt struct {
	ID           uuid.UUID       `json:"id"`
	HeaderID     uuid.UUID       `json:"header_id"`
	LineItemID   uuid.UUID       `json:"line_item_id"`
	BatchID      *uuid.UUID      `json:"batch_id,omitempty"`
	ReceivedQty  int64           `json:"received_qty"`
	Volume       decimal.Decimal `json:"volume"`
	Weight       decimal.Decimal `json:"weight"`
	ReceivedDate time.Time       `json:"received_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InBatch reports whether the receipt belongs to the given batch
func (r *Receipt) InBatch(batchID uuid.UUID) bool {
	return r.BatchID != nil && *r.BatchID == batchID
}

// DurationDays returns the lead time from order to receipt, never less than one day
func (r *Receipt) DurationDays(orderDate time.Time) int {
	days := DaysBetween(orderDate, r.ReceivedDate)
	if days < 1 {
		return 1
	}
	return days
}
