// internal/core/domain/view.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderView is the read model handed to the web layer
type PurchaseOrderView struct {
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
	Status                Status          `json:"status"`
	TotalOrdered          int64           `json:"total_ordered"`
	TotalReceived         int64           `json:"total_received"`
	TotalCostLocal        decimal.Decimal `json:"total_cost_local"`
	TotalFreight          decimal.Decimal `json:"total_freight"`
	Version               int64           `json:"version"`
	Items                 []ItemView      `json:"items"`
	Receipts              []ReceiptView   `json:"receipts"`
}

// ItemView is one line of the purchase order view
type ItemView struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	QtyOrdered     int64           `json:"qty_ordered"`
	QtyReceived    int64           `json:"qty_received"`
	RemainingQty   int64           `json:"remaining_qty"`
	CostForeign    decimal.Decimal `json:"cost_foreign"`
	CostLocal      decimal.Decimal `json:"cost_local"`
	UnitCostLocal  decimal.Decimal `json:"unit_cost_local"`
	ReceivedVolume decimal.Decimal `json:"received_volume"`
	ReceivedWeight decimal.Decimal `json:"received_weight"`
	FreightLocal   decimal.Decimal `json:"freight_local"`
	LandedUnitCost decimal.Decimal `json:"landed_unit_cost"`
}

// ReceiptView is one receipt of the purchase order view
type ReceiptView struct {
	ID           uuid.UUID       `json:"id"`
	LineItemID   uuid.UUID       `json:"line_item_id"`
	SKU          string          `json:"sku"`
	BatchNo      *int            `json:"batch_no,omitempty"`
	ReceivedQty  int64           `json:"received_qty"`
	Volume       decimal.Decimal `json:"volume"`
	Weight       decimal.Decimal `json:"weight"`
	ReceivedDate time.Time       `json:"received_date"`
	DurationDays int             `json:"duration_days"`
}

// NewPurchaseOrderView builds the read model. Status is derived for today
// rather than read from the cached column.
func NewPurchaseOrderView(po *PurchaseOrder, today time.Time) *PurchaseOrderView {
	h := po.Header
	ordered, received := po.Totals()

	v := &PurchaseOrderView{
		ID:                    h.ID,
		PONumber:              h.PONumber,
		SupplierName:          h.SupplierName,
		OrderType:             h.OrderType,
		ShippingType:          h.ShippingType,
		OrderDate:             h.OrderDate,
		EstimatedDate:         h.EstimatedDate,
		BillDate:              h.BillDate,
		ExchangeRate:          h.ExchangeRate,
		TotalCostForeign:      h.TotalCostForeign,
		ShippingRatePerVolume: h.ShippingRatePerVolume,
		Status:                DeriveStatus(ordered, received, h.EstimatedDate, today),
		TotalOrdered:          ordered,
		TotalReceived:         received,
		TotalCostLocal:        decimal.Zero,
		TotalFreight:          h.TransportationCost,
		Version:               h.Version,
		Items:                 make([]ItemView, 0, len(po.Items)),
		Receipts:              make([]ReceiptView, 0, len(po.Receipts)),
	}

	for _, item := range po.Items {
		freight := item.FreightLocal(h.ShippingRatePerVolume)
		v.TotalCostLocal = v.TotalCostLocal.Add(item.CostLocal)
		v.TotalFreight = v.TotalFreight.Add(freight)
		v.Items = append(v.Items, ItemView{
			ID:             item.ID,
			SKU:            item.SKU,
			QtyOrdered:     item.QtyOrdered,
			QtyReceived:    item.ReceivedQty,
			RemainingQty:   item.RemainingQty(),
			CostForeign:    item.CostForeign,
			CostLocal:      item.CostLocal,
			UnitCostLocal:  item.UnitCostLocal(),
			ReceivedVolume: item.ReceivedVolume,
			ReceivedWeight: item.ReceivedWeight,
			FreightLocal:   freight,
			LandedUnitCost: item.LandedUnitCost(h.ShippingRatePerVolume),
		})
	}

	for _, r := range po.Receipts {
		rv := ReceiptView{
			ID:           r.ID,
			LineItemID:   r.LineItemID,
			ReceivedQty:  r.ReceivedQty,
			Volume:       r.Volume,
			Weight:       r.Weight,
			ReceivedDate: r.ReceivedDate,
			DurationDays: r.DurationDays(h.OrderDate),
		}
		if item := po.Item(r.LineItemID); item != nil {
			rv.SKU = item.SKU
		}
		if r.BatchID != nil {
			if b := po.batchByID(*r.BatchID); b != nil {
				no := b.BatchNo
				rv.BatchNo = &no
			}
		}
		v.Receipts = append(v.Receipts, rv)
	}

	return v
}

// HeaderSummary is a row of the purchase order list
type HeaderSummary struct {
	ID            uuid.UUID  `json:"id"`
	PONumber      string     `json:"po_number"`
	SupplierName  string     `json:"supplier_name,omitempty"`
	OrderDate     time.Time  `json:"order_date"`
	EstimatedDate *time.Time `json:"estimated_date,omitempty"`
	Status        Status     `json:"status"`
	TotalOrdered  int64      `json:"total_ordered"`
	TotalReceived int64      `json:"total_received"`
}
