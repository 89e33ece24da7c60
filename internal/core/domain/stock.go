// internal/core/domain/stock.go
package domain

import (
	"strings"
	"time"
)

// StockStatus classifies a resolved quantity against the product's minimum
type StockStatus string

const (
	StockOK       StockStatus = "OK"
	StockLow      StockStatus = "LOW"
	StockDepleted StockStatus = "DEPLETED"
)

// IsValid reports whether s is a known stock status
func (s StockStatus) IsValid() bool {
	return s == StockOK || s == StockLow || s == StockDepleted
}

// StockSource tells where a resolved quantity came from
type StockSource string

const (
	SourceSnapshot StockSource = "SNAPSHOT"
	SourceDerived  StockSource = "DERIVED"
)

// Product is the SKU master record
type Product struct {
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	BaseQuantity int64     `json:"base_quantity"`
	MinLimit     int64     `json:"min_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate performs domain validation on the product
func (p *Product) Validate() error {
	p.SKU = strings.TrimSpace(p.SKU)
	if p.SKU == "" {
		return Invalid("sku", "sku is required")
	}
	if p.MinLimit < 0 {
		return Invalid("min_limit", "min_limit cannot be negative")
	}
	return nil
}

// StockSnapshot is an authoritative dated quantity supplied by an external system
type StockSnapshot struct {
	SKU          string    `json:"sku"`
	SnapshotDate time.Time `json:"snapshot_date"`
	Quantity     int64     `json:"quantity"`
	IngestedAt   time.Time `json:"ingested_at"`
}

// Validate performs domain validation on the snapshot
func (s *StockSnapshot) Validate() error {
	s.SKU = strings.TrimSpace(s.SKU)
	if s.SKU == "" {
		return Invalid("sku", "sku is required")
	}
	if s.SnapshotDate.IsZero() {
		return Invalid("snapshot_date", "snapshot_date is required")
	}
	s.SnapshotDate = DateOf(s.SnapshotDate)
	return nil
}

// Sale is one sold line, unique per marketplace order and SKU
type Sale struct {
	OrderID   string    `json:"order_id"`
	SKU       string    `json:"sku"`
	Qty       int64     `json:"qty"`
	Platform  string    `json:"platform,omitempty"`
	SoldAt    time.Time `json:"sold_at"`
	Cancelled bool      `json:"cancelled,omitempty"`
}

// Validate performs domain validation on the sale
func (s *Sale) Validate() error {
	s.OrderID = strings.TrimSpace(s.OrderID)
	s.SKU = strings.TrimSpace(s.SKU)
	if s.OrderID == "" {
		return Invalid("order_id", "order_id is required")
	}
	if s.SKU == "" {
		return Invalid("sku", "sku is required")
	}
	if s.Qty < 0 {
		return NewValidationError("qty", ErrNegativeQuantity)
	}
	return nil
}

// StockFigures are the aggregate inputs needed to resolve one SKU
type StockFigures struct {
	Product     Product
	Snapshot    *StockSnapshot
	ReceivedQty int64
	SoldQty     int64
}

// StockLevel is the resolved quantity of a SKU
type StockLevel struct {
	SKU      string      `json:"sku"`
	Name     string      `json:"name,omitempty"`
	Quantity int64       `json:"quantity"`
	Status   StockStatus `json:"status"`
	Source   StockSource `json:"source"`
	MinLimit int64       `json:"min_limit"`
	AsOf     time.Time   `json:"as_of"`
}

// ClassifyStock maps a quantity onto Depleted, Low or OK
func ClassifyStock(quantity, minLimit int64) StockStatus {
	switch {
	case quantity <= 0:
		return StockDepleted
	case quantity <= minLimit:
		return StockLow
	default:
		return StockOK
	}
}

// ResolveStock prefers a snapshot for asOf and otherwise derives the quantity
// from the product baseline plus receipts minus sales. The two are never mixed.
func ResolveStock(f StockFigures, asOf time.Time) StockLevel {
	level := StockLevel{
		SKU:      f.Product.SKU,
		Name:     f.Product.Name,
		MinLimit: f.Product.MinLimit,
		AsOf:     DateOf(asOf),
	}

	if f.Snapshot != nil && DateOf(f.Snapshot.SnapshotDate).Equal(level.AsOf) {
		level.Quantity = f.Snapshot.Quantity
		level.Source = SourceSnapshot
	} else {
		level.Quantity = f.Product.BaseQuantity + f.ReceivedQty - f.SoldQty
		level.Source = SourceDerived
	}

	level.Status = ClassifyStock(level.Quantity, f.Product.MinLimit)
	return level
}
