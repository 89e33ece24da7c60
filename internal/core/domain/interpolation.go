// internal/core/domain/interpolation.go
package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemQuantity is the quantity of one line item received in a batch
type ItemQuantity struct {
	LineItemID uuid.UUID `json:"item_id"`
	Qty        int64     `json:"qty"`
}

// ItemMeasurement is the share of a batch's volume and weight assigned to one item
type ItemMeasurement struct {
	LineItemID uuid.UUID
	Qty        int64
	Volume     decimal.Decimal
	Weight     decimal.Decimal
}

// Interpolate splits the batch's total volume and weight across the received
// quantities in proportion to qty. With no quantity received every share is zero.
func Interpolate(batch *ReceiptBatch, quantities []ItemQuantity) []ItemMeasurement {
	weights := make([]int64, len(quantities))
	for i, q := range quantities {
		weights[i] = q.Qty
	}

	volumes := Allocate(batch.TotalVolume, weights, VolumePlaces)
	masses := Allocate(batch.TotalWeight, weights, WeightPlaces)

	out := make([]ItemMeasurement, len(quantities))
	for i, q := range quantities {
		out[i] = ItemMeasurement{
			LineItemID: q.LineItemID,
			Qty:        q.Qty,
			Volume:     volumes[i],
			Weight:     masses[i],
		}
	}
	return out
}
