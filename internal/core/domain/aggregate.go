// internal/core/domain/aggregate.go
package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrder is the header together with everything it owns. All mutations
// of costed or received state go through its methods.
type PurchaseOrder struct {
	Header   PurchaseOrderHeader `json:"header"`
	Items    []*LineItem         `json:"items"`
	Batches  []*ReceiptBatch     `json:"batches"`
	Receipts []*Receipt          `json:"receipts"`

	removedItems    []uuid.UUID
	removedReceipts []uuid.UUID
}

// BatchReceipt is a typed batch receiving submission
type BatchReceipt struct {
	BatchNo      int
	BillDate     *time.Time
	ReceivedDate time.Time
	TotalVolume  *decimal.Decimal
	TotalWeight  *decimal.Decimal
	Items        []ItemQuantity
}

// AdhocReceipt is a single-item receipt recorded outside any batch
type AdhocReceipt struct {
	LineItemID   uuid.UUID
	Qty          int64
	Volume       decimal.Decimal
	Weight       decimal.Decimal
	ReceivedDate time.Time
}

// NewPurchaseOrder wraps a header in an empty aggregate
func NewPurchaseOrder(header PurchaseOrderHeader) *PurchaseOrder {
	return &PurchaseOrder{Header: header}
}

// Item returns the line item with id, or nil
func (po *PurchaseOrder) Item(id uuid.UUID) *LineItem {
	for _, item := range po.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// ItemBySKU returns the line item for sku, or nil
func (po *PurchaseOrder) ItemBySKU(sku string) *LineItem {
	for _, item := range po.Items {
		if item.SKU == sku {
			return item
		}
	}
	return nil
}

// Batch returns the batch with the given per-order number, or nil
func (po *PurchaseOrder) Batch(batchNo int) *ReceiptBatch {
	for _, b := range po.Batches {
		if b.BatchNo == batchNo {
			return b
		}
	}
	return nil
}

func (po *PurchaseOrder) batchByID(id uuid.UUID) *ReceiptBatch {
	for _, b := range po.Batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Receipt returns the receipt with id, or nil
func (po *PurchaseOrder) Receipt(id uuid.UUID) *Receipt {
	for _, r := range po.Receipts {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// RemovedItemIDs lists line items removed since the aggregate was loaded
func (po *PurchaseOrder) RemovedItemIDs() []uuid.UUID { return po.removedItems }

// RemovedReceiptIDs lists receipts removed since the aggregate was loaded
func (po *PurchaseOrder) RemovedReceiptIDs() []uuid.UUID { return po.removedReceipts }

// UpsertItem updates the item identified by itemID, or by sku when itemID is
// nil, creating it when neither exists.
func (po *PurchaseOrder) UpsertItem(itemID *uuid.UUID, sku string, qty int64) (*LineItem, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, Invalid("sku", "sku is required")
	}
	if qty < 0 {
		return nil, NewValidationError("qty_ordered", ErrNegativeQuantity)
	}

	var item *LineItem
	if itemID != nil {
		item = po.Item(*itemID)
		if item == nil {
			return nil, NotFound("line item", *itemID)
		}
		if item.SKU != sku {
			if other := po.ItemBySKU(sku); other != nil {
				return nil, Invalid("sku", "sku %s is already on purchase order %s", sku, po.Header.PONumber)
			}
			if po.hasReceipts(item.ID) {
				return nil, Invalid("sku", "cannot change sku of an item that has receipts")
			}
		}
	} else {
		item = po.ItemBySKU(sku)
	}

	if item == nil {
		item = &LineItem{
			ID:             uuid.New(),
			HeaderID:       po.Header.ID,
			Position:       po.nextPosition(),
			CostForeign:    decimal.Zero,
			CostLocal:      decimal.Zero,
			ReceivedVolume: decimal.Zero,
			ReceivedWeight: decimal.Zero,
		}
		po.Items = append(po.Items, item)
	}
	item.SKU = sku
	item.QtyOrdered = qty

	return item, nil
}

// RemoveItem deletes a line item together with its receipts
func (po *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	idx := -1
	for i, item := range po.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NotFound("line item", itemID)
	}

	touched := map[uuid.UUID]bool{}
	kept := po.Receipts[:0]
	for _, r := range po.Receipts {
		if r.LineItemID == itemID {
			po.removedReceipts = append(po.removedReceipts, r.ID)
			if r.BatchID != nil {
				touched[*r.BatchID] = true
			}
			continue
		}
		kept = append(kept, r)
	}
	po.Receipts = kept

	po.Items = append(po.Items[:idx], po.Items[idx+1:]...)
	po.removedItems = append(po.removedItems, itemID)

	for id := range touched {
		if b := po.batchByID(id); b != nil {
			po.reinterpolate(b)
		}
	}
	return nil
}

// ApplyBatchReceipt upserts the batch by number and the receipts by (item, batch),
// then redistributes the batch volume and weight over every receipt in it.
// A quantity of zero withdraws that item from the batch.
func (po *PurchaseOrder) ApplyBatchReceipt(in BatchReceipt) (*ReceiptBatch, error) {
	if in.BatchNo <= 0 {
		return nil, Invalid("batch_no", "batch_no must be positive")
	}
	if in.ReceivedDate.IsZero() {
		return nil, Invalid("received_date", "received_date is required")
	}
	if in.TotalVolume != nil && in.TotalVolume.IsNegative() {
		return nil, Invalid("batch_total_volume", "batch_total_volume cannot be negative")
	}
	if in.TotalWeight != nil && in.TotalWeight.IsNegative() {
		return nil, Invalid("batch_total_weight", "batch_total_weight cannot be negative")
	}
	if len(in.Items) == 0 {
		return nil, Invalid("items", "at least one item is required")
	}

	seen := make(map[uuid.UUID]bool, len(in.Items))
	for _, q := range in.Items {
		if q.Qty < 0 {
			return nil, NewValidationError("qty", ErrNegativeQuantity)
		}
		if seen[q.LineItemID] {
			return nil, Invalid("items", "item %s listed more than once", q.LineItemID)
		}
		seen[q.LineItemID] = true
		if po.Item(q.LineItemID) == nil {
			return nil, NotFound("line item", q.LineItemID)
		}
	}

	batch := po.Batch(in.BatchNo)
	if batch == nil {
		batch = &ReceiptBatch{
			ID:          uuid.New(),
			HeaderID:    po.Header.ID,
			BatchNo:     in.BatchNo,
			TotalVolume: decimal.Zero,
			TotalWeight: decimal.Zero,
		}
		po.Batches = append(po.Batches, batch)
	}
	batch.BillDate = in.BillDate
	batch.ReceivedDate = DateOf(in.ReceivedDate)
	if in.TotalVolume != nil {
		batch.TotalVolume = *in.TotalVolume
	}
	if in.TotalWeight != nil {
		batch.TotalWeight = *in.TotalWeight
	}

	for _, q := range in.Items {
		existing := po.batchReceipt(q.LineItemID, batch.ID)
		if q.Qty == 0 {
			if existing != nil {
				po.dropReceipt(existing.ID)
			}
			continue
		}
		if existing == nil {
			batchID := batch.ID
			existing = &Receipt{
				ID:         uuid.New(),
				HeaderID:   po.Header.ID,
				LineItemID: q.LineItemID,
				BatchID:    &batchID,
			}
			po.Receipts = append(po.Receipts, existing)
		}
		existing.ReceivedQty = q.Qty
	}

	for _, r := range po.Receipts {
		if r.InBatch(batch.ID) {
			r.ReceivedDate = batch.ReceivedDate
		}
	}
	po.reinterpolate(batch)

	return batch, nil
}

// RecordReceipt adds a receipt that belongs to no batch
func (po *PurchaseOrder) RecordReceipt(in AdhocReceipt) (*Receipt, error) {
	if in.Qty < 0 {
		return nil, NewValidationError("qty", ErrNegativeQuantity)
	}
	if in.Volume.IsNegative() || in.Weight.IsNegative() {
		return nil, Invalid("volume", "volume and weight cannot be negative")
	}
	if in.ReceivedDate.IsZero() {
		return nil, Invalid("received_date", "received_date is required")
	}
	if po.Item(in.LineItemID) == nil {
		return nil, NotFound("line item", in.LineItemID)
	}

	r := &Receipt{
		ID:           uuid.New(),
		HeaderID:     po.Header.ID,
		LineItemID:   in.LineItemID,
		ReceivedQty:  in.Qty,
		Volume:       in.Volume.Round(VolumePlaces),
		Weight:       in.Weight.Round(WeightPlaces),
		ReceivedDate: DateOf(in.ReceivedDate),
	}
	po.Receipts = append(po.Receipts, r)
	return r, nil
}

// DeleteReceipt removes a receipt and rebalances its batch, if any
func (po *PurchaseOrder) DeleteReceipt(receiptID uuid.UUID) error {
	r := po.Receipt(receiptID)
	if r == nil {
		return NotFound("receipt", receiptID)
	}
	if r.HeaderID != po.Header.ID {
		return &ConsistencyError{Entity: "receipt", ID: r.ID, ClaimedParent: po.Header.ID, ActualParent: r.HeaderID}
	}

	po.dropReceipt(receiptID)
	if r.BatchID != nil {
		if b := po.batchByID(*r.BatchID); b != nil {
			po.reinterpolate(b)
		}
	}
	return nil
}

// CheckConsistency verifies every child points at this header and at existing parents
func (po *PurchaseOrder) CheckConsistency() error {
	for _, item := range po.Items {
		if item.HeaderID != po.Header.ID {
			return &ConsistencyError{Entity: "line item", ID: item.ID, ClaimedParent: po.Header.ID, ActualParent: item.HeaderID}
		}
	}
	for _, b := range po.Batches {
		if b.HeaderID != po.Header.ID {
			return &ConsistencyError{Entity: "receipt batch", ID: b.ID, ClaimedParent: po.Header.ID, ActualParent: b.HeaderID}
		}
	}
	for _, r := range po.Receipts {
		if r.HeaderID != po.Header.ID {
			return &ConsistencyError{Entity: "receipt", ID: r.ID, ClaimedParent: po.Header.ID, ActualParent: r.HeaderID}
		}
		if po.Item(r.LineItemID) == nil {
			return &ConsistencyError{Entity: "receipt", ID: r.ID, ClaimedParent: po.Header.ID}
		}
		if r.BatchID != nil && po.batchByID(*r.BatchID) == nil {
			return &ConsistencyError{Entity: "receipt", ID: r.ID, ClaimedParent: po.Header.ID}
		}
	}
	return nil
}

// RecomputeReceivedTotals re-sums every item's received figures from its receipts
func (po *PurchaseOrder) RecomputeReceivedTotals() {
	for _, item := range po.Items {
		item.ReceivedQty = 0
		item.ReceivedVolume = decimal.Zero
		item.ReceivedWeight = decimal.Zero
	}
	for _, r := range po.Receipts {
		item := po.Item(r.LineItemID)
		if item == nil {
			continue
		}
		item.ReceivedQty += r.ReceivedQty
		item.ReceivedVolume = item.ReceivedVolume.Add(r.Volume)
		item.ReceivedWeight = item.ReceivedWeight.Add(r.Weight)
	}
}

// Totals returns the ordered and received quantities across the whole order
func (po *PurchaseOrder) Totals() (ordered, received int64) {
	for _, item := range po.Items {
		ordered += item.QtyOrdered
		received += item.ReceivedQty
	}
	return ordered, received
}

// Recompute refreshes every derived field: item costs, received totals and status.
func (po *PurchaseOrder) Recompute(today time.Time) {
	Prorate(po)
	po.RecomputeReceivedTotals()
	ordered, received := po.Totals()
	po.Header.Status = DeriveStatus(ordered, received, po.Header.EstimatedDate, today)
}

func (po *PurchaseOrder) reinterpolate(batch *ReceiptBatch) {
	var receipts []*Receipt
	var quantities []ItemQuantity
	for _, r := range po.Receipts {
		if r.InBatch(batch.ID) {
			receipts = append(receipts, r)
			quantities = append(quantities, ItemQuantity{LineItemID: r.LineItemID, Qty: r.ReceivedQty})
		}
	}

	for i, m := range Interpolate(batch, quantities) {
		receipts[i].Volume = m.Volume
		receipts[i].Weight = m.Weight
	}
}

func (po *PurchaseOrder) batchReceipt(itemID, batchID uuid.UUID) *Receipt {
	for _, r := range po.Receipts {
		if r.LineItemID == itemID && r.InBatch(batchID) {
			return r
		}
	}
	return nil
}

func (po *PurchaseOrder) dropReceipt(id uuid.UUID) {
	for i, r := range po.Receipts {
		if r.ID == id {
			po.Receipts = append(po.Receipts[:i], po.Receipts[i+1:]...)
			po.removedReceipts = append(po.removedReceipts, id)
			return
		}
	}
}

func (po *PurchaseOrder) hasReceipts(itemID uuid.UUID) bool {
	for _, r := range po.Receipts {
		if r.LineItemID == itemID {
			return true
		}
	}
	return false
}

func (po *PurchaseOrder) nextPosition() int {
	next := 1
	for _, item := range po.Items {
		if item.Position >= next {
			next = item.Position + 1
		}
	}
	return next
}

func (po *PurchaseOrder) sortItems() {
	sort.SliceStable(po.Items, func(i, j int) bool {
		a, b := po.Items[i], po.Items[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID.String() < b.ID.String()
	})
}
