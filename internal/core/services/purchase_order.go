// internal/core/services/purchase_order.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// PurchaseOrderService handles purchase order use cases
type PurchaseOrderService struct {
	orchestrator *OrderMutationOrchestrator
	repo         ports.PurchaseOrderRepository
	cache        ports.CacheRepository
	clock        Clock
	logger       *slog.Logger
}

// Statically assert that *PurchaseOrderService implements the PurchaseOrderService interface.
var _ ports.PurchaseOrderService = (*PurchaseOrderService)(nil)

// NewPurchaseOrderService creates a new purchase order service. cache may be nil.
func NewPurchaseOrderService(
	orchestrator *OrderMutationOrchestrator,
	repo ports.PurchaseOrderRepository,
	cache ports.CacheRepository,
	clock Clock,
	logger *slog.Logger,
) *PurchaseOrderService {
	if clock == nil {
		clock = SystemClock
	}
	return &PurchaseOrderService{
		orchestrator: orchestrator,
		repo:         repo,
		cache:        cache,
		clock:        clock,
		logger:       logger.With(slog.String("service", "purchase_order")),
	}
}

// UpsertHeader creates the purchase order for in.PONumber or updates its header fields
func (s *PurchaseOrderService) UpsertHeader(ctx context.Context, in ports.HeaderInput) (*domain.PurchaseOrderView, error) {
	header := headerFromInput(in)
	header.ApplyDefaults()
	if err := header.Validate(); err != nil {
		return nil, err
	}

	id, err := s.repo.FindIDByNumber(ctx, header.PONumber)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		po, err := s.orchestrator.CommitNew(ctx, header, NoChange)
		if errors.Is(err, domain.ErrDuplicatePONumber) {
			// Lost a create race; fall through to an update of the winner.
			if id, err = s.repo.FindIDByNumber(ctx, header.PONumber); err != nil {
				return nil, fmt.Errorf("failed to find purchase order: %w", err)
			}
			return s.updateHeader(ctx, id, in)
		}
		if err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "purchase order created",
			slog.String("header_id", po.Header.ID.String()),
			slog.String("po_number", po.Header.PONumber))
		return s.view(po), nil
	case err != nil:
		return nil, fmt.Errorf("failed to find purchase order: %w", err)
	}

	return s.updateHeader(ctx, id, in)
}

func (s *PurchaseOrderService) updateHeader(ctx context.Context, id uuid.UUID, in ports.HeaderInput) (*domain.PurchaseOrderView, error) {
	po, err := s.orchestrator.CommitMutation(ctx, id, func(_ context.Context, _ ports.OrderStore, po *domain.PurchaseOrder) error {
		h := &po.Header
		stored := h.ShippingType
		h.SupplierName = in.SupplierName
		if in.OrderType != "" {
			h.OrderType = in.OrderType
		}
		h.ShippingType = in.ShippingType
		h.OrderDate = domain.DateOf(in.OrderDate)
		h.EstimatedDate = in.EstimatedDate
		h.BillDate = in.BillDate
		h.ExchangeRate = in.ExchangeRate
		h.TotalCostForeign = in.TotalCostForeign
		h.ShippingRatePerVolume = in.ShippingRatePerVolume
		h.TransportationCost = in.TransportationCost
		h.Note = in.Note
		h.ApplyDefaults()
		if in.ShippingType == "" && stored != "" {
			h.ShippingType = stored
		}
		return h.Validate()
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "purchase order header updated",
		slog.String("header_id", po.Header.ID.String()),
		slog.Int64("version", po.Header.Version))
	s.invalidate(ctx, nil)
	return s.view(po), nil
}

// UpsertItem adds or changes a line item and reprorates the whole order
func (s *PurchaseOrderService) UpsertItem(ctx context.Context, in ports.ItemInput) (*domain.PurchaseOrderView, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return nil, domain.Invalid("sku", "sku is required")
	}
	if in.QtyOrdered < 0 {
		return nil, domain.NewValidationError("qty_ordered", domain.ErrNegativeQuantity)
	}

	po, err := s.orchestrator.CommitMutation(ctx, in.HeaderID, func(ctx context.Context, store ports.OrderStore, po *domain.PurchaseOrder) error {
		if err := requireKnownSKUs(ctx, store, sku); err != nil {
			return err
		}
		if in.ItemID != nil && po.Item(*in.ItemID) == nil {
			if err := requireItemOwner(ctx, store, *in.ItemID, po.Header.ID); err != nil {
				return err
			}
		}
		_, err := po.UpsertItem(in.ItemID, sku, in.QtyOrdered)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "line item upserted",
		slog.String("header_id", in.HeaderID.String()),
		slog.String("sku", sku),
		slog.Int64("qty_ordered", in.QtyOrdered))
	s.invalidate(ctx, po)
	return s.view(po), nil
}

// RemoveItem deletes a line item with its receipts and reprorates the order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, headerID, itemID uuid.UUID) (*domain.PurchaseOrderView, error) {
	var sku string
	po, err := s.orchestrator.CommitMutation(ctx, headerID, func(ctx context.Context, store ports.OrderStore, po *domain.PurchaseOrder) error {
		item := po.Item(itemID)
		if item == nil {
			if err := requireItemOwner(ctx, store, itemID, headerID); err != nil {
				return err
			}
			return domain.NotFound("line item", itemID)
		}
		sku = item.SKU
		return po.RemoveItem(itemID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "line item removed",
		slog.String("header_id", headerID.String()),
		slog.String("item_id", itemID.String()))
	s.invalidate(ctx, po, sku)
	return s.view(po), nil
}

// SubmitBatchReceipt records a shipment covering several items and interpolates
// the batch volume and weight across them
func (s *PurchaseOrderService) SubmitBatchReceipt(ctx context.Context, in ports.BatchReceiptInput) (*domain.PurchaseOrderView, error) {
	po, err := s.orchestrator.CommitMutation(ctx, in.HeaderID, func(ctx context.Context, store ports.OrderStore, po *domain.PurchaseOrder) error {
		for _, q := range in.Items {
			if po.Item(q.LineItemID) == nil {
				if err := requireItemOwner(ctx, store, q.LineItemID, po.Header.ID); err != nil {
					return err
				}
			}
		}
		_, err := po.ApplyBatchReceipt(domain.BatchReceipt{
			BatchNo:      in.BatchNo,
			BillDate:     in.BillDate,
			ReceivedDate: in.ReceivedDate,
			TotalVolume:  in.BatchTotalVolume,
			TotalWeight:  in.BatchTotalWeight,
			Items:        in.Items,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "batch receipt submitted",
		slog.String("header_id", in.HeaderID.String()),
		slog.Int("batch_no", in.BatchNo),
		slog.Int("items", len(in.Items)),
		slog.String("status", string(po.Header.Status)))
	s.invalidate(ctx, po)
	return s.view(po), nil
}

// RecordReceipt records an ad-hoc receipt for one item outside any batch
func (s *PurchaseOrderService) RecordReceipt(ctx context.Context, in ports.AdhocReceiptInput) (*domain.PurchaseOrderView, error) {
	po, err := s.orchestrator.CommitMutation(ctx, in.HeaderID, func(ctx context.Context, store ports.OrderStore, po *domain.PurchaseOrder) error {
		if po.Item(in.ItemID) == nil {
			if err := requireItemOwner(ctx, store, in.ItemID, po.Header.ID); err != nil {
				return err
			}
		}
		_, err := po.RecordReceipt(domain.AdhocReceipt{
			LineItemID:   in.ItemID,
			Qty:          in.Qty,
			Volume:       in.Volume,
			Weight:       in.Weight,
			ReceivedDate: in.ReceivedDate,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "receipt recorded",
		slog.String("header_id", in.HeaderID.String()),
		slog.String("item_id", in.ItemID.String()),
		slog.Int64("qty", in.Qty))
	s.invalidate(ctx, po)
	return s.view(po), nil
}

// DeleteReceipt removes a receipt; the item totals and status are recomputed in
// the same transaction
func (s *PurchaseOrderService) DeleteReceipt(ctx context.Context, receiptID uuid.UUID) (*domain.PurchaseOrderView, error) {
	headerID, err := s.repo.FindReceiptHeader(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}

	po, err := s.orchestrator.CommitMutation(ctx, headerID, func(_ context.Context, _ ports.OrderStore, po *domain.PurchaseOrder) error {
		return po.DeleteReceipt(receiptID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "receipt deleted",
		slog.String("header_id", headerID.String()),
		slog.String("receipt_id", receiptID.String()),
		slog.String("status", string(po.Header.Status)))
	s.invalidate(ctx, po)
	return s.view(po), nil
}

// GetView returns the read model of one purchase order
func (s *PurchaseOrderService) GetView(ctx context.Context, headerID uuid.UUID) (*domain.PurchaseOrderView, error) {
	po, err := s.repo.Load(ctx, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	return s.view(po), nil
}

// GetViewByNumber returns the read model of the purchase order with poNumber
func (s *PurchaseOrderService) GetViewByNumber(ctx context.Context, poNumber string) (*domain.PurchaseOrderView, error) {
	id, err := s.repo.FindIDByNumber(ctx, strings.TrimSpace(poNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase order: %w", err)
	}
	return s.GetView(ctx, id)
}

// List returns one page of purchase order summaries
func (s *PurchaseOrderService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	if params.Status != "" && !params.Status.IsValid() {
		return nil, domain.Invalid("status", "unknown status %q", params.Status)
	}
	params.Page, params.PageSize = normalizePage(params.Page, params.PageSize)

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	result.TotalPages = totalPages(result.TotalCount, result.PageSize)
	return result, nil
}

// RefreshStatuses re-derives the cached status of every order that is not
// complete, so date-driven states follow the calendar without a mutation.
func (s *PurchaseOrderService) RefreshStatuses(ctx context.Context) (int, error) {
	ids, err := s.repo.ListOpenHeaderIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list open purchase orders: %w", err)
	}

	refreshed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		if _, err := s.orchestrator.CommitMutation(ctx, id, NoChange); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return refreshed, fmt.Errorf("failed to refresh purchase order %s: %w", id, err)
		}
		refreshed++
	}

	s.logger.InfoContext(ctx, "purchase order statuses refreshed",
		slog.Int("count", refreshed))
	if refreshed > 0 {
		s.invalidate(ctx, nil)
	}
	return refreshed, nil
}

func (s *PurchaseOrderService) view(po *domain.PurchaseOrder) *domain.PurchaseOrderView {
	return domain.NewPurchaseOrderView(po, domain.DateOf(s.clock()))
}

// invalidate drops cached stock levels for every SKU on po plus extra, and the
// dashboard summary
func (s *PurchaseOrderService) invalidate(ctx context.Context, po *domain.PurchaseOrder, extra ...string) {
	skus := append([]string{}, extra...)
	if po != nil {
		for _, item := range po.Items {
			skus = append(skus, item.SKU)
		}
	}
	invalidateStock(ctx, s.cache, s.logger, skus...)
}

func headerFromInput(in ports.HeaderInput) domain.PurchaseOrderHeader {
	return domain.PurchaseOrderHeader{
		PONumber:              in.PONumber,
		SupplierName:          in.SupplierName,
		OrderType:             in.OrderType,
		ShippingType:          in.ShippingType,
		OrderDate:             in.OrderDate,
		EstimatedDate:         in.EstimatedDate,
		BillDate:              in.BillDate,
		ExchangeRate:          in.ExchangeRate,
		TotalCostForeign:      in.TotalCostForeign,
		ShippingRatePerVolume: in.ShippingRatePerVolume,
		TransportationCost:    in.TransportationCost,
		Note:                  in.Note,
	}
}

func requireKnownSKUs(ctx context.Context, store ports.OrderStore, skus ...string) error {
	unknown, err := store.UnknownSKUs(ctx, skus)
	if err != nil {
		return fmt.Errorf("failed to check skus: %w", err)
	}
	if len(unknown) > 0 {
		return &domain.ValidationError{
			Field:   "sku",
			Message: fmt.Sprintf("%s: %s", domain.ErrUnknownSKU, strings.Join(unknown, ", ")),
			Err:     domain.ErrUnknownSKU,
		}
	}
	return nil
}

// requireItemOwner turns a reference to an item missing from the aggregate into
// a ConsistencyError when it lives on another order, or a not-found error.
func requireItemOwner(ctx context.Context, store ports.OrderStore, itemID, headerID uuid.UUID) error {
	owner, err := store.LineItemHeader(ctx, itemID)
	if err != nil {
		return err
	}
	if owner != headerID {
		return &domain.ConsistencyError{Entity: "line item", ID: itemID, ClaimedParent: headerID, ActualParent: owner}
	}
	return nil
}
