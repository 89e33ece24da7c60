// internal/adapters/db/purchase_order_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

const poNumberConstraint = "purchase_orders_po_number_key"

const headerColumns = `id, po_number, supplier_name, order_type, shipping_type, order_date,
	estimated_date, bill_date, exchange_rate, total_cost_foreign, shipping_rate_per_volume,
	transportation_cost, note, status, version, created_at, updated_at`

const itemColumns = `id, header_id, sku, qty_ordered, cost_foreign, cost_local, received_qty,
	received_volume, received_weight, position, created_at, updated_at`

const batchColumns = `id, header_id, batch_no, bill_date, received_date, total_volume,
	total_weight, created_at, updated_at`

const receiptColumns = `id, header_id, line_item_id, batch_id, received_qty, volume, weight,
	received_date, created_at, updated_at`

// sortColumns maps accepted sort keys to their columns
var sortColumns = map[string]string{
	"po_number":      "h.po_number",
	"supplier_name":  "h.supplier_name",
	"order_date":     "h.order_date",
	"estimated_date": "h.estimated_date",
	"status":         "h.status",
	"created_at":     "h.created_at",
}

// PurchaseOrderRepository is the read side of purchase order persistence
type PurchaseOrderRepository struct {
	db     *Database
	logger *slog.Logger
}

// Statically assert that *PurchaseOrderRepository implements the PurchaseOrderRepository interface.
var _ ports.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *Database, logger *slog.Logger) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "purchase_order")),
	}
}

// UnitOfWork opens a transaction and hands out an OrderStore bound to it
type UnitOfWork struct {
	db     *Database
	logger *slog.Logger
}

// Statically assert that *UnitOfWork implements the UnitOfWork interface.
var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a new unit of work over db
func NewUnitOfWork(db *Database, logger *slog.Logger) *UnitOfWork {
	return &UnitOfWork{db: db, logger: logger.With(slog.String("component", "unit_of_work"))}
}

// WithinTx runs fn inside a single transaction
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, store ports.OrderStore) error) error {
	return u.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &orderStore{q: tx, logger: u.logger})
	})
}

// orderStore is the transaction-scoped write side
type orderStore struct {
	q      querier
	logger *slog.Logger
}

var _ ports.OrderStore = (*orderStore)(nil)

// LoadForUpdate reads the aggregate and locks its header row
func (s *orderStore) LoadForUpdate(ctx context.Context, headerID uuid.UUID) (*domain.PurchaseOrder, error) {
	return loadOrder(ctx, s.q, headerID, true)
}

// InsertHeader creates the header row at version 0
func (s *orderStore) InsertHeader(ctx context.Context, h *domain.PurchaseOrderHeader) error {
	query := `
		INSERT INTO purchase_orders (` + headerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 0, NOW(), NOW())
		RETURNING version, created_at, updated_at`

	err := s.q.QueryRow(ctx, query,
		h.ID, h.PONumber, h.SupplierName, h.OrderType, h.ShippingType, h.OrderDate,
		h.EstimatedDate, h.BillDate, h.ExchangeRate, h.TotalCostForeign, h.ShippingRatePerVolume,
		h.TransportationCost, h.Note, h.Status,
	).Scan(&h.Version, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, poNumberConstraint) {
			return domain.NewValidationError("po_number", fmt.Errorf("%w: %s", domain.ErrDuplicatePONumber, h.PONumber))
		}
		return fmt.Errorf("failed to insert purchase order header: %w", err)
	}
	return nil
}

// Save writes the aggregate and bumps the header version
func (s *orderStore) Save(ctx context.Context, po *domain.PurchaseOrder, now time.Time) error {
	if ids := po.RemovedReceiptIDs(); len(ids) > 0 {
		if _, err := s.q.Exec(ctx, `DELETE FROM po_receipts WHERE id = ANY($1::uuid[])`, uuidStrings(ids)); err != nil {
			return fmt.Errorf("failed to delete receipts: %w", err)
		}
	}
	if ids := po.RemovedItemIDs(); len(ids) > 0 {
		if _, err := s.q.Exec(ctx, `DELETE FROM po_line_items WHERE id = ANY($1::uuid[])`, uuidStrings(ids)); err != nil {
			return fmt.Errorf("failed to delete line items: %w", err)
		}
	}

	h := &po.Header
	tag, err := s.q.Exec(ctx, `
		UPDATE purchase_orders SET
			po_number = $3, supplier_name = $4, order_type = $5, shipping_type = $6,
			order_date = $7, estimated_date = $8, bill_date = $9, exchange_rate = $10,
			total_cost_foreign = $11, shipping_rate_per_volume = $12, transportation_cost = $13,
			note = $14, status = $15, version = version + 1, updated_at = $16
		WHERE id = $1 AND version = $2`,
		h.ID, h.Version, h.PONumber, h.SupplierName, h.OrderType, h.ShippingType,
		h.OrderDate, h.EstimatedDate, h.BillDate, h.ExchangeRate,
		h.TotalCostForeign, h.ShippingRatePerVolume, h.TransportationCost,
		h.Note, h.Status, now)
	if err != nil {
		if isUniqueViolation(err, poNumberConstraint) {
			return domain.NewValidationError("po_number", fmt.Errorf("%w: %s", domain.ErrDuplicatePONumber, h.PONumber))
		}
		return fmt.Errorf("failed to update purchase order header: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ConcurrentModificationError{HeaderID: h.ID, ExpectedVersion: h.Version}
	}
	h.Version++
	h.UpdatedAt = now

	batch := &pgx.Batch{}
	for _, b := range po.Batches {
		batch.Queue(`
			INSERT INTO po_receipt_batches (`+batchColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			ON CONFLICT (id) DO UPDATE SET
				bill_date = EXCLUDED.bill_date, received_date = EXCLUDED.received_date,
				total_volume = EXCLUDED.total_volume, total_weight = EXCLUDED.total_weight,
				updated_at = EXCLUDED.updated_at`,
			b.ID, b.HeaderID, b.BatchNo, b.BillDate, b.ReceivedDate, b.TotalVolume, b.TotalWeight, now)
	}
	for _, i := range po.Items {
		batch.Queue(`
			INSERT INTO po_line_items (`+itemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
			ON CONFLICT (id) DO UPDATE SET
				sku = EXCLUDED.sku, qty_ordered = EXCLUDED.qty_ordered,
				cost_foreign = EXCLUDED.cost_foreign, cost_local = EXCLUDED.cost_local,
				received_qty = EXCLUDED.received_qty, received_volume = EXCLUDED.received_volume,
				received_weight = EXCLUDED.received_weight, position = EXCLUDED.position,
				updated_at = EXCLUDED.updated_at`,
			i.ID, i.HeaderID, i.SKU, i.QtyOrdered, i.CostForeign, i.CostLocal, i.ReceivedQty,
			i.ReceivedVolume, i.ReceivedWeight, i.Position, now)
	}
	for _, r := range po.Receipts {
		batch.Queue(`
			INSERT INTO po_receipts (`+receiptColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			ON CONFLICT (id) DO UPDATE SET
				received_qty = EXCLUDED.received_qty, volume = EXCLUDED.volume,
				weight = EXCLUDED.weight, received_date = EXCLUDED.received_date,
				updated_at = EXCLUDED.updated_at`,
			r.ID, r.HeaderID, r.LineItemID, r.BatchID, r.ReceivedQty, r.Volume, r.Weight, r.ReceivedDate, now)
	}

	if batch.Len() == 0 {
		return nil
	}

	br := s.q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to write purchase order children: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	s.logger.DebugContext(ctx, "purchase order saved",
		slog.String("header_id", h.ID.String()),
		slog.Int64("version", h.Version),
		slog.Int("items", len(po.Items)),
		slog.Int("receipts", len(po.Receipts)))
	return nil
}

// LineItemHeader returns the header owning a line item
func (s *orderStore) LineItemHeader(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	var headerID uuid.UUID
	err := s.q.QueryRow(ctx, `SELECT header_id FROM po_line_items WHERE id = $1`, itemID).Scan(&headerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.NotFound("line item", itemID)
		}
		return uuid.Nil, fmt.Errorf("failed to find line item: %w", err)
	}
	return headerID, nil
}

// UnknownSKUs returns the subset of skus with no product record
func (s *orderStore) UnknownSKUs(ctx context.Context, skus []string) ([]string, error) {
	if len(skus) == 0 {
		return nil, nil
	}
	rows, err := s.q.Query(ctx, `
		SELECT DISTINCT s FROM unnest($1::text[]) AS s
		WHERE NOT EXISTS (SELECT 1 FROM products p WHERE p.sku = s)
		ORDER BY s`, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to check skus: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Load reads a purchase order aggregate without locking
func (r *PurchaseOrderRepository) Load(ctx context.Context, headerID uuid.UUID) (*domain.PurchaseOrder, error) {
	return loadOrder(ctx, r.db.Pool(), headerID, false)
}

// FindIDByNumber resolves a PO number to its header id
func (r *PurchaseOrderRepository) FindIDByNumber(ctx context.Context, poNumber string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM purchase_orders WHERE po_number = $1`, strings.TrimSpace(poNumber)).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.NotFound("purchase order", poNumber)
		}
		return uuid.Nil, fmt.Errorf("failed to find purchase order: %w", err)
	}
	return id, nil
}

// FindReceiptHeader returns the header owning a receipt
func (r *PurchaseOrderRepository) FindReceiptHeader(ctx context.Context, receiptID uuid.UUID) (uuid.UUID, error) {
	var headerID uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT header_id FROM po_receipts WHERE id = $1`, receiptID).Scan(&headerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.NotFound("receipt", receiptID)
		}
		return uuid.Nil, fmt.Errorf("failed to find receipt: %w", err)
	}
	return headerID, nil
}

// List returns a filtered, sorted page of header summaries
func (r *PurchaseOrderRepository) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	countSQL, countArgs, err := applyListFilters(
		squirrel.Select("COUNT(*)").From("purchase_orders h").PlaceholderFormat(squirrel.Dollar),
		params,
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	sortCol, ok := sortColumns[params.SortBy]
	if !ok {
		sortCol = "h.order_date"
	}
	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	qb := applyListFilters(
		squirrel.Select(
			"h.id", "h.po_number", "h.supplier_name", "h.order_date", "h.estimated_date", "h.status",
			"COALESCE(SUM(i.qty_ordered), 0)", "COALESCE(SUM(i.received_qty), 0)",
		).
			From("purchase_orders h").
			LeftJoin("po_line_items i ON i.header_id = h.id").
			PlaceholderFormat(squirrel.Dollar),
		params,
	).
		GroupBy("h.id").
		OrderBy(sortCol+" "+sortOrder, "h.po_number ASC").
		Limit(uint64(params.PageSize)).
		Offset(uint64((params.Page - 1) * params.PageSize))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	defer rows.Close()

	items := make([]domain.HeaderSummary, 0, params.PageSize)
	for rows.Next() {
		var s domain.HeaderSummary
		if err := rows.Scan(&s.ID, &s.PONumber, &s.SupplierName, &s.OrderDate, &s.EstimatedDate,
			&s.Status, &s.TotalOrdered, &s.TotalReceived); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order summary: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase orders: %w", err)
	}

	return &ports.ListResult{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
	}, nil
}

func applyListFilters(qb squirrel.SelectBuilder, params ports.ListParams) squirrel.SelectBuilder {
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"h.po_number": pattern},
			squirrel.ILike{"h.supplier_name": pattern},
		})
	}
	if params.Status != "" {
		qb = qb.Where(squirrel.Eq{"h.status": params.Status})
	}
	if params.OrderedFrom != nil {
		qb = qb.Where(squirrel.GtOrEq{"h.order_date": *params.OrderedFrom})
	}
	if params.OrderedTo != nil {
		qb = qb.Where(squirrel.LtOrEq{"h.order_date": *params.OrderedTo})
	}
	return qb
}

// ListOpenHeaderIDs returns orders whose status still depends on the calendar
func (r *PurchaseOrderRepository) ListOpenHeaderIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM purchase_orders
		WHERE status IN ($1, $2, $3)
		ORDER BY order_date, id`,
		domain.StatusPending, domain.StatusArrivingSoon, domain.StatusOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to list open purchase orders: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

// CountByStatus returns the number of orders per cached status
func (r *PurchaseOrderRepository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM purchase_orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count purchase orders: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int64)
	for rows.Next() {
		var status domain.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func loadOrder(ctx context.Context, q querier, headerID uuid.UUID, lock bool) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + headerColumns + ` FROM purchase_orders WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	var h domain.PurchaseOrderHeader
	err := q.QueryRow(ctx, query, headerID).Scan(
		&h.ID, &h.PONumber, &h.SupplierName, &h.OrderType, &h.ShippingType, &h.OrderDate,
		&h.EstimatedDate, &h.BillDate, &h.ExchangeRate, &h.TotalCostForeign, &h.ShippingRatePerVolume,
		&h.TransportationCost, &h.Note, &h.Status, &h.Version, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("purchase order", headerID)
		}
		return nil, fmt.Errorf("failed to load purchase order header: %w", err)
	}
	po := domain.NewPurchaseOrder(h)

	rows, err := q.Query(ctx, `SELECT `+itemColumns+` FROM po_line_items WHERE header_id = $1 ORDER BY position, id`, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}
	po.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.LineItem, error) {
		var i domain.LineItem
		err := row.Scan(&i.ID, &i.HeaderID, &i.SKU, &i.QtyOrdered, &i.CostForeign, &i.CostLocal,
			&i.ReceivedQty, &i.ReceivedVolume, &i.ReceivedWeight, &i.Position, &i.CreatedAt, &i.UpdatedAt)
		return &i, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan line items: %w", err)
	}

	rows, err = q.Query(ctx, `SELECT `+batchColumns+` FROM po_receipt_batches WHERE header_id = $1 ORDER BY batch_no`, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt batches: %w", err)
	}
	po.Batches, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.ReceiptBatch, error) {
		var b domain.ReceiptBatch
		err := row.Scan(&b.ID, &b.HeaderID, &b.BatchNo, &b.BillDate, &b.ReceivedDate,
			&b.TotalVolume, &b.TotalWeight, &b.CreatedAt, &b.UpdatedAt)
		return &b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipt batches: %w", err)
	}

	rows, err = q.Query(ctx, `SELECT `+receiptColumns+` FROM po_receipts WHERE header_id = $1 ORDER BY received_date, created_at, id`, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}
	po.Receipts, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Receipt, error) {
		var rc domain.Receipt
		err := row.Scan(&rc.ID, &rc.HeaderID, &rc.LineItemID, &rc.BatchID, &rc.ReceivedQty,
			&rc.Volume, &rc.Weight, &rc.ReceivedDate, &rc.CreatedAt, &rc.UpdatedAt)
		return &rc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipts: %w", err)
	}

	return po, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
