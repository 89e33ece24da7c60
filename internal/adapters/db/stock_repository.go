// internal/adapters/db/stock_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// StockRepository implements ports.StockRepository on PostgreSQL
type StockRepository struct {
	db     *Database
	logger *slog.Logger
}

// Statically assert that *StockRepository implements the StockRepository interface.
var _ ports.StockRepository = (*StockRepository)(nil)

// NewStockRepository creates a new stock repository
func NewStockRepository(db *Database, logger *slog.Logger) *StockRepository {
	return &StockRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "stock")),
	}
}

var figureColumns = []string{
	"x.sku", "x.name", "x.base_quantity", "x.min_limit", "x.created_at", "x.updated_at",
	"x.snapshot_date", "x.snapshot_qty", "x.ingested_at", "x.received_qty", "x.sold_qty",
}

// figuresQuery selects every product with its snapshot for asOf and the sums
// of all its receipts and sales, plus the resolved quantity and stock status,
// from the alias x. asOf only picks the snapshot; receipts and sales are
// summed without a date bound.
func figuresQuery(asOf time.Time, columns ...string) squirrel.SelectBuilder {
	asOf = domain.DateOf(asOf)

	figures := squirrel.Select(
		"p.sku", "p.name", "p.base_quantity", "p.min_limit", "p.created_at", "p.updated_at",
		"s.snapshot_date", "s.quantity AS snapshot_qty", "s.ingested_at",
		"COALESCE(rc.qty, 0) AS received_qty", "COALESCE(sl.qty, 0) AS sold_qty",
	).
		From("products p").
		LeftJoin("stock_snapshots s ON s.sku = p.sku AND s.snapshot_date = ?", asOf).
		LeftJoin(`(SELECT i.sku, SUM(r.received_qty) AS qty
			FROM po_receipts r JOIN po_line_items i ON i.id = r.line_item_id
			GROUP BY i.sku) rc ON rc.sku = p.sku`).
		LeftJoin(`(SELECT sku, SUM(qty) AS qty FROM sales
			GROUP BY sku) sl ON sl.sku = p.sku`)

	resolved := squirrel.Select(
		"f.*",
		"COALESCE(f.snapshot_qty, f.base_quantity + f.received_qty - f.sold_qty) AS quantity",
	).FromSelect(figures, "f")

	classified := squirrel.Select(
		"c.*",
		fmt.Sprintf("CASE WHEN c.quantity <= 0 THEN '%s' WHEN c.quantity <= c.min_limit THEN '%s' ELSE '%s' END AS stock_status",
			domain.StockDepleted, domain.StockLow, domain.StockOK),
	).FromSelect(resolved, "c")

	return squirrel.Select(columns...).
		FromSelect(classified, "x").
		PlaceholderFormat(squirrel.Dollar)
}

func scanFigures(row pgx.Row) (domain.StockFigures, error) {
	var (
		f          domain.StockFigures
		snapDate   *time.Time
		snapQty    *int64
		ingestedAt *time.Time
	)
	err := row.Scan(
		&f.Product.SKU, &f.Product.Name, &f.Product.BaseQuantity, &f.Product.MinLimit,
		&f.Product.CreatedAt, &f.Product.UpdatedAt,
		&snapDate, &snapQty, &ingestedAt,
		&f.ReceivedQty, &f.SoldQty,
	)
	if err != nil {
		return f, err
	}
	if snapDate != nil && snapQty != nil {
		f.Snapshot = &domain.StockSnapshot{
			SKU:          f.Product.SKU,
			SnapshotDate: *snapDate,
			Quantity:     *snapQty,
		}
		if ingestedAt != nil {
			f.Snapshot.IngestedAt = *ingestedAt
		}
	}
	return f, nil
}

// GetFigures returns the stock figures of one sku as of a date
func (r *StockRepository) GetFigures(ctx context.Context, sku string, asOf time.Time) (*domain.StockFigures, error) {
	query, args, err := figuresQuery(asOf, figureColumns...).
		Where(squirrel.Eq{"x.sku": sku}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build figures query: %w", err)
	}

	f, err := scanFigures(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("product", sku)
		}
		return nil, fmt.Errorf("failed to get stock figures: %w", err)
	}
	return &f, nil
}

func applyStockFilters(qb squirrel.SelectBuilder, params ports.StockReportParams) squirrel.SelectBuilder {
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"x.sku": pattern},
			squirrel.ILike{"x.name": pattern},
		})
	}
	if params.Status != "" {
		qb = qb.Where(squirrel.Eq{"x.stock_status": params.Status})
	}
	return qb
}

// ListFigures returns a page of figures filtered by derived stock status
func (r *StockRepository) ListFigures(ctx context.Context, params ports.StockReportParams) ([]domain.StockFigures, int64, error) {
	countSQL, countArgs, err := applyStockFilters(figuresQuery(params.AsOf, "COUNT(*)"), params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stock: %w", err)
	}

	query, args, err := applyStockFilters(figuresQuery(params.AsOf, figureColumns...), params).
		OrderBy("x.sku ASC").
		Limit(uint64(params.PageSize)).
		Offset(uint64((params.Page - 1) * params.PageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build stock query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stock: %w", err)
	}
	defer rows.Close()

	figures := make([]domain.StockFigures, 0, params.PageSize)
	for rows.Next() {
		f, err := scanFigures(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan stock figures: %w", err)
		}
		figures = append(figures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate stock: %w", err)
	}
	return figures, total, nil
}

// CountByStatus returns how many products fall into each stock status
func (r *StockRepository) CountByStatus(ctx context.Context, asOf time.Time) (map[domain.StockStatus]int64, error) {
	query, args, err := figuresQuery(asOf, "x.stock_status", "COUNT(*)").
		GroupBy("x.stock_status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count stock by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.StockStatus]int64)
	for rows.Next() {
		var status domain.StockStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan stock count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// FindProduct returns the product master record for sku
func (r *StockRepository) FindProduct(ctx context.Context, sku string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRow(ctx, `
		SELECT sku, name, base_quantity, min_limit, created_at, updated_at
		FROM products WHERE sku = $1`, sku).
		Scan(&p.SKU, &p.Name, &p.BaseQuantity, &p.MinLimit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("product", sku)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &p, nil
}

// UpsertProduct creates or updates a product
func (r *StockRepository) UpsertProduct(ctx context.Context, p *domain.Product) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (sku, name, base_quantity, min_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			base_quantity = EXCLUDED.base_quantity,
			min_limit = EXCLUDED.min_limit,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		p.SKU, p.Name, p.BaseQuantity, p.MinLimit,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// SetMinLimit changes the low-stock threshold of a product
func (r *StockRepository) SetMinLimit(ctx context.Context, sku string, minLimit int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET min_limit = $2, updated_at = NOW() WHERE sku = $1`, sku, minLimit)
	if err != nil {
		return fmt.Errorf("failed to update min limit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("product", sku)
	}
	return nil
}

// ExistingSKUs reports which of skus have a product record
func (r *StockRepository) ExistingSKUs(ctx context.Context, skus []string) (map[string]bool, error) {
	known := make(map[string]bool, len(skus))
	if len(skus) == 0 {
		return known, nil
	}

	rows, err := r.db.Query(ctx, `SELECT sku FROM products WHERE sku = ANY($1::text[])`, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to check skus: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan skus: %w", err)
	}
	for _, sku := range found {
		known[sku] = true
	}
	return known, nil
}

// UpsertSnapshot stores the quantity of a sku for a date, replacing any earlier value
func (r *StockRepository) UpsertSnapshot(ctx context.Context, s *domain.StockSnapshot) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO stock_snapshots (sku, snapshot_date, quantity, ingested_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (sku, snapshot_date) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			ingested_at = NOW()
		RETURNING ingested_at`,
		s.SKU, domain.DateOf(s.SnapshotDate), s.Quantity,
	).Scan(&s.IngestedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// PruneSnapshots deletes snapshots dated before the cutoff
func (r *StockRepository) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM stock_snapshots WHERE snapshot_date < $1`, domain.DateOf(before))
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpsertSale stores a sale line keyed by (order_id, sku)
func (r *StockRepository) UpsertSale(ctx context.Context, s *domain.Sale) error {
	soldAt := s.SoldAt
	if soldAt.IsZero() {
		soldAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO sales (order_id, sku, qty, platform, sold_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id, sku) DO UPDATE SET
			qty = EXCLUDED.qty,
			platform = EXCLUDED.platform,
			sold_at = EXCLUDED.sold_at`,
		s.OrderID, s.SKU, s.Qty, s.Platform, soldAt)
	if err != nil {
		return fmt.Errorf("failed to upsert sale: %w", err)
	}
	return nil
}

// DeleteSale removes a sale line. Deleting an absent sale is not an error.
func (r *StockRepository) DeleteSale(ctx context.Context, orderID, sku string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sales WHERE order_id = $1 AND sku = $2`, orderID, sku); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}
