// internal/core/services/stock.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// StockService resolves stock levels and applies the snapshot and sales feeds
type StockService struct {
	repo     ports.StockRepository
	cache    ports.CacheRepository
	cacheTTL time.Duration
	clock    Clock
	logger   *slog.Logger
}

// Statically assert that *StockService implements the StockService interface.
var _ ports.StockService = (*StockService)(nil)

// NewStockService creates a new stock service. cache may be nil, in which case
// every Resolve hits the database.
func NewStockService(repo ports.StockRepository, cache ports.CacheRepository, cacheTTL time.Duration, clock Clock, logger *slog.Logger) *StockService {
	if clock == nil {
		clock = SystemClock
	}
	return &StockService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		clock:    clock,
		logger:   logger.With(slog.String("service", "stock")),
	}
}

// Resolve returns the stock level of sku on asOf (today when zero)
func (s *StockService) Resolve(ctx context.Context, sku string, asOf time.Time) (*domain.StockLevel, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.Invalid("sku", "sku is required")
	}
	if asOf.IsZero() {
		asOf = s.clock()
	}
	asOf = domain.DateOf(asOf)

	fetch := func() (interface{}, error) {
		figures, err := s.repo.GetFigures(ctx, sku, asOf)
		if err != nil {
			return nil, err
		}
		level := domain.ResolveStock(*figures, asOf)
		return &level, nil
	}

	direct := func() (*domain.StockLevel, error) {
		v, err := fetch()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stock: %w", err)
		}
		return v.(*domain.StockLevel), nil
	}

	if s.cache == nil || s.cacheTTL <= 0 {
		return direct()
	}

	// The generation is read before the source so a write committed after
	// this point always moves readers to a fresh key.
	generation, err := s.cache.Generation(ctx, stockGenerationKey(sku))
	if err != nil {
		s.logger.WarnContext(ctx, "stock cache unavailable, reading source",
			slog.String("sku", sku),
			slog.String("error", err.Error()))
		return direct()
	}

	var level domain.StockLevel
	if err := s.cache.GetOrSet(ctx, stockKey(sku, generation, asOf), &level, fetch, s.cacheTTL); err != nil {
		return nil, fmt.Errorf("failed to resolve stock: %w", err)
	}
	return &level, nil
}

// Report returns a page of resolved stock levels filtered by status
func (s *StockService) Report(ctx context.Context, params ports.StockReportParams) (*ports.StockReport, error) {
	if params.Status != "" && !params.Status.IsValid() {
		return nil, domain.Invalid("status", "unknown stock status %q", params.Status)
	}
	if params.AsOf.IsZero() {
		params.AsOf = s.clock()
	}
	params.AsOf = domain.DateOf(params.AsOf)
	params.Page, params.PageSize = normalizePage(params.Page, params.PageSize)

	figures, total, err := s.repo.ListFigures(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}

	report := &ports.StockReport{
		Items:      make([]domain.StockLevel, 0, len(figures)),
		AsOf:       params.AsOf,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: totalPages(total, params.PageSize),
	}
	for _, f := range figures {
		report.Items = append(report.Items, domain.ResolveStock(f, params.AsOf))
	}
	return report, nil
}

// UpsertProduct creates or updates a product master record
func (s *StockService) UpsertProduct(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpsertProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	s.logger.InfoContext(ctx, "product saved", slog.String("sku", product.SKU))
	s.invalidate(ctx, product.SKU)
	return nil
}

// SetMinLimit changes the low-stock threshold of a product
func (s *StockService) SetMinLimit(ctx context.Context, sku string, minLimit int64) error {
	if minLimit < 0 {
		return domain.Invalid("min_limit", "min_limit cannot be negative")
	}
	if err := s.repo.SetMinLimit(ctx, sku, minLimit); err != nil {
		return fmt.Errorf("failed to set min limit: %w", err)
	}
	s.logger.InfoContext(ctx, "min limit updated",
		slog.String("sku", sku),
		slog.Int64("min_limit", minLimit))
	s.invalidate(ctx, sku)
	return nil
}

// IngestSnapshots upserts one snapshot per (sku, date). Invalid rows and rows
// for unknown SKUs are counted as failures and skipped.
func (s *StockService) IngestSnapshots(ctx context.Context, rows []domain.StockSnapshot) (*ports.IngestResult, error) {
	result := &ports.IngestResult{Total: len(rows)}

	known, err := s.repo.ExistingSKUs(ctx, snapshotSKUs(rows))
	if err != nil {
		return nil, fmt.Errorf("failed to check skus: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		if err := row.Validate(); err != nil {
			recordFailure(result, i, err)
			continue
		}
		if !known[row.SKU] {
			recordFailure(result, i, domain.NewValidationError("sku", fmt.Errorf("%w: %s", domain.ErrUnknownSKU, row.SKU)))
			continue
		}
		if err := s.repo.UpsertSnapshot(ctx, row); err != nil {
			return result, fmt.Errorf("failed to save snapshot for %s: %w", row.SKU, err)
		}
		result.Succeeded++
		s.invalidate(ctx, row.SKU)
	}

	s.logger.InfoContext(ctx, "stock snapshots ingested",
		slog.Int("total", result.Total),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))
	return result, nil
}

// UpsertSales applies typed sale rows keyed by (order_id, sku). Cancelled rows
// delete the sale.
func (s *StockService) UpsertSales(ctx context.Context, rows []domain.Sale) (*ports.IngestResult, error) {
	result := &ports.IngestResult{Total: len(rows)}

	skus := make([]string, 0, len(rows))
	for _, r := range rows {
		skus = append(skus, strings.TrimSpace(r.SKU))
	}
	known, err := s.repo.ExistingSKUs(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to check skus: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		if err := row.Validate(); err != nil {
			recordFailure(result, i, err)
			continue
		}

		if row.Cancelled {
			if err := s.repo.DeleteSale(ctx, row.OrderID, row.SKU); err != nil {
				return result, fmt.Errorf("failed to delete sale %s/%s: %w", row.OrderID, row.SKU, err)
			}
			result.Succeeded++
			s.invalidate(ctx, row.SKU)
			continue
		}

		if !known[row.SKU] {
			recordFailure(result, i, domain.NewValidationError("sku", fmt.Errorf("%w: %s", domain.ErrUnknownSKU, row.SKU)))
			continue
		}
		if err := s.repo.UpsertSale(ctx, row); err != nil {
			return result, fmt.Errorf("failed to save sale %s/%s: %w", row.OrderID, row.SKU, err)
		}
		result.Succeeded++
		s.invalidate(ctx, row.SKU)
	}

	s.logger.InfoContext(ctx, "sales ingested",
		slog.Int("total", result.Total),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))
	return result, nil
}

// PruneSnapshots removes snapshots dated before the cutoff
func (s *StockService) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.repo.PruneSnapshots(ctx, domain.DateOf(before))
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return n, nil
}

func (s *StockService) invalidate(ctx context.Context, sku string) {
	invalidateStock(ctx, s.cache, s.logger, sku)
}

func snapshotSKUs(rows []domain.StockSnapshot) []string {
	skus := make([]string, 0, len(rows))
	for _, r := range rows {
		skus = append(skus, strings.TrimSpace(r.SKU))
	}
	return skus
}

func recordFailure(result *ports.IngestResult, row int, err error) {
	result.Failed++
	result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row+1, err))
}
