// internal/core/services/dashboard.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

var (
	allStatuses      = []domain.Status{domain.StatusPending, domain.StatusArrivingSoon, domain.StatusOverdue, domain.StatusIncomplete, domain.StatusComplete}
	allStockStatuses = []domain.StockStatus{domain.StockOK, domain.StockLow, domain.StockDepleted}
)

// DashboardService summarizes order and stock status counts
type DashboardService struct {
	orders ports.PurchaseOrderRepository
	stock  ports.StockRepository
	cache  ports.CacheRepository
	ttl    time.Duration
	clock  Clock
	logger *slog.Logger
}

// Statically assert that *DashboardService implements the DashboardService interface.
var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service. cache may be nil.
func NewDashboardService(
	orders ports.PurchaseOrderRepository,
	stock ports.StockRepository,
	cache ports.CacheRepository,
	ttl time.Duration,
	clock Clock,
	logger *slog.Logger,
) *DashboardService {
	if clock == nil {
		clock = SystemClock
	}
	return &DashboardService{
		orders: orders,
		stock:  stock,
		cache:  cache,
		ttl:    ttl,
		clock:  clock,
		logger: logger.With(slog.String("service", "dashboard")),
	}
}

// Summary returns the status counts, served from cache when fresh
func (s *DashboardService) Summary(ctx context.Context) (*ports.DashboardSummary, error) {
	if s.cache == nil || s.ttl <= 0 {
		return s.build(ctx)
	}

	var summary ports.DashboardSummary
	err := s.cache.GetOrSet(ctx, dashboardKey, &summary, func() (interface{}, error) {
		return s.build(ctx)
	}, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard summary: %w", err)
	}
	return &summary, nil
}

func (s *DashboardService) build(ctx context.Context) (*ports.DashboardSummary, error) {
	now := s.clock()

	orders, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count purchase orders: %w", err)
	}
	stock, err := s.stock.CountByStatus(ctx, domain.DateOf(now))
	if err != nil {
		return nil, fmt.Errorf("failed to count stock: %w", err)
	}

	summary := &ports.DashboardSummary{
		Orders:      make(map[domain.Status]int64, len(allStatuses)),
		Stock:       make(map[domain.StockStatus]int64, len(allStockStatuses)),
		GeneratedAt: now,
	}
	for _, st := range allStatuses {
		summary.Orders[st] = orders[st]
	}
	for _, st := range allStockStatuses {
		summary.Stock[st] = stock[st]
	}

	s.logger.DebugContext(ctx, "dashboard summary built")
	return summary, nil
}
