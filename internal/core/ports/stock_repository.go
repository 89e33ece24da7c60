// internal/core/ports/stock_repository.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/google/uuid"
)

// StockRepository persists products and the two stock sources, and computes
// the aggregate figures stock resolution needs.
type StockRepository interface {
	// GetFigures returns the product, its snapshot for asOf if any, and the
	// summed receipts and sales, using aggregate queries.
	GetFigures(ctx context.Context, sku string, asOf time.Time) (*domain.StockFigures, error)
	// ListFigures returns one page of figures filtered by the derived stock status
	ListFigures(ctx context.Context, params StockReportParams) ([]domain.StockFigures, int64, error)
	CountByStatus(ctx context.Context, asOf time.Time) (map[domain.StockStatus]int64, error)

	FindProduct(ctx context.Context, sku string) (*domain.Product, error)
	UpsertProduct(ctx context.Context, product *domain.Product) error
	SetMinLimit(ctx context.Context, sku string, minLimit int64) error
	ExistingSKUs(ctx context.Context, skus []string) (map[string]bool, error)

	UpsertSnapshot(ctx context.Context, snapshot *domain.StockSnapshot) error
	PruneSnapshots(ctx context.Context, before time.Time) (int64, error)

	UpsertSale(ctx context.Context, sale *domain.Sale) error
	DeleteSale(ctx context.Context, orderID, sku string) error
}

// StockReportParams holds parameters for the stock report
type StockReportParams struct {
	Search   string
	Status   domain.StockStatus
	AsOf     time.Time
	Page     int
	PageSize int
}

// StockReport is one page of resolved stock levels
type StockReport struct {
	Items      []domain.StockLevel `json:"items"`
	AsOf       time.Time           `json:"as_of"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalCount int64               `json:"total_count"`
	TotalPages int                 `json:"total_pages"`
}

// ImportLogRepository persists import job logs
type ImportLogRepository interface {
	Create(ctx context.Context, log *domain.ImportLog) error
	Update(ctx context.Context, log *domain.ImportLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ImportLog, error)
	PruneBefore(ctx context.Context, before time.Time) (int64, error)
}
