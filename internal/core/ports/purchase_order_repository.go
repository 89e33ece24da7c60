// internal/core/ports/purchase_order_repository.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/google/uuid"
)

// OrderStore is the transaction-scoped persistence port for purchase order
// aggregates. Every method runs inside the transaction that UnitOfWork opened.
type OrderStore interface {
	// LoadForUpdate reads the whole aggregate and locks the header row
	LoadForUpdate(ctx context.Context, headerID uuid.UUID) (*domain.PurchaseOrder, error)
	// InsertHeader creates a header row at version 0
	InsertHeader(ctx context.Context, header *domain.PurchaseOrderHeader) error
	// Save writes the aggregate, bumping the header version. It fails with a
	// ConcurrentModificationError when the stored version moved.
	Save(ctx context.Context, po *domain.PurchaseOrder, now time.Time) error
	// LineItemHeader returns the header owning a line item
	LineItemHeader(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error)
	// UnknownSKUs returns the subset of skus with no product record
	UnknownSKUs(ctx context.Context, skus []string) ([]string, error)
}

// UnitOfWork runs fn inside a single database transaction, committing only
// when fn returns nil.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store OrderStore) error) error
}

// PurchaseOrderRepository is the read side of purchase order persistence.
type PurchaseOrderRepository interface {
	Load(ctx context.Context, headerID uuid.UUID) (*domain.PurchaseOrder, error)
	FindIDByNumber(ctx context.Context, poNumber string) (uuid.UUID, error)
	FindReceiptHeader(ctx context.Context, receiptID uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	ListOpenHeaderIDs(ctx context.Context) ([]uuid.UUID, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
}

// ListParams holds parameters for listing purchase orders
type ListParams struct {
	Search      string
	Status      domain.Status
	OrderedFrom *time.Time
	OrderedTo   *time.Time
	SortBy      string
	SortOrder   string
	Page        int
	PageSize    int
}

// ListResult holds one page of purchase order summaries
type ListResult struct {
	Items      []domain.HeaderSummary `json:"items"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalCount int64                  `json:"total_count"`
	TotalPages int                    `json:"total_pages"`
}
