// internal/core/ports/services.go
package ports

import (
	"context"
	"io"
	"time"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderService is the application port for purchase orders. Every
// write funnels through the mutation orchestrator.
type PurchaseOrderService interface {
	UpsertHeader(ctx context.Context, in HeaderInput) (*domain.PurchaseOrderView, error)
	UpsertItem(ctx context.Context, in ItemInput) (*domain.PurchaseOrderView, error)
	RemoveItem(ctx context.Context, headerID, itemID uuid.UUID) (*domain.PurchaseOrderView, error)
	SubmitBatchReceipt(ctx context.Context, in BatchReceiptInput) (*domain.PurchaseOrderView, error)
	RecordReceipt(ctx context.Context, in AdhocReceiptInput) (*domain.PurchaseOrderView, error)
	DeleteReceipt(ctx context.Context, receiptID uuid.UUID) (*domain.PurchaseOrderView, error)
	GetView(ctx context.Context, headerID uuid.UUID) (*domain.PurchaseOrderView, error)
	GetViewByNumber(ctx context.Context, poNumber string) (*domain.PurchaseOrderView, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	RefreshStatuses(ctx context.Context) (int, error)
}

// StockService is the application port for stock resolution and the feeds behind it
type StockService interface {
	Resolve(ctx context.Context, sku string, asOf time.Time) (*domain.StockLevel, error)
	Report(ctx context.Context, params StockReportParams) (*StockReport, error)
	UpsertProduct(ctx context.Context, product *domain.Product) error
	SetMinLimit(ctx context.Context, sku string, minLimit int64) error
	IngestSnapshots(ctx context.Context, rows []domain.StockSnapshot) (*IngestResult, error)
	UpsertSales(ctx context.Context, rows []domain.Sale) (*IngestResult, error)
	PruneSnapshots(ctx context.Context, before time.Time) (int64, error)
}

// ImportQueue hands typed import rows to the background workers
type ImportQueue interface {
	EnqueueSnapshots(ctx context.Context, logID uuid.UUID, rows []domain.StockSnapshot) error
	EnqueueSales(ctx context.Context, logID uuid.UUID, rows []domain.Sale) error
}

// ImportService tracks asynchronous imports
type ImportService interface {
	SubmitSnapshots(ctx context.Context, source string, rows []domain.StockSnapshot) (*domain.ImportLog, error)
	SubmitSales(ctx context.Context, source string, rows []domain.Sale) (*domain.ImportLog, error)
	ProcessSnapshots(ctx context.Context, logID uuid.UUID, rows []domain.StockSnapshot) error
	ProcessSales(ctx context.Context, logID uuid.UUID, rows []domain.Sale) error
	Status(ctx context.Context, logID uuid.UUID) (*domain.ImportLog, error)
	PruneLogs(ctx context.Context, before time.Time) (int64, error)
}

// AttachmentService stores documents against purchase orders
type AttachmentService interface {
	Upload(ctx context.Context, headerID uuid.UUID, fileName, contentType string, size int64, data io.Reader) (*domain.Attachment, error)
	List(ctx context.Context, headerID uuid.UUID) ([]domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DashboardService summarizes purchase order and stock status counts
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

// HeaderInput is the typed header upsert, keyed by PONumber
type HeaderInput struct {
	PONumber              string              `json:"po_number"`
	SupplierName          string              `json:"supplier_name"`
	OrderType             domain.OrderType    `json:"order_type"`
	ShippingType          domain.ShippingType `json:"shipping_type"`
	OrderDate             time.Time           `json:"order_date"`
	EstimatedDate         *time.Time          `json:"estimated_date"`
	BillDate              *time.Time          `json:"bill_date"`
	ExchangeRate          decimal.Decimal     `json:"exchange_rate"`
	TotalCostForeign      decimal.Decimal     `json:"total_cost_foreign"`
	ShippingRatePerVolume decimal.Decimal     `json:"shipping_rate_per_volume"`
	TransportationCost    decimal.Decimal     `json:"transportation_cost"`
	Note                  string              `json:"note"`
}

// ItemInput is the typed line item upsert
type ItemInput struct {
	HeaderID   uuid.UUID
	ItemID     *uuid.UUID
	SKU        string
	QtyOrdered int64
}

// BatchReceiptInput is the typed batch receiving submission
type BatchReceiptInput struct {
	HeaderID         uuid.UUID
	BatchNo          int
	BillDate         *time.Time
	ReceivedDate     time.Time
	BatchTotalVolume *decimal.Decimal
	BatchTotalWeight *decimal.Decimal
	Items            []domain.ItemQuantity
}

// AdhocReceiptInput is a single-item receipt without a batch
type AdhocReceiptInput struct {
	HeaderID     uuid.UUID
	ItemID       uuid.UUID
	Qty          int64
	Volume       decimal.Decimal
	Weight       decimal.Decimal
	ReceivedDate time.Time
}

// IngestResult counts the rows applied by a feed
type IngestResult struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// DashboardSummary holds status counts for orders and stock
type DashboardSummary struct {
	Orders      map[domain.Status]int64      `json:"orders"`
	Stock       map[domain.StockStatus]int64 `json:"stock"`
	GeneratedAt time.Time                    `json:"generated_at"`
}
