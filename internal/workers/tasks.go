// internal/workers/tasks.go
package workers

import (
	"github.com/google/uuid"

	"github.com/ammerola/procure-be/internal/core/domain"
)

const (
	TypeImportSnapshots = "import:snapshots"
	TypeImportSales     = "import:sales"
	TypeRefreshStatuses = "orders:refresh_statuses"
	TypeCleanup         = "cleanup:retention"
)

// Queue names, matching the ASYNQ_QUEUES priorities
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// SnapshotImportPayload carries the typed rows of a snapshot import
type SnapshotImportPayload struct {
	ImportID uuid.UUID              `json:"import_id"`
	Rows     []domain.StockSnapshot `json:"rows"`
}

// SalesImportPayload carries the typed rows of a sales import
type SalesImportPayload struct {
	ImportID uuid.UUID     `json:"import_id"`
	Rows     []domain.Sale `json:"rows"`
}
