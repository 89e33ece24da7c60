// internal/core/domain/import_log.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportKind names the feed an import job carries
type ImportKind string

const (
	ImportKindSnapshots ImportKind = "SNAPSHOTS"
	ImportKindSales     ImportKind = "SALES"
)

// ImportStatus tracks an import job through the worker
type ImportStatus string

const (
	ImportPending    ImportStatus = "PENDING"
	ImportProcessing ImportStatus = "PROCESSING"
	ImportSuccess    ImportStatus = "SUCCESS"
	ImportFailed     ImportStatus = "FAILED"
)

// maxImportErrors caps how many row errors an import log keeps
const maxImportErrors = 100

// ImportLog records the outcome of one asynchronous import
type ImportLog struct {
	ID           uuid.UUID    `json:"id"`
	Kind         ImportKind   `json:"kind"`
	Source       string       `json:"source,omitempty"`
	Status       ImportStatus `json:"status"`
	TotalRows    int          `json:"total_rows"`
	SuccessCount int          `json:"success_count"`
	FailedCount  int          `json:"failed_count"`
	Errors       []string     `json:"errors,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	StartedAt    *time.Time   `json:"started_at,omitempty"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
}

// RecordFailure counts a failed row and keeps its message
func (l *ImportLog) RecordFailure(msg string) {
	l.FailedCount++
	if len(l.Errors) < maxImportErrors {
		l.Errors = append(l.Errors, msg)
	}
}

// Finish settles the final status from the row counts
func (l *ImportLog) Finish(at time.Time) {
	l.FinishedAt = &at
	if l.SuccessCount == 0 && l.FailedCount > 0 {
		l.Status = ImportFailed
		return
	}
	l.Status = ImportSuccess
}
