package entity

import "time"

// ExportStatus tracks an export job through the queue.
type ExportStatus string

const (
	ExportPending    ExportStatus = "pending"
	ExportProcessing ExportStatus = "processing"
	ExportDone       ExportStatus = "done"
	ExportFailed     ExportStatus = "failed"
)

// Export is a requested PDF export of a filtered bill view. The filter is
// stored as a JSON snapshot so the worker reproduces exactly what the user
// saw when requesting it.
type Export struct {
	ID         string
	UserID     string
	FilterJSON []byte
	Status     ExportStatus
	ObjectURL  string
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
