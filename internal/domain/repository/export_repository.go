package repository

import (
	"context"

	"github.com/contasclaras/api/internal/domain/entity"
)

// ExportRepository tracks PDF export jobs.
type ExportRepository interface {
	Create(ctx context.Context, e *entity.Export) error
	GetByID(ctx context.Context, userID, id string) (*entity.Export, error)
	// Get loads an export regardless of owner; the worker uses it.
	Get(ctx context.Context, id string) (*entity.Export, error)
	SetStatus(ctx context.Context, id string, status entity.ExportStatus) error
	MarkDone(ctx context.Context, id, objectURL string) error
	MarkFailed(ctx context.Context, id, reason string) error
}
