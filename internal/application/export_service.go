package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/domain/billing"
	"github.com/contasclaras/api/internal/domain/entity"
	repo "github.com/contasclaras/api/internal/domain/repository"
	"github.com/contasclaras/api/pkg/helpers"
)

var (
	ErrExportNotFound    = errors.New("export not found")
	ErrExportUnavailable = errors.New("export queue unavailable")
)

// ExportJob is the JSON payload put on the RabbitMQ export queue. The
// worker loads everything else from the export row.
type ExportJob struct {
	ExportID string `json:"export_id"`
}

// ExportFilter is the serialized filter snapshot stored on the export row.
type ExportFilter struct {
	Status    string `json:"status,omitempty"`
	Category  string `json:"category,omitempty"`
	Search    string `json:"search,omitempty"`
	Direction string `json:"direction,omitempty"`
	PaidFrom  string `json:"paid_from,omitempty"` // 2006-01-02
	PaidTo    string `json:"paid_to,omitempty"`
}

// ExportService records export requests and hands them to the worker via
// RabbitMQ. The request row is written first so a lost message leaves an
// inspectable pending row rather than a silent failure.
type ExportService struct {
	Repo   repo.ExportRepository
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewExportService(exportRepo repo.ExportRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *ExportService {
	return &ExportService{Repo: exportRepo, Pub: pub, Logger: logger}
}

// Request creates a pending export for the given filter and enqueues it.
func (s *ExportService) Request(ctx context.Context, userID string, f billing.Filter) (*entity.Export, error) {
	if s.Pub == nil {
		return nil, ErrExportUnavailable
	}
	snapshot := ExportFilter{
		Status:    f.Status,
		Category:  f.Category,
		Search:    f.Search,
		Direction: string(f.Direction),
	}
	if f.PaidFrom != nil {
		snapshot.PaidFrom = f.PaidFrom.Format("2006-01-02")
	}
	if f.PaidTo != nil {
		snapshot.PaidTo = f.PaidTo.Format("2006-01-02")
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	e := &entity.Export{
		ID:         uuid.NewString(),
		UserID:     userID,
		FilterJSON: raw,
		Status:     entity.ExportPending,
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("export create failed")
		return nil, err
	}
	if err := s.Pub.PublishJSON(ctx, ExportJob{ExportID: e.ID}); err != nil {
		s.Logger.WithError(err).WithField("export_id", e.ID).Error("export publish failed")
		_ = s.Repo.MarkFailed(ctx, e.ID, "queue publish failed")
		return nil, err
	}
	return e, nil
}

// Get returns the export status for polling clients.
func (s *ExportService) Get(ctx context.Context, userID, id string) (*entity.Export, error) {
	e, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}
	return e, nil
}
