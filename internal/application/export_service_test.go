package application

import (
	"context"
	"errors"
	"testing"

	"github.com/contasclaras/api/internal/domain/billing"
	"github.com/contasclaras/api/internal/domain/entity"
	repo "github.com/contasclaras/api/internal/domain/repository"
)

type stubExportRepo struct {
	exports map[string]*entity.Export
}

func newStubExportRepo() *stubExportRepo {
	return &stubExportRepo{exports: map[string]*entity.Export{}}
}

func (r *stubExportRepo) Create(_ context.Context, e *entity.Export) error {
	cp := *e
	r.exports[e.ID] = &cp
	return nil
}

func (r *stubExportRepo) GetByID(_ context.Context, userID, id string) (*entity.Export, error) {
	e, ok := r.exports[id]
	if !ok || e.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubExportRepo) Get(_ context.Context, id string) (*entity.Export, error) {
	e, ok := r.exports[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubExportRepo) SetStatus(_ context.Context, id string, status entity.ExportStatus) error {
	e, ok := r.exports[id]
	if !ok {
		return repo.ErrNotFound
	}
	e.Status = status
	return nil
}

func (r *stubExportRepo) MarkDone(_ context.Context, id, objectURL string) error {
	e, ok := r.exports[id]
	if !ok {
		return repo.ErrNotFound
	}
	e.Status = entity.ExportDone
	e.ObjectURL = objectURL
	return nil
}

func (r *stubExportRepo) MarkFailed(_ context.Context, id, reason string) error {
	e, ok := r.exports[id]
	if !ok {
		return repo.ErrNotFound
	}
	e.Status = entity.ExportFailed
	e.Error = reason
	return nil
}

func TestExportRequestWithoutQueue(t *testing.T) {
	s := NewExportService(newStubExportRepo(), nil, testLogger())
	_, err := s.Request(context.Background(), "u1", billing.Filter{Status: "unpaid"})
	if !errors.Is(err, ErrExportUnavailable) {
		t.Fatalf("got %v, want ErrExportUnavailable", err)
	}
}

func TestExportGetScopedToOwner(t *testing.T) {
	exportRepo := newStubExportRepo()
	exportRepo.exports["e1"] = &entity.Export{ID: "e1", UserID: "u1", Status: entity.ExportPending}
	s := NewExportService(exportRepo, nil, testLogger())

	if _, err := s.Get(context.Background(), "u2", "e1"); !errors.Is(err, ErrExportNotFound) {
		t.Fatalf("got %v, want ErrExportNotFound", err)
	}
	e, err := s.Get(context.Background(), "u1", "e1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Status != entity.ExportPending {
		t.Fatalf("status = %q", e.Status)
	}
}
