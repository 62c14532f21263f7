package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/contasclaras/api/internal/domain/entity"
	repo "github.com/contasclaras/api/internal/domain/repository"
)

type memDepositorRepo struct {
	deps map[string]*entity.Depositor
	seq  int
}

func newMemDepositorRepo() *memDepositorRepo {
	return &memDepositorRepo{deps: map[string]*entity.Depositor{}}
}

func (r *memDepositorRepo) Create(_ context.Context, d *entity.Depositor) error {
	r.seq++
	d.ID = fmt.Sprintf("dep-%d", r.seq)
	cp := *d
	r.deps[d.ID] = &cp
	return nil
}

func (r *memDepositorRepo) GetByID(_ context.Context, userID, id string) (*entity.Depositor, error) {
	d, ok := r.deps[id]
	if !ok || d.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDepositorRepo) ListByUser(_ context.Context, userID string) ([]entity.Depositor, error) {
	out := make([]entity.Depositor, 0)
	for _, d := range r.deps {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *memDepositorRepo) Update(_ context.Context, d *entity.Depositor) error {
	if _, ok := r.deps[d.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *d
	r.deps[d.ID] = &cp
	return nil
}

func (r *memDepositorRepo) Delete(_ context.Context, userID, id string) error {
	d, ok := r.deps[id]
	if !ok || d.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.deps, id)
	return nil
}

func TestDepositorNameTooShort(t *testing.T) {
	s := NewDepositorService(newMemDepositorRepo(), testLogger())
	_, err := s.Create(context.Background(), "u1", DepositorInput{DisplayName: "ab"})
	if !errors.Is(err, ErrDepositorName) {
		t.Fatalf("got %v, want ErrDepositorName", err)
	}
	// Whitespace padding does not count toward the minimum.
	_, err = s.Create(context.Background(), "u1", DepositorInput{DisplayName: "  a  "})
	if !errors.Is(err, ErrDepositorName) {
		t.Fatalf("got %v, want ErrDepositorName", err)
	}
}

func TestDepositorCreateTrimsName(t *testing.T) {
	s := NewDepositorService(newMemDepositorRepo(), testLogger())
	d, err := s.Create(context.Background(), "u1", DepositorInput{
		DisplayName: "  João da Silva  ",
		CEP:         "01001000",
		State:       "SP",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.DisplayName != "João da Silva" {
		t.Fatalf("name = %q", d.DisplayName)
	}
}

func TestDepositorDeleteAllowedWhileReferenced(t *testing.T) {
	// Bills keep a name snapshot, so deleting a referenced depositor is
	// allowed and only nulls the reference at the store level.
	depRepo := newMemDepositorRepo()
	s := NewDepositorService(depRepo, testLogger())
	ctx := context.Background()

	d, err := s.Create(ctx, "u1", DepositorInput{DisplayName: "Imobiliária Central"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, "u1", d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := depRepo.GetByID(ctx, "u1", d.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatal("depositor still present after delete")
	}
}
