package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/contasclaras/api/internal/domain/entity"
	repo "github.com/contasclaras/api/internal/domain/repository"
)

type stubCategoryRepo struct {
	cats        map[string]*entity.Category
	seq         int
	deleteCalls int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{cats: map[string]*entity.Category{}}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.seq++
	c.ID = fmt.Sprintf("cat-%d", r.seq)
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) GetByID(_ context.Context, userID, id string) (*entity.Category, error) {
	c, ok := r.cats[id]
	if !ok || c.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) ListByUser(_ context.Context, userID string) ([]entity.Category, error) {
	out := make([]entity.Category, 0)
	for _, c := range r.cats {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := r.cats[c.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, userID, id string) error {
	r.deleteCalls++
	c, ok := r.cats[id]
	if !ok || c.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.cats, id)
	return nil
}

func TestCategoryCreateRequiresName(t *testing.T) {
	s := NewCategoryService(newStubCategoryRepo(), newStubBillRepo(), testLogger())
	if _, err := s.Create(context.Background(), "u1", "   "); !errors.Is(err, ErrCategoryName) {
		t.Fatalf("got %v, want ErrCategoryName", err)
	}
}

func TestCategoryDeleteRejectedWhileReferenced(t *testing.T) {
	catRepo := newStubCategoryRepo()
	billRepo := newStubBillRepo()
	s := NewCategoryService(catRepo, billRepo, testLogger())
	ctx := context.Background()

	c, err := s.Create(ctx, "u1", "Luz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	billRepo.catCounts[c.ID] = 2

	if err := s.Delete(ctx, "u1", c.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("got %v, want ErrCategoryInUse", err)
	}
	if catRepo.deleteCalls != 0 {
		t.Fatal("store saw a delete call for a referenced category")
	}
	if _, err := s.Repo.GetByID(ctx, "u1", c.ID); err != nil {
		t.Fatalf("category gone after rejected delete: %v", err)
	}
}

func TestCategoryDeleteUnreferenced(t *testing.T) {
	catRepo := newStubCategoryRepo()
	s := NewCategoryService(catRepo, newStubBillRepo(), testLogger())
	ctx := context.Background()

	c, err := s.Create(ctx, "u1", "Transporte")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, "u1", c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := catRepo.GetByID(ctx, "u1", c.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatal("category still present after delete")
	}
}

func TestCategoryUpdateTrimsName(t *testing.T) {
	catRepo := newStubCategoryRepo()
	s := NewCategoryService(catRepo, newStubBillRepo(), testLogger())
	ctx := context.Background()

	c, _ := s.Create(ctx, "u1", "Luz")
	got, err := s.Update(ctx, "u1", c.ID, "  Energia  ")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Energia" {
		t.Fatalf("name = %q, want %q", got.Name, "Energia")
	}
}
