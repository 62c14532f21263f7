package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/domain/entity"
	repo "github.com/contasclaras/api/internal/domain/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is referenced by existing bills")
	ErrCategoryName     = errors.New("category name is required")
)

// CategoryService owns category CRUD. Deleting a category that any bill
// still references is rejected before the store is asked to delete.
type CategoryService struct {
	Repo   repo.CategoryRepository
	Bills  repo.BillRepository
	Logger *logrus.Logger
}

func NewCategoryService(catRepo repo.CategoryRepository, billRepo repo.BillRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Repo: catRepo, Bills: billRepo, Logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, userID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryName
	}
	c := &entity.Category{UserID: userID, Name: name}
	if err := s.Repo.Create(ctx, c); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("category create failed")
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]entity.Category, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *CategoryService) Update(ctx context.Context, userID, id, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryName
	}
	c, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	c.Name = name
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete checks for referencing bills first; when any exist the delete is
// rejected and the store never sees a delete call.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	n, err := s.Bills.CountByCategory(ctx, userID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCategoryNotFound
		}
		s.Logger.WithError(err).WithField("category_id", id).Error("category delete failed")
		return err
	}
	return nil
}
