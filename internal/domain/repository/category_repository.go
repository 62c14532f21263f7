package repository

import (
	"context"

	"github.com/contasclaras/api/internal/domain/entity"
)

// CategoryRepository defines category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, userID, id string) (*entity.Category, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, userID, id string) error
}
