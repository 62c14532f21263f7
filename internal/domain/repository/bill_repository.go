package repository

import (
	"context"

	"github.com/contasclaras/api/internal/domain/entity"
)

// BillRepository defines bill persistence. All reads and writes are scoped
// to the owning user.
type BillRepository interface {
	Create(ctx context.Context, b *entity.Bill) error
	// CreateBatch inserts all bills in a single transaction: either every
	// installment of a plan is created or none is.
	CreateBatch(ctx context.Context, bills []*entity.Bill) error
	GetByID(ctx context.Context, userID, id string) (*entity.Bill, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Bill, error)
	Update(ctx context.Context, b *entity.Bill) error
	Delete(ctx context.Context, userID, id string) error
	// CountByCategory reports how many bills reference a category, backing
	// the category delete guard.
	CountByCategory(ctx context.Context, userID, categoryID string) (int, error)
}
