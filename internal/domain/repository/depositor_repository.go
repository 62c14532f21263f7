package repository

import (
	"context"

	"github.com/contasclaras/api/internal/domain/entity"
)

// DepositorRepository defines counterparty persistence. Depositors may be
// deleted while still referenced by bills; bills keep their name snapshot
// and the reference is nulled at the store level.
type DepositorRepository interface {
	Create(ctx context.Context, d *entity.Depositor) error
	GetByID(ctx context.Context, userID, id string) (*entity.Depositor, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Depositor, error)
	Update(ctx context.Context, d *entity.Depositor) error
	Delete(ctx context.Context, userID, id string) error
}
