package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contasclaras/api/internal/domain/entity"
	"github.com/contasclaras/api/internal/domain/repository"
)

const depositorColumns = `id, user_id, display_name, cep, street, number,
	neighborhood, city, state, cpf, cnpj, created_at, updated_at`

type DepositorRepository struct {
	pool *pgxpool.Pool
}

func NewDepositorRepository(pool *pgxpool.Pool) *DepositorRepository {
	return &DepositorRepository{pool: pool}
}

func scanDepositor(row pgx.Row, d *entity.Depositor) error {
	return row.Scan(&d.ID, &d.UserID, &d.DisplayName, &d.CEP, &d.Street, &d.Number,
		&d.Neighborhood, &d.City, &d.State, &d.CPF, &d.CNPJ, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DepositorRepository) Create(ctx context.Context, d *entity.Depositor) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO depositors (user_id, display_name, cep, street, number,
			neighborhood, city, state, cpf, cnpj)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, d.UserID, d.DisplayName, d.CEP, d.Street, d.Number, d.Neighborhood,
		d.City, d.State, d.CPF, d.CNPJ)
	return row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DepositorRepository) GetByID(ctx context.Context, userID, id string) (*entity.Depositor, error) {
	d := &entity.Depositor{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+depositorColumns+`
		FROM depositors
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err := scanDepositor(row, d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *DepositorRepository) ListByUser(ctx context.Context, userID string) ([]entity.Depositor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+depositorColumns+`
		FROM depositors
		WHERE user_id = $1
		ORDER BY display_name ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deps := make([]entity.Depositor, 0)
	for rows.Next() {
		var d entity.Depositor
		if err := scanDepositor(rows, &d); err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

func (r *DepositorRepository) Update(ctx context.Context, d *entity.Depositor) error {
	d.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE depositors
		SET display_name = $1, cep = $2, street = $3, number = $4,
			neighborhood = $5, city = $6, state = $7, cpf = $8, cnpj = $9,
			updated_at = $10
		WHERE id = $11 AND user_id = $12
	`, d.DisplayName, d.CEP, d.Street, d.Number, d.Neighborhood, d.City,
		d.State, d.CPF, d.CNPJ, d.UpdatedAt, d.ID, d.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the depositor; bills referencing it keep their snapshot
// name and have the reference nulled by the ON DELETE SET NULL constraint.
func (r *DepositorRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM depositors WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.DepositorRepository = (*DepositorRepository)(nil)
