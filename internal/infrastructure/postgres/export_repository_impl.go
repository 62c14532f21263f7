package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contasclaras/api/internal/domain/entity"
	"github.com/contasclaras/api/internal/domain/repository"
)

type ExportRepository struct {
	pool *pgxpool.Pool
}

func NewExportRepository(pool *pgxpool.Pool) *ExportRepository {
	return &ExportRepository{pool: pool}
}

func (r *ExportRepository) Create(ctx context.Context, e *entity.Export) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO exports (id, user_id, filter, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, e.ID, e.UserID, e.FilterJSON, e.Status)
	return row.Scan(&e.CreatedAt, &e.UpdatedAt)
}

func scanExport(row pgx.Row) (*entity.Export, error) {
	e := &entity.Export{}
	if err := row.Scan(&e.ID, &e.UserID, &e.FilterJSON, &e.Status, &e.ObjectURL,
		&e.Error, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *ExportRepository) GetByID(ctx context.Context, userID, id string) (*entity.Export, error) {
	return scanExport(r.pool.QueryRow(ctx, `
		SELECT id, user_id, filter, status, object_url, error, created_at, updated_at
		FROM exports
		WHERE id = $1 AND user_id = $2
	`, id, userID))
}

func (r *ExportRepository) Get(ctx context.Context, id string) (*entity.Export, error) {
	return scanExport(r.pool.QueryRow(ctx, `
		SELECT id, user_id, filter, status, object_url, error, created_at, updated_at
		FROM exports
		WHERE id = $1
	`, id))
}

func (r *ExportRepository) SetStatus(ctx context.Context, id string, status entity.ExportStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE exports SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ExportRepository) MarkDone(ctx context.Context, id, objectURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE exports SET status = 'done', object_url = $1, updated_at = now() WHERE id = $2
	`, objectURL, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ExportRepository) MarkFailed(ctx context.Context, id, reason string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE exports SET status = 'failed', error = $1, updated_at = now() WHERE id = $2
	`, reason, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ExportRepository = (*ExportRepository)(nil)
