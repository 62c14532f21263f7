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

const billColumns = `id, user_id, counterparty_name, depositor_id, amount, due_date,
	payment_date, category, category_id, status, direction, notes, invoice_number,
	created_at, updated_at`

type BillRepository struct {
	pool *pgxpool.Pool
}

func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

func scanBill(row pgx.Row, b *entity.Bill) error {
	return row.Scan(&b.ID, &b.UserID, &b.CounterpartyName, &b.DepositorID, &b.Amount,
		&b.DueDate, &b.PaymentDate, &b.Category, &b.CategoryID, &b.Status, &b.Direction,
		&b.Notes, &b.InvoiceNumber, &b.CreatedAt, &b.UpdatedAt)
}

const insertBillSQL = `
	INSERT INTO bills (user_id, counterparty_name, depositor_id, amount, due_date,
		payment_date, category, category_id, status, direction, notes, invoice_number)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id, created_at, updated_at`

func (r *BillRepository) Create(ctx context.Context, b *entity.Bill) error {
	row := r.pool.QueryRow(ctx, insertBillSQL,
		b.UserID, b.CounterpartyName, b.DepositorID, b.Amount, b.DueDate,
		b.PaymentDate, b.Category, b.CategoryID, b.Status, b.Direction,
		b.Notes, b.InvoiceNumber)
	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// CreateBatch inserts all bills inside one transaction so an installment
// plan is all-or-nothing.
func (r *BillRepository) CreateBatch(ctx context.Context, bills []*entity.Bill) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, b := range bills {
		row := tx.QueryRow(ctx, insertBillSQL,
			b.UserID, b.CounterpartyName, b.DepositorID, b.Amount, b.DueDate,
			b.PaymentDate, b.Category, b.CategoryID, b.Status, b.Direction,
			b.Notes, b.InvoiceNumber)
		if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *BillRepository) GetByID(ctx context.Context, userID, id string) (*entity.Bill, error) {
	b := &entity.Bill{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+billColumns+`
		FROM bills
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err := scanBill(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BillRepository) ListByUser(ctx context.Context, userID string) ([]entity.Bill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+billColumns+`
		FROM bills
		WHERE user_id = $1
		ORDER BY due_date ASC, created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]entity.Bill, 0)
	for rows.Next() {
		var b entity.Bill
		if err := scanBill(rows, &b); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *BillRepository) Update(ctx context.Context, b *entity.Bill) error {
	b.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE bills
		SET counterparty_name = $1, depositor_id = $2, amount = $3, due_date = $4,
			payment_date = $5, category = $6, category_id = $7, status = $8,
			notes = $9, invoice_number = $10, updated_at = $11
		WHERE id = $12 AND user_id = $13
	`, b.CounterpartyName, b.DepositorID, b.Amount, b.DueDate, b.PaymentDate,
		b.Category, b.CategoryID, b.Status, b.Notes, b.InvoiceNumber, b.UpdatedAt,
		b.ID, b.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BillRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM bills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BillRepository) CountByCategory(ctx context.Context, userID, categoryID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM bills WHERE user_id = $1 AND category_id = $2
	`, userID, categoryID).Scan(&n)
	return n, err
}

var _ repository.BillRepository = (*BillRepository)(nil)
