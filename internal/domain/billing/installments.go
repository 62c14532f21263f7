package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contasclaras/api/internal/domain/entity"
)

const (
	// MaxInstallments bounds an installment plan.
	MaxInstallments = 48

	// Installments stride a fixed 30 days, not calendar months.
	installmentStrideDays = 30
)

var (
	ErrInvalidInstallmentCount = errors.New("installment count must be between 1 and 48")
	ErrInvalidInstallmentTotal = errors.New("installment total must be greater than zero")
)

// InstallmentBase carries the fields shared by every installment of a plan.
type InstallmentBase struct {
	CounterpartyName string
	DepositorID      *string
	Category         string
	CategoryID       *string
	Direction        entity.Direction
	Status           entity.Status
	Notes            string
	InvoiceNumber    string
}

// ExpandInstallments produces count bills spaced 30 days apart starting at
// firstDue. Each installment gets total/count rounded to two decimals; the
// last installment absorbs the rounding remainder so the amounts sum to
// total exactly and no installment is zero. Names are suffixed
// " - Parcela i/count" and notes " - Parcela i de count". Result is in
// ascending installment order.
func ExpandInstallments(base InstallmentBase, count int, total decimal.Decimal, firstDue time.Time) ([]entity.Bill, error) {
	if count < 1 || count > MaxInstallments {
		return nil, ErrInvalidInstallmentCount
	}
	if !total.IsPositive() {
		return nil, ErrInvalidInstallmentTotal
	}

	per := total.DivRound(decimal.NewFromInt(int64(count)), 2)
	last := total.Sub(per.Mul(decimal.NewFromInt(int64(count - 1))))
	if !per.IsPositive() || !last.IsPositive() {
		// Degenerate totals (for example 0.01 split 48 ways) cannot be
		// distributed without a zero installment.
		return nil, ErrInvalidInstallmentTotal
	}

	bills := make([]entity.Bill, 0, count)
	for i := 0; i < count; i++ {
		amount := per
		if i == count-1 {
			amount = last
		}
		notes := fmt.Sprintf("Parcela %d de %d", i+1, count)
		if base.Notes != "" {
			notes = fmt.Sprintf("%s - Parcela %d de %d", base.Notes, i+1, count)
		}
		bills = append(bills, entity.Bill{
			CounterpartyName: fmt.Sprintf("%s - Parcela %d/%d", base.CounterpartyName, i+1, count),
			DepositorID:      base.DepositorID,
			Amount:           amount,
			DueDate:          firstDue.AddDate(0, 0, i*installmentStrideDays),
			Category:         base.Category,
			CategoryID:       base.CategoryID,
			Status:           base.Status,
			Direction:        base.Direction,
			Notes:            notes,
			InvoiceNumber:    base.InvoiceNumber,
		})
	}
	return bills, nil
}
