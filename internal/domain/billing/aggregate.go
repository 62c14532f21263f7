package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contasclaras/api/internal/domain/entity"
)

// TotalDue sums the amounts of unpaid bills.
func TotalDue(bills []entity.Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		if b.Status == entity.StatusUnpaid {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// TotalPaid sums the amounts of paid bills.
func TotalPaid(bills []entity.Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		if b.Status == entity.StatusPaid {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// OverdueBills returns unpaid bills whose due date has passed, preserving
// input order. Callers truncate for display.
func OverdueBills(bills []entity.Bill, now time.Time) []entity.Bill {
	today := dayOf(now)
	out := make([]entity.Bill, 0)
	for _, b := range bills {
		if b.Status == entity.StatusUnpaid && dayOf(b.DueDate.In(now.Location())).Before(today) {
			out = append(out, b)
		}
	}
	return out
}

// DueSoonBills returns unpaid bills due within the next seven days,
// today inclusive. This window is wider than the 3-day badge window on
// purpose.
func DueSoonBills(bills []entity.Bill, now time.Time) []entity.Bill {
	today := dayOf(now)
	limit := today.AddDate(0, 0, aggregateDueSoonDays)
	out := make([]entity.Bill, 0)
	for _, b := range bills {
		if b.Status != entity.StatusUnpaid {
			continue
		}
		due := dayOf(b.DueDate.In(now.Location()))
		if !due.Before(today) && !due.After(limit) {
			out = append(out, b)
		}
	}
	return out
}
