package billing

import (
	"time"

	"github.com/contasclaras/api/internal/domain/entity"
)

// DisplayStatus is the derived badge state of a single bill.
type DisplayStatus string

const (
	Paid    DisplayStatus = "paid"
	Overdue DisplayStatus = "overdue"
	DueSoon DisplayStatus = "due_soon"
	Current DisplayStatus = "current"
)

// The badge uses a 3-day window; the dashboard due-soon aggregate uses 7.
// The two thresholds are intentionally different.
const (
	badgeDueSoonDays     = 3
	aggregateDueSoonDays = 7
)

// dayOf strips the time-of-day component, normalizing to midnight in the
// value's own location. Comparing normalized days avoids off-by-one errors
// from time-of-day components.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DeriveStatus computes the display status of a bill at the given moment.
// Paid bills are Paid regardless of due date. Otherwise the due date is
// compared to now at day granularity.
func DeriveStatus(b entity.Bill, now time.Time) DisplayStatus {
	if b.Status == entity.StatusPaid {
		return Paid
	}
	today := dayOf(now)
	due := dayOf(b.DueDate.In(now.Location()))
	switch {
	case due.Before(today):
		return Overdue
	case !due.After(today.AddDate(0, 0, badgeDueSoonDays)):
		return DueSoon
	default:
		return Current
	}
}
