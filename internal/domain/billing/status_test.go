package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contasclaras/api/internal/domain/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		status entity.Status
		due    time.Time
		want   DisplayStatus
	}{
		{"paid wins over overdue", entity.StatusPaid, day(2026, 3, 1), Paid},
		{"paid wins over future", entity.StatusPaid, day(2026, 4, 1), Paid},
		{"due yesterday is overdue", entity.StatusUnpaid, day(2026, 3, 9), Overdue},
		{"due today is due soon", entity.StatusUnpaid, day(2026, 3, 10), DueSoon},
		{"due in 3 days is due soon", entity.StatusUnpaid, day(2026, 3, 13), DueSoon},
		{"due in 4 days is current", entity.StatusUnpaid, day(2026, 3, 14), Current},
		{"due far out is current", entity.StatusUnpaid, day(2026, 6, 1), Current},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := entity.Bill{Status: tc.status, DueDate: tc.due}
			if got := DeriveStatus(b, now); got != tc.want {
				t.Fatalf("DeriveStatus(due=%s) = %q, want %q", tc.due.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestDeriveStatusIgnoresTimeOfDay(t *testing.T) {
	// A bill due later today must not count as overdue just because the
	// clock has passed the due timestamp.
	now := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)
	b := entity.Bill{
		Status:  entity.StatusUnpaid,
		DueDate: time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC),
		Amount:  decimal.NewFromInt(10),
	}
	if got := DeriveStatus(b, now); got != DueSoon {
		t.Fatalf("got %q, want %q", got, DueSoon)
	}
}
