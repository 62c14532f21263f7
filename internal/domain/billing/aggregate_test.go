package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contasclaras/api/internal/domain/entity"
)

func TestTotalsPartitionByStatus(t *testing.T) {
	bills := []entity.Bill{
		{Status: entity.StatusUnpaid, Amount: decimal.RequireFromString("120.50")},
		{Status: entity.StatusPaid, Amount: decimal.RequireFromString("80.25")},
		{Status: entity.StatusUnpaid, Amount: decimal.RequireFromString("9.99")},
		{Status: entity.StatusPaid, Amount: decimal.RequireFromString("1500.00")},
	}

	due := TotalDue(bills)
	paid := TotalPaid(bills)

	if want := decimal.RequireFromString("130.49"); !due.Equal(want) {
		t.Fatalf("TotalDue = %s, want %s", due, want)
	}
	if want := decimal.RequireFromString("1580.25"); !paid.Equal(want) {
		t.Fatalf("TotalPaid = %s, want %s", paid, want)
	}

	// Every bill lands in exactly one bucket.
	sum := decimal.Zero
	for _, b := range bills {
		sum = sum.Add(b.Amount)
	}
	if !due.Add(paid).Equal(sum) {
		t.Fatalf("due+paid = %s, want %s", due.Add(paid), sum)
	}
}

func TestTotalsEmpty(t *testing.T) {
	if got := TotalDue(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("TotalDue(nil) = %s, want 0", got)
	}
	if got := TotalPaid(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("TotalPaid(nil) = %s, want 0", got)
	}
}

func TestOverdueBills(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bills := []entity.Bill{
		{ID: "late", Status: entity.StatusUnpaid, DueDate: day(2026, 3, 9)},
		{ID: "today", Status: entity.StatusUnpaid, DueDate: day(2026, 3, 10)},
		{ID: "paid-late", Status: entity.StatusPaid, DueDate: day(2026, 2, 1)},
		{ID: "older", Status: entity.StatusUnpaid, DueDate: day(2026, 1, 15)},
	}
	assertIDs(t, OverdueBills(bills, now), "late", "older")
}

func TestDueSoonBillsSevenDayWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bills := []entity.Bill{
		{ID: "yesterday", Status: entity.StatusUnpaid, DueDate: day(2026, 3, 9)},
		{ID: "today", Status: entity.StatusUnpaid, DueDate: day(2026, 3, 10)},
		{ID: "day7", Status: entity.StatusUnpaid, DueDate: day(2026, 3, 17)},
		{ID: "day8", Status: entity.StatusUnpaid, DueDate: day(2026, 3, 18)},
		{ID: "paid", Status: entity.StatusPaid, DueDate: day(2026, 3, 12)},
	}
	assertIDs(t, DueSoonBills(bills, now), "today", "day7")
}
