package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/contasclaras/api/internal/domain/entity"
)

func TestExpandInstallmentsEvenSplit(t *testing.T) {
	base := InstallmentBase{
		CounterpartyName: "Loja de Móveis",
		Category:         "Outros",
		Status:           entity.StatusUnpaid,
		Direction:        entity.DirectionPayable,
	}
	first := day(2026, 4, 1)

	bills, err := ExpandInstallments(base, 4, decimal.RequireFromString("200.00"), first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bills) != 4 {
		t.Fatalf("got %d bills, want 4", len(bills))
	}
	for i, b := range bills {
		if want := decimal.RequireFromString("50.00"); !b.Amount.Equal(want) {
			t.Fatalf("installment %d amount = %s, want %s", i+1, b.Amount, want)
		}
		wantDue := first.AddDate(0, 0, i*30)
		if !b.DueDate.Equal(wantDue) {
			t.Fatalf("installment %d due = %s, want %s", i+1, b.DueDate, wantDue)
		}
	}
	if got, want := bills[0].CounterpartyName, "Loja de Móveis - Parcela 1/4"; got != want {
		t.Fatalf("name = %q, want %q", got, want)
	}
	if got, want := bills[3].Notes, "Parcela 4 de 4"; got != want {
		t.Fatalf("notes = %q, want %q", got, want)
	}
}

func TestExpandInstallmentsLastAbsorbsRemainder(t *testing.T) {
	bills, err := ExpandInstallments(InstallmentBase{CounterpartyName: "X"}, 3, decimal.RequireFromString("100.00"), day(2026, 4, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("33.33"); !bills[0].Amount.Equal(want) {
		t.Fatalf("first = %s, want %s", bills[0].Amount, want)
	}
	if want := decimal.RequireFromString("33.34"); !bills[2].Amount.Equal(want) {
		t.Fatalf("last = %s, want %s", bills[2].Amount, want)
	}

	sum := decimal.Zero
	for _, b := range bills {
		sum = sum.Add(b.Amount)
	}
	if want := decimal.RequireFromString("100.00"); !sum.Equal(want) {
		t.Fatalf("sum = %s, want %s", sum, want)
	}
}

func TestExpandInstallmentsNotesSuffixAppended(t *testing.T) {
	bills, err := ExpandInstallments(InstallmentBase{CounterpartyName: "X", Notes: "geladeira nova"}, 2, decimal.NewFromInt(100), day(2026, 4, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := bills[0].Notes, "geladeira nova - Parcela 1 de 2"; got != want {
		t.Fatalf("notes = %q, want %q", got, want)
	}
}

func TestExpandInstallmentsRejectsBadInput(t *testing.T) {
	first := day(2026, 4, 1)

	if _, err := ExpandInstallments(InstallmentBase{}, 0, decimal.NewFromInt(100), first); !errors.Is(err, ErrInvalidInstallmentCount) {
		t.Fatalf("count 0: got %v", err)
	}
	if _, err := ExpandInstallments(InstallmentBase{}, MaxInstallments+1, decimal.NewFromInt(100), first); !errors.Is(err, ErrInvalidInstallmentCount) {
		t.Fatalf("count 49: got %v", err)
	}
	if _, err := ExpandInstallments(InstallmentBase{}, 2, decimal.Zero, first); !errors.Is(err, ErrInvalidInstallmentTotal) {
		t.Fatalf("zero total: got %v", err)
	}
	// 0.01 split 48 ways rounds every share to zero.
	if _, err := ExpandInstallments(InstallmentBase{}, 48, decimal.RequireFromString("0.01"), first); !errors.Is(err, ErrInvalidInstallmentTotal) {
		t.Fatalf("degenerate total: got %v", err)
	}
}
