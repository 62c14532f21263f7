package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contasclaras/api/internal/domain/entity"
)

func ptrTime(t time.Time) *time.Time { return &t }

func sampleBills() []entity.Bill {
	return []entity.Bill{
		{
			ID: "b1", CounterpartyName: "Companhia de Luz", Category: "Luz",
			Status: entity.StatusUnpaid, Direction: entity.DirectionPayable,
			Amount: decimal.NewFromInt(120), DueDate: day(2026, 3, 15),
		},
		{
			ID: "b2", CounterpartyName: "Imobiliária Central", Category: "Aluguel",
			Status: entity.StatusPaid, Direction: entity.DirectionPayable,
			Amount: decimal.NewFromInt(1500), DueDate: day(2026, 3, 5),
			PaymentDate: ptrTime(day(2026, 3, 4)),
		},
		{
			ID: "b3", CounterpartyName: "Cliente Silva", Category: "Outros",
			Status: entity.StatusUnpaid, Direction: entity.DirectionReceivable,
			Amount: decimal.NewFromInt(300), DueDate: day(2026, 3, 20),
			Notes: "pagamento do projeto",
		},
		{
			ID: "b4", CounterpartyName: "Mercado Bom Preço", Category: "Mercado",
			Status: entity.StatusPaid, Direction: entity.DirectionPayable,
			Amount: decimal.NewFromInt(80), DueDate: day(2026, 2, 28),
			PaymentDate: ptrTime(day(2026, 2, 27)),
		},
	}
}

func ids(bills []entity.Bill) []string {
	out := make([]string, len(bills))
	for i, b := range bills {
		out[i] = b.ID
	}
	return out
}

func assertIDs(t *testing.T, got []entity.Bill, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestFilterStatus(t *testing.T) {
	bills := sampleBills()
	assertIDs(t, Filter{Status: "paid"}.Apply(bills), "b2", "b4")
	assertIDs(t, Filter{Status: "unpaid"}.Apply(bills), "b1", "b3")
	assertIDs(t, Filter{Status: FilterAll}.Apply(bills), "b1", "b2", "b3", "b4")
	assertIDs(t, Filter{}.Apply(bills), "b1", "b2", "b3", "b4")
}

func TestFilterCategoryCaseInsensitive(t *testing.T) {
	bills := sampleBills()
	assertIDs(t, Filter{Category: "luz"}.Apply(bills), "b1")
	assertIDs(t, Filter{Category: "LUZ"}.Apply(bills), "b1")
	assertIDs(t, Filter{Category: FilterAll}.Apply(bills), "b1", "b2", "b3", "b4")
}

func TestFilterSearchOverNameAndNotes(t *testing.T) {
	bills := sampleBills()
	assertIDs(t, Filter{Search: "central"}.Apply(bills), "b2")
	assertIDs(t, Filter{Search: "projeto"}.Apply(bills), "b3")
	assertIDs(t, Filter{Search: "  Mercado "}.Apply(bills), "b4")
	assertIDs(t, Filter{Search: "inexistente"}.Apply(bills))
}

func TestFilterDirection(t *testing.T) {
	bills := sampleBills()
	assertIDs(t, Filter{Direction: entity.DirectionReceivable}.Apply(bills), "b3")
	assertIDs(t, Filter{Direction: entity.DirectionPayable}.Apply(bills), "b1", "b2", "b4")
}

func TestFilterPaymentRange(t *testing.T) {
	bills := sampleBills()
	f := Filter{
		PaidFrom: ptrTime(day(2026, 3, 1)),
		PaidTo:   ptrTime(day(2026, 3, 31)),
	}
	// Unpaid bills have no payment date and fall out of the range.
	assertIDs(t, f.Apply(bills), "b2")

	wide := Filter{
		PaidFrom: ptrTime(day(2026, 2, 1)),
		PaidTo:   ptrTime(day(2026, 3, 31)),
	}
	assertIDs(t, wide.Apply(bills), "b2", "b4")

	// A lone bound is ignored; both are required to activate the range.
	half := Filter{PaidFrom: ptrTime(day(2026, 3, 1))}
	assertIDs(t, half.Apply(bills), "b1", "b2", "b3", "b4")
}

func TestFilterPredicatesAreConjunctive(t *testing.T) {
	bills := sampleBills()
	f := Filter{Status: "paid", Category: "mercado"}
	assertIDs(t, f.Apply(bills), "b4")

	none := Filter{Status: "unpaid", Category: "Aluguel"}
	assertIDs(t, none.Apply(bills))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	bills := sampleBills()
	_ = Filter{Status: "paid"}.Apply(bills)
	assertIDs(t, bills, "b1", "b2", "b3", "b4")
}
