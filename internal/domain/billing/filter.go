package billing

import (
	"strings"
	"time"

	"github.com/contasclaras/api/internal/domain/entity"
)

// FilterAll is the wildcard value for status and category filters.
const FilterAll = "all"

// Filter narrows a bill collection. All predicates are conjunctive.
// Zero values mean "no restriction" for every field except Status and
// Category, whose wildcard is FilterAll (an empty string behaves the same).
type Filter struct {
	Status    string           // "all", "paid" or "unpaid"
	Category  string           // "all" or a category name, matched case-insensitively
	Search    string           // case-insensitive substring over counterparty name and notes
	Direction entity.Direction // empty = both directions
	PaidFrom  *time.Time       // payment-period range, inclusive; both bounds required
	PaidTo    *time.Time
}

// Apply returns the bills satisfying every predicate. It is pure: the
// input slice is not mutated and relative order is preserved.
func (f Filter) Apply(bills []entity.Bill) []entity.Bill {
	out := make([]entity.Bill, 0, len(bills))
	for _, b := range bills {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// Matches reports whether a single bill passes the filter.
func (f Filter) Matches(b entity.Bill) bool {
	if f.Status != "" && f.Status != FilterAll && string(b.Status) != f.Status {
		return false
	}
	if f.Category != "" && f.Category != FilterAll && !strings.EqualFold(b.Category, f.Category) {
		return false
	}
	if f.Direction != "" && b.Direction != f.Direction {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		name := strings.ToLower(b.CounterpartyName)
		notes := strings.ToLower(b.Notes)
		if !strings.Contains(name, s) && !strings.Contains(notes, s) {
			return false
		}
	}
	if f.PaidFrom != nil && f.PaidTo != nil {
		// A bill with no payment date is excluded while a range is active.
		if b.PaymentDate == nil {
			return false
		}
		paid := dayOf(*b.PaymentDate)
		if paid.Before(dayOf(*f.PaidFrom)) || paid.After(dayOf(*f.PaidTo)) {
			return false
		}
	}
	return true
}
