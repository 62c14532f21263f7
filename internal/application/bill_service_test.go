package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/domain/billing"
	"github.com/contasclaras/api/internal/domain/entity"
	repo "github.com/contasclaras/api/internal/domain/repository"
)

type stubBillRepo struct {
	bills       map[string]*entity.Bill
	seq         int
	failBatch   bool
	updateCalls int
	catCounts   map[string]int
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{bills: map[string]*entity.Bill{}, catCounts: map[string]int{}}
}

func (r *stubBillRepo) Create(_ context.Context, b *entity.Bill) error {
	r.seq++
	b.ID = fmt.Sprintf("bill-%d", r.seq)
	b.CreatedAt = time.Now()
	cp := *b
	r.bills[b.ID] = &cp
	return nil
}

func (r *stubBillRepo) CreateBatch(_ context.Context, bills []*entity.Bill) error {
	if r.failBatch {
		return errors.New("batch insert failed")
	}
	for _, b := range bills {
		r.seq++
		b.ID = fmt.Sprintf("bill-%d", r.seq)
		cp := *b
		r.bills[b.ID] = &cp
	}
	return nil
}

func (r *stubBillRepo) GetByID(_ context.Context, userID, id string) (*entity.Bill, error) {
	b, ok := r.bills[id]
	if !ok || b.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBillRepo) ListByUser(_ context.Context, userID string) ([]entity.Bill, error) {
	out := make([]entity.Bill, 0)
	for i := 1; i <= r.seq; i++ {
		if b, ok := r.bills[fmt.Sprintf("bill-%d", i)]; ok && b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBillRepo) Update(_ context.Context, b *entity.Bill) error {
	if _, ok := r.bills[b.ID]; !ok {
		return repo.ErrNotFound
	}
	r.updateCalls++
	cp := *b
	r.bills[b.ID] = &cp
	return nil
}

func (r *stubBillRepo) Delete(_ context.Context, userID, id string) error {
	b, ok := r.bills[id]
	if !ok || b.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.bills, id)
	return nil
}

func (r *stubBillRepo) CountByCategory(_ context.Context, _, categoryID string) (int, error) {
	return r.catCounts[categoryID], nil
}

type stubDepositorRepo struct {
	deps map[string]*entity.Depositor
}

func (r *stubDepositorRepo) Create(_ context.Context, d *entity.Depositor) error { return nil }
func (r *stubDepositorRepo) GetByID(_ context.Context, userID, id string) (*entity.Depositor, error) {
	d, ok := r.deps[id]
	if !ok || d.UserID != userID {
		return nil, repo.ErrNotFound
	}
	return d, nil
}
func (r *stubDepositorRepo) ListByUser(_ context.Context, _ string) ([]entity.Depositor, error) {
	return nil, nil
}
func (r *stubDepositorRepo) Update(_ context.Context, _ *entity.Depositor) error { return nil }
func (r *stubDepositorRepo) Delete(_ context.Context, _, _ string) error         { return nil }

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newBillService(billRepo *stubBillRepo, depRepo *stubDepositorRepo) *BillService {
	if depRepo == nil {
		depRepo = &stubDepositorRepo{deps: map[string]*entity.Depositor{}}
	}
	s := NewBillService(billRepo, depRepo, testLogger(), nil, "")
	s.Now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	s := newBillService(newStubBillRepo(), nil)
	_, err := s.Create(context.Background(), "u1", CreateBillInput{
		CounterpartyName: "Luz",
		Amount:           decimal.Zero,
		DueDate:          time.Now(),
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
}

func TestCreateSnapshotsDepositorName(t *testing.T) {
	depID := "dep-1"
	deps := &stubDepositorRepo{deps: map[string]*entity.Depositor{
		depID: {ID: depID, UserID: "u1", DisplayName: "Imobiliária Central"},
	}}
	billRepo := newStubBillRepo()
	s := newBillService(billRepo, deps)

	out, err := s.Create(context.Background(), "u1", CreateBillInput{
		DepositorID: &depID,
		Amount:      decimal.NewFromInt(100),
		DueDate:     time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].CounterpartyName != "Imobiliária Central" {
		t.Fatalf("name = %q, want depositor snapshot", out[0].CounterpartyName)
	}
}

func TestCreateInstallmentPlan(t *testing.T) {
	billRepo := newStubBillRepo()
	s := newBillService(billRepo, nil)

	out, err := s.Create(context.Background(), "u1", CreateBillInput{
		CounterpartyName: "Loja",
		Amount:           decimal.RequireFromString("100.00"),
		DueDate:          time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Installments:     3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 || len(billRepo.bills) != 3 {
		t.Fatalf("got %d returned / %d stored, want 3/3", len(out), len(billRepo.bills))
	}
	sum := decimal.Zero
	for _, b := range out {
		if b.UserID != "u1" {
			t.Fatalf("installment missing owner: %+v", b)
		}
		sum = sum.Add(b.Amount)
	}
	if want := decimal.RequireFromString("100.00"); !sum.Equal(want) {
		t.Fatalf("sum = %s, want %s", sum, want)
	}
}

func TestCreateInstallmentPlanFailureStoresNothing(t *testing.T) {
	billRepo := newStubBillRepo()
	billRepo.failBatch = true
	s := newBillService(billRepo, nil)

	_, err := s.Create(context.Background(), "u1", CreateBillInput{
		CounterpartyName: "Loja",
		Amount:           decimal.NewFromInt(300),
		DueDate:          time.Now(),
		Installments:     3,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(billRepo.bills) != 0 {
		t.Fatalf("store has %d bills after failed batch, want 0", len(billRepo.bills))
	}
}

func TestMarkPaidStampsClock(t *testing.T) {
	billRepo := newStubBillRepo()
	s := newBillService(billRepo, nil)

	out, err := s.Create(context.Background(), "u1", CreateBillInput{
		CounterpartyName: "Luz",
		Amount:           decimal.NewFromInt(100),
		DueDate:          time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	b, err := s.MarkPaid(context.Background(), "u1", out[0].ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !b.IsPaid() {
		t.Fatal("bill not paid")
	}
	if b.PaymentDate == nil || !b.PaymentDate.Equal(s.Now()) {
		t.Fatalf("payment date = %v, want %v", b.PaymentDate, s.Now())
	}
}

func TestMarkPaidIdempotent(t *testing.T) {
	billRepo := newStubBillRepo()
	s := newBillService(billRepo, nil)

	out, _ := s.Create(context.Background(), "u1", CreateBillInput{
		CounterpartyName: "Luz",
		Amount:           decimal.NewFromInt(100),
		DueDate:          time.Now(),
	})
	id := out[0].ID

	first, err := s.MarkPaid(context.Background(), "u1", id)
	if err != nil {
		t.Fatalf("first mark paid: %v", err)
	}
	updates := billRepo.updateCalls

	second, err := s.MarkPaid(context.Background(), "u1", id)
	if err != nil {
		t.Fatalf("second mark paid: %v", err)
	}
	if billRepo.updateCalls != updates {
		t.Fatal("second mark paid wrote to the store")
	}
	if !second.PaymentDate.Equal(*first.PaymentDate) {
		t.Fatalf("payment date changed: %v -> %v", first.PaymentDate, second.PaymentDate)
	}
}

func TestUpdateBackToUnpaidClearsPaymentDate(t *testing.T) {
	billRepo := newStubBillRepo()
	s := newBillService(billRepo, nil)

	out, _ := s.Create(context.Background(), "u1", CreateBillInput{
		CounterpartyName: "Luz",
		Amount:           decimal.NewFromInt(100),
		DueDate:          time.Now(),
	})
	id := out[0].ID
	if _, err := s.MarkPaid(context.Background(), "u1", id); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	unpaid := entity.StatusUnpaid
	b, err := s.Update(context.Background(), "u1", id, UpdateBillInput{Status: &unpaid})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.PaymentDate != nil {
		t.Fatalf("payment date = %v, want nil", b.PaymentDate)
	}
}

func TestListReceivablesSortedByCreationDesc(t *testing.T) {
	billRepo := newStubBillRepo()
	s := newBillService(billRepo, nil)
	ctx := context.Background()

	mk := func(name string, created time.Time) {
		out, err := s.Create(ctx, "u1", CreateBillInput{
			CounterpartyName: name,
			Amount:           decimal.NewFromInt(10),
			DueDate:          time.Now(),
			Direction:        entity.DirectionReceivable,
		})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		billRepo.bills[out[0].ID].CreatedAt = created
	}
	mk("older", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	mk("newest", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	mk("middle", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	got, err := s.List(ctx, "u1", billing.Filter{Direction: entity.DirectionReceivable})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"newest", "middle", "older"}
	if len(got) != len(want) {
		t.Fatalf("got %d bills, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].CounterpartyName != want[i] {
			t.Fatalf("position %d = %q, want %q", i, got[i].CounterpartyName, want[i])
		}
	}
}

func TestGetScopedToOwner(t *testing.T) {
	billRepo := newStubBillRepo()
	s := newBillService(billRepo, nil)

	out, _ := s.Create(context.Background(), "u1", CreateBillInput{
		CounterpartyName: "Luz",
		Amount:           decimal.NewFromInt(100),
		DueDate:          time.Now(),
	})
	if _, _, err := s.Get(context.Background(), "u2", out[0].ID); !errors.Is(err, ErrBillNotFound) {
		t.Fatalf("got %v, want ErrBillNotFound", err)
	}
}

func TestSummaryAggregates(t *testing.T) {
	billRepo := newStubBillRepo()
	s := newBillService(billRepo, nil)
	ctx := context.Background()
	now := s.Now()

	mk := func(amount string, due time.Time, paid bool) {
		in := CreateBillInput{
			CounterpartyName: "X",
			Amount:           decimal.RequireFromString(amount),
			DueDate:          due,
		}
		if paid {
			in.Status = entity.StatusPaid
		}
		if _, err := s.Create(ctx, "u1", in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mk("100.00", now.AddDate(0, 0, -5), false) // overdue
	mk("50.00", now.AddDate(0, 0, 2), false)   // due soon
	mk("200.00", now.AddDate(0, 0, 30), false) // current
	mk("75.00", now.AddDate(0, 0, -1), true)   // paid

	sum, err := s.Summary(ctx, "u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if want := decimal.RequireFromString("350.00"); !sum.TotalDue.Equal(want) {
		t.Fatalf("TotalDue = %s, want %s", sum.TotalDue, want)
	}
	if want := decimal.RequireFromString("75.00"); !sum.TotalPaid.Equal(want) {
		t.Fatalf("TotalPaid = %s, want %s", sum.TotalPaid, want)
	}
	if len(sum.Overdue) != 1 || len(sum.DueSoon) != 1 {
		t.Fatalf("overdue=%d dueSoon=%d, want 1/1", len(sum.Overdue), len(sum.DueSoon))
	}
}
