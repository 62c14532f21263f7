package application

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/domain/billing"
	"github.com/contasclaras/api/internal/domain/entity"
	repo "github.com/contasclaras/api/internal/domain/repository"
)

var (
	ErrBillNotFound  = errors.New("bill not found")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// BillService owns the bill lifecycle: create (single or installment plan),
// list/filter, summary aggregation, update, mark-paid and delete.
type BillService struct {
	Repo         repo.BillRepository
	Depositors   repo.DepositorRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESBillsIndex string
	Now          func() time.Time
}

func NewBillService(billRepo repo.BillRepository, depRepo repo.DepositorRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *BillService {
	return &BillService{
		Repo:         billRepo,
		Depositors:   depRepo,
		Logger:       logger,
		ES:           es,
		ESBillsIndex: esIndex,
		Now:          time.Now,
	}
}

// CreateBillInput carries everything needed to create a bill or an
// installment plan. Installments <= 1 creates a single bill; otherwise
// Amount is the plan total split across Installments bills.
type CreateBillInput struct {
	CounterpartyName string
	DepositorID      *string
	Amount           decimal.Decimal
	DueDate          time.Time
	Category         string
	CategoryID       *string
	Direction        entity.Direction
	Status           entity.Status
	Notes            string
	InvoiceNumber    string
	Installments     int
}

// Create persists one bill, or the whole installment plan in a single
// transaction. The counterparty name is snapshotted from the depositor
// when one is referenced and no explicit name was given.
func (s *BillService) Create(ctx context.Context, userID string, in CreateBillInput) ([]entity.Bill, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.Status == "" {
		in.Status = entity.StatusUnpaid
	}
	if in.Direction == "" {
		in.Direction = entity.DirectionPayable
	}

	name := strings.TrimSpace(in.CounterpartyName)
	if name == "" && in.DepositorID != nil {
		d, err := s.Depositors.GetByID(ctx, userID, *in.DepositorID)
		if err != nil {
			return nil, err
		}
		name = d.DisplayName
	}

	if in.Installments > 1 {
		base := billing.InstallmentBase{
			CounterpartyName: name,
			DepositorID:      in.DepositorID,
			Category:         in.Category,
			CategoryID:       in.CategoryID,
			Direction:        in.Direction,
			Status:           in.Status,
			Notes:            in.Notes,
			InvoiceNumber:    in.InvoiceNumber,
		}
		expanded, err := billing.ExpandInstallments(base, in.Installments, in.Amount, in.DueDate)
		if err != nil {
			return nil, err
		}
		batch := make([]*entity.Bill, len(expanded))
		for i := range expanded {
			expanded[i].UserID = userID
			batch[i] = &expanded[i]
		}
		if err := s.Repo.CreateBatch(ctx, batch); err != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("installment batch create failed")
			return nil, err
		}
		for i := range expanded {
			s.indexBill(ctx, &expanded[i])
		}
		return expanded, nil
	}

	b := &entity.Bill{
		UserID:           userID,
		CounterpartyName: name,
		DepositorID:      in.DepositorID,
		Amount:           in.Amount,
		DueDate:          in.DueDate,
		Category:         in.Category,
		CategoryID:       in.CategoryID,
		Status:           in.Status,
		Direction:        in.Direction,
		Notes:            in.Notes,
		InvoiceNumber:    in.InvoiceNumber,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("bill create failed")
		return nil, err
	}
	s.indexBill(ctx, b)
	return []entity.Bill{*b}, nil
}

// UpdateBillInput updates only the fields that are set.
type UpdateBillInput struct {
	CounterpartyName *string
	DepositorID      *string
	Amount           *decimal.Decimal
	DueDate          *time.Time
	PaymentDate      *time.Time
	Category         *string
	CategoryID       *string
	Status           *entity.Status
	Notes            *string
	InvoiceNumber    *string
}

// Update merges the changed fields into the stored bill. A status change
// back to unpaid clears the payment date.
func (s *BillService) Update(ctx context.Context, userID, id string, in UpdateBillInput) (*entity.Bill, error) {
	b, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}

	if in.CounterpartyName != nil {
		b.CounterpartyName = *in.CounterpartyName
	}
	if in.DepositorID != nil {
		b.DepositorID = in.DepositorID
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		b.Amount = *in.Amount
	}
	if in.DueDate != nil {
		b.DueDate = *in.DueDate
	}
	if in.PaymentDate != nil {
		b.PaymentDate = in.PaymentDate
	}
	if in.Status != nil {
		b.Status = *in.Status
		if *in.Status == entity.StatusUnpaid {
			b.PaymentDate = nil
		}
	}
	if in.Category != nil {
		b.Category = *in.Category
	}
	if in.CategoryID != nil {
		b.CategoryID = in.CategoryID
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	if in.InvoiceNumber != nil {
		b.InvoiceNumber = *in.InvoiceNumber
	}

	if err := s.Repo.Update(ctx, b); err != nil {
		s.Logger.WithError(err).WithField("bill_id", id).Error("bill update failed")
		return nil, err
	}
	s.indexBill(ctx, b)
	return b, nil
}

// MarkPaid settles a bill, stamping today as the payment date. Calling it
// on an already-paid bill is a no-op, not an error.
func (s *BillService) MarkPaid(ctx context.Context, userID, id string) (*entity.Bill, error) {
	b, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	if b.IsPaid() {
		return b, nil
	}
	today := s.Now()
	b.Status = entity.StatusPaid
	b.PaymentDate = &today
	if err := s.Repo.Update(ctx, b); err != nil {
		s.Logger.WithError(err).WithField("bill_id", id).Error("mark paid failed")
		return nil, err
	}
	s.indexBill(ctx, b)
	return b, nil
}

// Delete removes a bill permanently.
func (s *BillService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBillNotFound
		}
		s.Logger.WithError(err).WithField("bill_id", id).Error("bill delete failed")
		return err
	}
	s.removeBillIndex(ctx, id)
	return nil
}

// List fetches the user's bills and applies the filter. The receivables
// view re-sorts by creation time descending; that re-sort belongs to this
// caller, not to the filter engine.
func (s *BillService) List(ctx context.Context, userID string, f billing.Filter) ([]entity.Bill, error) {
	bills, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := f.Apply(bills)
	if f.Direction == entity.DirectionReceivable {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

// Get returns a single bill with its derived display status.
func (s *BillService) Get(ctx context.Context, userID, id string) (*entity.Bill, billing.DisplayStatus, error) {
	b, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrBillNotFound
		}
		return nil, "", err
	}
	return b, billing.DeriveStatus(*b, s.Now()), nil
}

// Summary aggregates the full unfiltered collection.
type Summary struct {
	TotalDue  decimal.Decimal
	TotalPaid decimal.Decimal
	Overdue   []entity.Bill
	DueSoon   []entity.Bill
}

func (s *BillService) Summary(ctx context.Context, userID string) (*Summary, error) {
	bills, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	return &Summary{
		TotalDue:  billing.TotalDue(bills),
		TotalPaid: billing.TotalPaid(bills),
		Overdue:   billing.OverdueBills(bills, now),
		DueSoon:   billing.DueSoonBills(bills, now),
	}, nil
}

func (s *BillService) indexBill(ctx context.Context, b *entity.Bill) {
	if s.ES == nil || s.ESBillsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":                b.ID,
		"user_id":           b.UserID,
		"counterparty_name": b.CounterpartyName,
		"category":          b.Category,
		"status":            string(b.Status),
		"direction":         string(b.Direction),
		"notes":             b.Notes,
		"invoice_number":    b.InvoiceNumber,
		"amount":            b.Amount.StringFixed(2),
		"due_date":          b.DueDate.Format("2006-01-02"),
		"updated_at":        b.UpdatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESBillsIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("bill_id", b.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("bill_id", b.ID).Warn("es index response error")
	}
}

func (s *BillService) removeBillIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESBillsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESBillsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("bill_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match query over the indexed bill text fields,
// scoped to the requesting user.
func (s *BillService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESBillsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"counterparty_name^2", "notes", "invoice_number"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESBillsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
