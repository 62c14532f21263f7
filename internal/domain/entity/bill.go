package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the payment state of a bill.
type Status string

const (
	StatusPaid   Status = "paid"
	StatusUnpaid Status = "unpaid"
)

// Direction discriminates payables (contas a pagar) from receivables
// (contas a receber). It is a field on Bill, not a separate entity.
type Direction string

const (
	DirectionPayable    Direction = "payable"
	DirectionReceivable Direction = "receivable"
)

// Bill is a single payable or receivable record. CounterpartyName is a
// snapshot taken at creation time; it survives deletion of the referenced
// depositor.
type Bill struct {
	ID               string
	UserID           string
	CounterpartyName string
	DepositorID      *string
	Amount           decimal.Decimal
	DueDate          time.Time
	PaymentDate      *time.Time
	Category         string
	CategoryID       *string
	Status           Status
	Direction        Direction
	Notes            string
	InvoiceNumber    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsPaid reports whether the bill has been settled.
func (b Bill) IsPaid() bool { return b.Status == StatusPaid }
