package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/application"
	"github.com/contasclaras/api/internal/domain/billing"
	"github.com/contasclaras/api/internal/domain/entity"
	"github.com/contasclaras/api/pkg/response"
	"github.com/contasclaras/api/pkg/validation"
)

const dateLayout = "2006-01-02"

type BillHandler struct {
	Svc    *application.BillService
	Logger *logrus.Logger
}

func NewBillHandler(svc *application.BillService, logger *logrus.Logger) *BillHandler {
	return &BillHandler{Svc: svc, Logger: logger}
}

type createBillRequest struct {
	CounterpartyName string  `json:"counterparty_name"`
	DepositorID      *string `json:"depositor_id" binding:"omitempty,uuid"`
	Amount           string  `json:"amount" binding:"required"`
	DueDate          string  `json:"due_date" binding:"required,datetime=2006-01-02"`
	Category         string  `json:"category"`
	CategoryID       *string `json:"category_id" binding:"omitempty,uuid"`
	Direction        string  `json:"direction" binding:"omitempty,oneof=payable receivable"`
	Status           string  `json:"status" binding:"omitempty,oneof=paid unpaid"`
	Notes            string  `json:"notes"`
	InvoiceNumber    string  `json:"invoice_number"`
	Installments     int     `json:"installments" binding:"omitempty,min=1,max=48"`
}

type updateBillRequest struct {
	CounterpartyName *string `json:"counterparty_name"`
	DepositorID      *string `json:"depositor_id" binding:"omitempty,uuid"`
	Amount           *string `json:"amount"`
	DueDate          *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentDate      *string `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Category         *string `json:"category"`
	CategoryID       *string `json:"category_id" binding:"omitempty,uuid"`
	Status           *string `json:"status" binding:"omitempty,oneof=paid unpaid"`
	Notes            *string `json:"notes"`
	InvoiceNumber    *string `json:"invoice_number"`
}

func billJSON(b entity.Bill, status billing.DisplayStatus) gin.H {
	out := gin.H{
		"id":                b.ID,
		"counterparty_name": b.CounterpartyName,
		"depositor_id":      b.DepositorID,
		"amount":            b.Amount.StringFixed(2),
		"due_date":          b.DueDate.Format(dateLayout),
		"category":          b.Category,
		"category_id":       b.CategoryID,
		"status":            b.Status,
		"direction":         b.Direction,
		"notes":             b.Notes,
		"invoice_number":    b.InvoiceNumber,
		"created_at":        b.CreatedAt,
		"updated_at":        b.UpdatedAt,
	}
	if b.PaymentDate != nil {
		out["payment_date"] = b.PaymentDate.Format(dateLayout)
	}
	if status != "" {
		out["display_status"] = status
	}
	return out
}

func (h *BillHandler) billError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrBillNotFound):
		response.Error[any](c, http.StatusNotFound, "bill not found", nil)
	case errors.Is(err, application.ErrInvalidAmount):
		response.Error[any](c, http.StatusBadRequest, "amount must be greater than zero", nil)
	case errors.Is(err, billing.ErrInvalidInstallmentCount),
		errors.Is(err, billing.ErrInvalidInstallmentTotal):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "operation failed", nil)
	}
}

// parseFilter builds a billing.Filter from list query parameters.
func parseFilter(c *gin.Context) (billing.Filter, error) {
	f := billing.Filter{
		Status:    c.DefaultQuery("status", billing.FilterAll),
		Category:  c.DefaultQuery("category", billing.FilterAll),
		Search:    c.Query("search"),
		Direction: entity.Direction(c.Query("direction")),
	}
	from, to := c.Query("paid_from"), c.Query("paid_to")
	if from != "" && to != "" {
		start, err := time.Parse(dateLayout, from)
		if err != nil {
			return f, err
		}
		end, err := time.Parse(dateLayout, to)
		if err != nil {
			return f, err
		}
		f.PaidFrom = &start
		f.PaidTo = &end
	}
	return f, nil
}

func (h *BillHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"amount": "must be a valid number"})
		return
	}
	due, _ := time.Parse(dateLayout, req.DueDate)

	bills, err := h.Svc.Create(c.Request.Context(), uid, application.CreateBillInput{
		CounterpartyName: req.CounterpartyName,
		DepositorID:      req.DepositorID,
		Amount:           amount,
		DueDate:          due,
		Category:         req.Category,
		CategoryID:       req.CategoryID,
		Direction:        entity.Direction(req.Direction),
		Status:           entity.Status(req.Status),
		Notes:            req.Notes,
		InvoiceNumber:    req.InvoiceNumber,
		Installments:     req.Installments,
	})
	if err != nil {
		h.billError(c, err)
		return
	}
	out := make([]gin.H, 0, len(bills))
	for _, b := range bills {
		out = append(out, billJSON(b, ""))
	}
	response.Success(c, http.StatusCreated, out, "bills created", map[string]any{"count": len(out)})
}

func (h *BillHandler) List(c *gin.Context) {
	uid := c.GetString("userID")
	f, err := parseFilter(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid date range", nil)
		return
	}
	bills, err := h.Svc.List(c.Request.Context(), uid, f)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list bills", nil)
		return
	}
	now := time.Now()
	out := make([]gin.H, 0, len(bills))
	for _, b := range bills {
		out = append(out, billJSON(b, billing.DeriveStatus(b, now)))
	}
	response.Success(c, http.StatusOK, out, "bills", map[string]any{"count": len(out)})
}

func (h *BillHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	b, status, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.billError(c, err)
		return
	}
	response.Success(c, http.StatusOK, billJSON(*b, status), "bill", nil)
}

func (h *BillHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateBillInput{
		CounterpartyName: req.CounterpartyName,
		DepositorID:      req.DepositorID,
		Category:         req.Category,
		CategoryID:       req.CategoryID,
		Notes:            req.Notes,
		InvoiceNumber:    req.InvoiceNumber,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"amount": "must be a valid number"})
			return
		}
		in.Amount = &amount
	}
	if req.DueDate != nil {
		due, _ := time.Parse(dateLayout, *req.DueDate)
		in.DueDate = &due
	}
	if req.PaymentDate != nil {
		paid, _ := time.Parse(dateLayout, *req.PaymentDate)
		in.PaymentDate = &paid
	}
	if req.Status != nil {
		st := entity.Status(*req.Status)
		in.Status = &st
	}

	b, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), in)
	if err != nil {
		h.billError(c, err)
		return
	}
	response.Success(c, http.StatusOK, billJSON(*b, ""), "bill updated", nil)
}

func (h *BillHandler) MarkPaid(c *gin.Context) {
	uid := c.GetString("userID")
	b, err := h.Svc.MarkPaid(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.billError(c, err)
		return
	}
	response.Success(c, http.StatusOK, billJSON(*b, billing.Paid), "bill marked as paid", nil)
}

func (h *BillHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		h.billError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "bill deleted", nil)
}

func (h *BillHandler) Summary(c *gin.Context) {
	uid := c.GetString("userID")
	sum, err := h.Svc.Summary(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to build summary", nil)
		return
	}
	overdue := make([]gin.H, 0, len(sum.Overdue))
	for _, b := range sum.Overdue {
		overdue = append(overdue, billJSON(b, billing.Overdue))
	}
	dueSoon := make([]gin.H, 0, len(sum.DueSoon))
	for _, b := range sum.DueSoon {
		dueSoon = append(dueSoon, billJSON(b, billing.DueSoon))
	}
	response.Success(c, http.StatusOK, gin.H{
		"total_due":  sum.TotalDue.StringFixed(2),
		"total_paid": sum.TotalPaid.StringFixed(2),
		"overdue":    overdue,
		"due_soon":   dueSoon,
	}, "summary", nil)
}

func (h *BillHandler) Search(c *gin.Context) {
	uid := c.GetString("userID")
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), uid, q, size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
