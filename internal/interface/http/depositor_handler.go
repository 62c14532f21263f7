package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/application"
	"github.com/contasclaras/api/internal/domain/entity"
	"github.com/contasclaras/api/pkg/response"
	"github.com/contasclaras/api/pkg/validation"
)

type DepositorHandler struct {
	Svc    *application.DepositorService
	Logger *logrus.Logger
}

func NewDepositorHandler(svc *application.DepositorService, logger *logrus.Logger) *DepositorHandler {
	return &DepositorHandler{Svc: svc, Logger: logger}
}

type depositorRequest struct {
	DisplayName  string `json:"display_name" binding:"required,min=3"`
	CEP          string `json:"cep" binding:"omitempty,cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state" binding:"omitempty,len=2"`
	CPF          string `json:"cpf"`
	CNPJ         string `json:"cnpj"`
}

func (r depositorRequest) input() application.DepositorInput {
	return application.DepositorInput{
		DisplayName:  r.DisplayName,
		CEP:          r.CEP,
		Street:       r.Street,
		Number:       r.Number,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
		CPF:          r.CPF,
		CNPJ:         r.CNPJ,
	}
}

func depositorJSON(d entity.Depositor) gin.H {
	return gin.H{
		"id":           d.ID,
		"display_name": d.DisplayName,
		"cep":          d.CEP,
		"street":       d.Street,
		"number":       d.Number,
		"neighborhood": d.Neighborhood,
		"city":         d.City,
		"state":        d.State,
		"cpf":          d.CPF,
		"cnpj":         d.CNPJ,
		"created_at":   d.CreatedAt,
		"updated_at":   d.UpdatedAt,
	}
}

func (h *DepositorHandler) depositorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrDepositorNotFound):
		response.Error[any](c, http.StatusNotFound, "depositor not found", nil)
	case errors.Is(err, application.ErrDepositorName):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "operation failed", nil)
	}
}

func (h *DepositorHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req depositorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), uid, req.input())
	if err != nil {
		h.depositorError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, depositorJSON(*d), "depositor created", nil)
}

func (h *DepositorHandler) List(c *gin.Context) {
	uid := c.GetString("userID")
	deps, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list depositors", nil)
		return
	}
	out := make([]gin.H, 0, len(deps))
	for _, d := range deps {
		out = append(out, depositorJSON(d))
	}
	response.Success(c, http.StatusOK, out, "depositors", map[string]any{"count": len(out)})
}

func (h *DepositorHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	d, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.depositorError(c, err)
		return
	}
	response.Success(c, http.StatusOK, depositorJSON(*d), "depositor", nil)
}

func (h *DepositorHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")
	var req depositorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), req.input())
	if err != nil {
		h.depositorError(c, err)
		return
	}
	response.Success(c, http.StatusOK, depositorJSON(*d), "depositor updated", nil)
}

func (h *DepositorHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		h.depositorError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "depositor deleted", nil)
}
