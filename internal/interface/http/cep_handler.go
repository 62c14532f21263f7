package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/infrastructure/cep"
	"github.com/contasclaras/api/pkg/response"
)

type CEPHandler struct {
	Client *cep.Client
	Logger *logrus.Logger
}

func NewCEPHandler(client *cep.Client, logger *logrus.Logger) *CEPHandler {
	return &CEPHandler{Client: client, Logger: logger}
}

// Lookup GET /api/cep/:code
func (h *CEPHandler) Lookup(c *gin.Context) {
	addr, err := h.Client.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, cep.ErrInvalidCEP):
			response.Error[any](c, http.StatusBadRequest, "cep must be 8 digits", nil)
		case errors.Is(err, cep.ErrCEPNotFound):
			response.Error[any](c, http.StatusNotFound, "cep not found", nil)
		default:
			h.Logger.WithError(err).Warn("cep lookup failed")
			response.Error[any](c, http.StatusBadGateway, "cep lookup failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, addr, "address", nil)
}
