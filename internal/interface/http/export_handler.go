package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/application"
	"github.com/contasclaras/api/pkg/response"
)

type ExportHandler struct {
	Svc    *application.ExportService
	Logger *logrus.Logger
}

func NewExportHandler(svc *application.ExportService, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{Svc: svc, Logger: logger}
}

// Request POST /api/exports — accepts the same filter query parameters as
// the bill list; the worker renders the matching bills to PDF.
func (h *ExportHandler) Request(c *gin.Context) {
	uid := c.GetString("userID")
	f, err := parseFilter(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid date range", nil)
		return
	}
	e, err := h.Svc.Request(c.Request.Context(), uid, f)
	if err != nil {
		if errors.Is(err, application.ErrExportUnavailable) {
			response.Error[any](c, http.StatusServiceUnavailable, "export queue unavailable", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to request export", nil)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{
		"id":     e.ID,
		"status": e.Status,
	}, "export requested", nil)
}

// Get GET /api/exports/:id — poll export status; object_url is set once done.
func (h *ExportHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	e, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrExportNotFound) {
			response.Error[any](c, http.StatusNotFound, "export not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load export", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         e.ID,
		"status":     e.Status,
		"object_url": e.ObjectURL,
		"error":      e.Error,
		"created_at": e.CreatedAt,
		"updated_at": e.UpdatedAt,
	}, "export", nil)
}
