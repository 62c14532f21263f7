package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/application"
	"github.com/contasclaras/api/pkg/response"
	"github.com/contasclaras/api/pkg/validation"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), uid, req.Name)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to create category", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":         cat.ID,
		"name":       cat.Name,
		"created_at": cat.CreatedAt,
	}, "category created", nil)
}

func (h *CategoryHandler) List(c *gin.Context) {
	uid := c.GetString("userID")
	cats, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list categories", nil)
		return
	}
	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		out = append(out, gin.H{
			"id":         cat.ID,
			"name":       cat.Name,
			"created_at": cat.CreatedAt,
			"updated_at": cat.UpdatedAt,
		})
	}
	response.Success(c, http.StatusOK, out, "categories", map[string]any{"count": len(out)})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Error[any](c, http.StatusNotFound, "category not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to update category", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         cat.ID,
		"name":       cat.Name,
		"updated_at": cat.UpdatedAt,
	}, "category updated", nil)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrCategoryInUse):
			response.Error[any](c, http.StatusConflict, "category is referenced by existing bills", nil)
		case errors.Is(err, application.ErrCategoryNotFound):
			response.Error[any](c, http.StatusNotFound, "category not found", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "failed to delete category", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "category deleted", nil)
}
