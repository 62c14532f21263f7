package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/contasclaras/api/internal/container"
	handlers "github.com/contasclaras/api/internal/interface/http"
	"github.com/contasclaras/api/internal/interface/middleware"
	"github.com/contasclaras/api/pkg/helpers"
)

// CategoryModule registers /api/categories. Deleting a category that bills
// still reference is rejected by the service with 409.

type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
}

func NewCategories(h *handlers.CategoryHandler, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	cats := rg.Group("/categories")
	cats.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		cats.GET("", m.Handler.List)
		cats.POST("", m.Handler.Create)
		cats.PUT("/:id", m.Handler.Update)
		cats.DELETE("/:id", m.Handler.Delete)
	}
}
