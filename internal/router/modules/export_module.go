package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contasclaras/api/internal/container"
	handlers "github.com/contasclaras/api/internal/interface/http"
	"github.com/contasclaras/api/internal/interface/middleware"
	"github.com/contasclaras/api/pkg/helpers"
)

// ExportModule registers PDF export requests under /api/exports.

type ExportModule struct {
	Handler *handlers.ExportHandler
	JWT     *helpers.JWTManager
}

func NewExports(h *handlers.ExportHandler, jwt *helpers.JWTManager) *ExportModule {
	return &ExportModule{Handler: h, JWT: jwt}
}

func (m *ExportModule) Register(rg *gin.RouterGroup) {
	exports := rg.Group("/exports")
	exports.Use(middleware.Auth(container.GetRedis(), m.JWT))
	exports.Use(middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil))
	{
		exports.POST("", m.Handler.Request)
		exports.GET("/:id", m.Handler.Get)
	}
}
