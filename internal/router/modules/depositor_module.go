package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/contasclaras/api/internal/container"
	handlers "github.com/contasclaras/api/internal/interface/http"
	"github.com/contasclaras/api/internal/interface/middleware"
	"github.com/contasclaras/api/pkg/helpers"
)

// DepositorModule registers /api/depositors.

type DepositorModule struct {
	Handler *handlers.DepositorHandler
	JWT     *helpers.JWTManager
}

func NewDepositors(h *handlers.DepositorHandler, jwt *helpers.JWTManager) *DepositorModule {
	return &DepositorModule{Handler: h, JWT: jwt}
}

func (m *DepositorModule) Register(rg *gin.RouterGroup) {
	deps := rg.Group("/depositors")
	deps.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		deps.GET("", m.Handler.List)
		deps.POST("", m.Handler.Create)
		deps.GET("/:id", m.Handler.Get)
		deps.PUT("/:id", m.Handler.Update)
		deps.DELETE("/:id", m.Handler.Delete)
	}
}
