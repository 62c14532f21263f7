package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contasclaras/api/internal/container"
	handlers "github.com/contasclaras/api/internal/interface/http"
	"github.com/contasclaras/api/internal/interface/middleware"
	"github.com/contasclaras/api/pkg/helpers"
)

// BillModule registers the bill lifecycle routes under /api/bills.
// All routes require an authenticated session.

type BillModule struct {
	Handler *handlers.BillHandler
	JWT     *helpers.JWTManager
}

func NewBills(h *handlers.BillHandler, jwt *helpers.JWTManager) *BillModule {
	return &BillModule{Handler: h, JWT: jwt}
}

func (m *BillModule) Register(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	bills.Use(middleware.Auth(container.GetRedis(), m.JWT))
	bills.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		bills.GET("", m.Handler.List)
		bills.POST("", m.Handler.Create)
		bills.GET("/summary", m.Handler.Summary)
		bills.GET("/search", m.Handler.Search)
		bills.GET("/:id", m.Handler.Get)
		bills.PUT("/:id", m.Handler.Update)
		bills.POST("/:id/pay", m.Handler.MarkPaid)
		bills.DELETE("/:id", m.Handler.Delete)
	}
}
