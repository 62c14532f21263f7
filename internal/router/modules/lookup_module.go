package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contasclaras/api/internal/container"
	handlers "github.com/contasclaras/api/internal/interface/http"
	"github.com/contasclaras/api/internal/interface/middleware"
	"github.com/contasclaras/api/pkg/helpers"
)

// LookupModule registers the CEP address lookup under /api/cep/:code.
// Rate limited per IP and path since it proxies an external service.

type LookupModule struct {
	Handler *handlers.CEPHandler
	JWT     *helpers.JWTManager
}

func NewLookup(h *handlers.CEPHandler, jwt *helpers.JWTManager) *LookupModule {
	return &LookupModule{Handler: h, JWT: jwt}
}

func (m *LookupModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	cepGroup := rg.Group("/cep")
	cepGroup.Use(middleware.Auth(container.GetRedis(), m.JWT))
	cepGroup.GET("/:code", limiter, m.Handler.Lookup)
}
