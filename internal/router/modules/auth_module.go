package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contasclaras/api/internal/container"
	handlers "github.com/contasclaras/api/internal/interface/http"
	"github.com/contasclaras/api/internal/interface/middleware"
	"github.com/contasclaras/api/pkg/helpers"
)

// AuthModule wires identity HTTP handlers and JWT middleware into routes
// Public: POST /api/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/profile, PUT /api/profile
// Admin only: GET /api/users/:id

type AuthModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewAuth(h *handlers.UserHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.GET("/users/:id", middleware.RequireAdmin(), m.Handler.GetUser)
	}
}
