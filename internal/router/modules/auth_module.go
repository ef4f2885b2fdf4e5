package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/lcqueiroz/users-api/internal/interface/http"
)

// AuthModule registers the public authentication routes.
// POST /api/auth/login, POST /api/auth/refresh, POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/refresh", m.Handler.Refresh)
	rg.POST("/auth/logout", m.Handler.Logout)
}
