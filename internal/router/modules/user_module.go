package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/lcqueiroz/users-api/internal/domain/repository"
	handlers "github.com/lcqueiroz/users-api/internal/interface/http"
	"github.com/lcqueiroz/users-api/internal/interface/middleware"
	"github.com/lcqueiroz/users-api/pkg/token"
)

// UserModule registers user routes.
// Public: POST /api/users (register), GET /api/users?email=
// Protected: GET /api/users/me, PATCH /api/users, DELETE /api/users
type UserModule struct {
	Handler *handlers.UserHandler
	Repo    repository.UserRepository
	Tokens  *token.Service
}

func NewUserModule(h *handlers.UserHandler, repo repository.UserRepository, tokens *token.Service) *UserModule {
	return &UserModule{Handler: h, Repo: repo, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Create)
	rg.GET("/users", m.Handler.GetByEmail)

	auth := rg.Group("/")
	auth.Use(middleware.CurrentUser(m.Repo, m.Tokens))
	{
		auth.GET("/users/me", m.Handler.Me)
		auth.PATCH("/users", m.Handler.Patch)
		auth.DELETE("/users", m.Handler.Delete)
	}
}
