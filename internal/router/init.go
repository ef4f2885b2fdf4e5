package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lcqueiroz/users-api/config"
	"github.com/lcqueiroz/users-api/internal/application"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	pginfra "github.com/lcqueiroz/users-api/internal/infrastructure/postgres"
	"github.com/lcqueiroz/users-api/internal/infrastructure/rediscache"
	handlers "github.com/lcqueiroz/users-api/internal/interface/http"
	"github.com/lcqueiroz/users-api/internal/router/modules"
	"github.com/lcqueiroz/users-api/pkg/hasher"
	"github.com/lcqueiroz/users-api/pkg/helpers"
	"github.com/lcqueiroz/users-api/pkg/token"
)

// Deps carries the process-wide components built once in main. Everything is
// passed explicitly; no package-level singletons.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Tokens *token.Service
	Hasher *hasher.Argon2
}

// InitModules wires the repository chain, services, and handlers, then
// registers all feature modules on the registry.
func InitModules(r *Registry, d Deps) {
	var repo repository.UserRepository = pginfra.NewUserRepository(d.Pool)
	if d.Redis != nil {
		repo = rediscache.NewUserCache(repo, d.Redis, d.Cfg.UserCacheTTL, d.Logger)
	}

	authSvc := application.NewAuthService(repo, d.Tokens, d.Hasher, d.Logger)
	userSvc := application.NewUserService(repo, d.Hasher, d.Logger)

	cookies := helpers.NewCookie(d.Cfg.CookieDomain, d.Cfg.AuthCookieSecure, d.Cfg.AuthCookieSameSite)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, cookies, d.Logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, cookies, d.Logger), repo, d.Tokens))
}
