package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	"github.com/lcqueiroz/users-api/pkg/response"
	"github.com/lcqueiroz/users-api/pkg/token"
)

// CtxUserKey is the Gin context key under which the resolved user is stored.
const CtxUserKey = "currentUser"

const bearerPrefix = "Bearer "

// CurrentUser resolves the caller from the access_token cookie or the
// Authorization header, verifies the token as access-typed, and loads the
// user it names. Every failure mode aborts with the same 401; the pipeline
// is stateless and re-runs per request.
func CurrentUser(repo repository.UserRepository, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortUnauthenticated(c)
			return
		}

		claims, err := tokens.Verify(raw, token.TypeAccess)
		if err != nil {
			abortUnauthenticated(c)
			return
		}
		if claims.Subject == "" {
			abortUnauthenticated(c)
			return
		}

		u, err := repo.FindByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// bearerToken reads the cookie first, then the Authorization header. The
// cookie value may itself be "Bearer "-prefixed.
func bearerToken(c *gin.Context) string {
	if v, err := c.Cookie("access_token"); err == nil && v != "" {
		return strings.TrimPrefix(v, bearerPrefix)
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimPrefix(h, bearerPrefix)
	}
	return ""
}

func abortUnauthenticated(c *gin.Context) {
	resp := response.Error[any](c, http.StatusUnauthorized, "Not authenticated", nil)
	c.AbortWithStatusJSON(resp.Status, resp)
}

// UserFromContext returns the user stashed by CurrentUser.
func UserFromContext(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}
