package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lcqueiroz/users-api/internal/application"
	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	"github.com/lcqueiroz/users-api/internal/domain/valueobject"
	"github.com/lcqueiroz/users-api/internal/interface/middleware"
	"github.com/lcqueiroz/users-api/pkg/helpers"
	"github.com/lcqueiroz/users-api/pkg/response"
	"github.com/lcqueiroz/users-api/pkg/validation"
)

// UserHandler exposes registration, lookup, profile patching, and deletion.
type UserHandler struct {
	Users   *application.UserService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewUserHandler(users *application.UserService, cookies *helpers.CookieManager, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Cookies: cookies, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type patchUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type deleteUserRequest struct {
	Confirmation bool `json:"confirmation"`
}

// Create POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeUserError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, publicUser(u), "user created", nil)
	c.JSON(resp.Status, resp)
}

// GetByEmail GET /api/users?email=...
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Query("email")
	u, err := h.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.writeUserError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, publicUser(u), "user", nil)
	c.JSON(resp.Status, resp)
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "Not authenticated", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, publicUser(u), "profile", nil)
	c.JSON(resp.Status, resp)
}

// Patch PATCH /api/users
func (h *UserHandler) Patch(c *gin.Context) {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "Not authenticated", nil)
		c.JSON(resp.Status, resp)
		return
	}

	var req patchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Users.Patch(c.Request.Context(), u, entity.PatchInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeUserError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, publicUser(u), "profile updated", nil)
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/users
// Requires an explicit confirmation flag; a confirmed delete also clears the
// auth cookies.
func (h *UserHandler) Delete(c *gin.Context) {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "Not authenticated", nil)
		c.JSON(resp.Status, resp)
		return
	}

	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	if !req.Confirmation {
		resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": false}, "Deletion cancelled", nil)
		c.JSON(resp.Status, resp)
		return
	}

	if err := h.Users.Delete(c.Request.Context(), u); err != nil {
		h.writeUserError(c, err)
		return
	}
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "User deleted successfully", nil)
	c.JSON(resp.Status, resp)
}

// writeUserError maps domain failures onto HTTP statuses. Validation errors
// carry a per-field detail map.
func (h *UserHandler) writeUserError(c *gin.Context, err error) {
	var verr *valueobject.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := response.Error[any](c, http.StatusBadRequest, verr.Message, map[string]string{verr.Field: verr.Message})
		c.JSON(resp.Status, resp)
	case errors.Is(err, repository.ErrEmailAlreadyRegistered):
		resp := response.Error[any](c, http.StatusConflict, "Email already registered.", nil)
		c.JSON(resp.Status, resp)
	case errors.Is(err, repository.ErrNotFound):
		resp := response.Error[any](c, http.StatusNotFound, "user not found", nil)
		c.JSON(resp.Status, resp)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("user operation failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
	}
}

func publicUser(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email.String(),
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
