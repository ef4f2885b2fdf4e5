package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lcqueiroz/users-api/internal/application"
	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	"github.com/lcqueiroz/users-api/internal/interface/middleware"
	"github.com/lcqueiroz/users-api/pkg/hasher"
	"github.com/lcqueiroz/users-api/pkg/helpers"
	"github.com/lcqueiroz/users-api/pkg/token"
	"github.com/lcqueiroz/users-api/pkg/validation"
)

// memoryRepo is an in-memory UserRepository keyed by normalized email.
type memoryRepo struct {
	users  map[string]*entity.User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]*entity.User{}, nextID: 1}
}

func (m *memoryRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memoryRepo) Insert(_ context.Context, u *entity.User) error {
	if _, ok := m.users[u.Email.String()]; ok {
		return repository.ErrEmailAlreadyRegistered
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.Email.String()] = u
	return nil
}

func (m *memoryRepo) Update(_ context.Context, u *entity.User) error {
	for email, existing := range m.users {
		if existing.ID == u.ID {
			delete(m.users, email)
			m.users[u.Email.String()] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memoryRepo) Delete(_ context.Context, u *entity.User) error {
	for email, existing := range m.users {
		if existing.ID == u.ID {
			delete(m.users, email)
			return nil
		}
	}
	return repository.ErrNotFound
}

// testEnv wires real services over the in-memory repository and registers
// the same routes the router modules do.
type testEnv struct {
	repo   *memoryRepo
	tokens *token.Service
	hasher *hasher.Argon2
	engine *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	repo := newMemoryRepo()
	h := hasher.NewArgon2(hasher.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	tokens, err := token.NewService("test-secret", "HS256", 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	cookies := helpers.NewCookie("localhost", false, "lax")
	authSvc := application.NewAuthService(repo, tokens, h, nil)
	userSvc := application.NewUserService(repo, h, nil)
	authH := NewAuthHandler(authSvc, cookies, nil)
	userH := NewUserHandler(userSvc, cookies, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/refresh", authH.Refresh)
	api.POST("/auth/logout", authH.Logout)
	api.POST("/users", userH.Create)
	api.GET("/users", userH.GetByEmail)

	protected := api.Group("")
	protected.Use(middleware.CurrentUser(repo, tokens))
	protected.GET("/users/me", userH.Me)
	protected.PATCH("/users", userH.Patch)
	protected.DELETE("/users", userH.Delete)

	return &testEnv{repo: repo, tokens: tokens, hasher: h, engine: r}
}

func (e *testEnv) seed(t *testing.T) *entity.User {
	t.Helper()
	u, err := entity.NewUser("Luiza", "luiza@example.com", "Teste@123", e.hasher)
	require.NoError(t, err)
	require.NoError(t, e.repo.Insert(context.Background(), u))
	return u
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) accessCookie(t *testing.T, u *entity.User) *http.Cookie {
	t.Helper()
	access, _, err := e.tokens.IssueAccess(token.IssueInput{Subject: u.Email.String(), ID: u.ID, Name: u.Name})
	require.NoError(t, err)
	return &http.Cookie{Name: "access_token", Value: "Bearer " + access}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func cookieByName(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
