package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/interfaces/http/middleware"
	"copygen-ai-api/pkg/utils"
)

func newAuthRouter(repo *fakeUserRepo) *gin.Engine {
	h := NewAuthHandler(middleware.AuthConfig{Secret: "test-secret", Issuer: "copygen-test"}, repo)
	r := gin.New()
	r.POST("/v1/auth/register", h.Register)
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/refresh", h.RefreshToken)
	r.POST("/v1/auth/confirm", h.ConfirmEmail)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, confirmed bool) *entity.User {
	t.Helper()
	user := entity.NewUser(email, "Tester")
	require.NoError(t, user.SetPassword(password))
	if confirmed {
		now := time.Now()
		user.EmailConfirmedAt = &now
	}
	require.NoError(t, repo.Create(t.Context(), user))
	return user
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates user with free plan and no session", func(t *testing.T) {
		repo := newFakeUserRepo()
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/v1/auth/register", gin.H{
			"email":    "new@example.com",
			"password": "secret123",
			"name":     "New User",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"FREE"`)
		// 邮箱未确认，注册不发放令牌
		assert.NotContains(t, w.Body.String(), "access_token")
		assert.Empty(t, w.Result().Cookies())

		created, err := repo.GetByEmail(t.Context(), "new@example.com")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, entity.PlanFree, created.Plan)
		assert.False(t, created.IsConfirmed())
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "dup@example.com", "secret123", true)
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/v1/auth/register", gin.H{
			"email":    "dup@example.com",
			"password": "secret123",
			"name":     "Dup",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already registered")
	})

	t.Run("rejects short password", func(t *testing.T) {
		repo := newFakeUserRepo()
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/v1/auth/register", gin.H{
			"email":    "a@example.com",
			"password": "short",
			"name":     "A",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "ok@example.com", "secret123", true)
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/v1/auth/login", gin.H{
			"email":    "ok@example.com",
			"password": "secret123",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"access_token"`)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "ok@example.com", "secret123", true)
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/v1/auth/login", gin.H{
			"email":    "ok@example.com",
			"password": "wrong-pass",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("unknown email gets same response as wrong password", func(t *testing.T) {
		repo := newFakeUserRepo()
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/v1/auth/login", gin.H{
			"email":    "nobody@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("unconfirmed email is rejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "pending@example.com", "secret123", false)
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/v1/auth/login", gin.H{
			"email":    "pending@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "email not confirmed")
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	mintRefresh := func(t *testing.T, userID, plan string) string {
		t.Helper()
		jm := utils.NewJWTManager("test-secret", "copygen-test")
		token, err := jm.GenerateToken(userID, plan, "refresh", time.Hour)
		require.NoError(t, err)
		return token
	}
	postRefresh := func(r *gin.Engine, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: "refresh_token", Value: token})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("confirmed user gets a new access token", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := seedUser(t, repo, "ok@example.com", "secret123", true)
		r := newAuthRouter(repo)

		w := postRefresh(r, mintRefresh(t, user.ID, string(user.Plan)))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("unconfirmed user cannot refresh", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := seedUser(t, repo, "pending@example.com", "secret123", false)
		r := newAuthRouter(repo)

		w := postRefresh(r, mintRefresh(t, user.ID, string(user.Plan)))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "email not confirmed")
	})

	t.Run("missing cookie", func(t *testing.T) {
		repo := newFakeUserRepo()
		r := newAuthRouter(repo)

		w := postRefresh(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_ConfirmEmail(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "pending@example.com", "secret123", false)
	r := newAuthRouter(repo)

	w := postJSON(t, r, "/v1/auth/confirm", gin.H{"email": "pending@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	confirmed, err := repo.GetByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.True(t, confirmed.IsConfirmed())

	// 确认后可以登录
	w = postJSON(t, r, "/v1/auth/login", gin.H{
		"email":    "pending@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
