package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copygen-ai-api/internal/application/quota"
	"copygen-ai-api/internal/domain/entity"
)

func newContentRouter(contentRepo *fakeContentRepo, userRepo *fakeUserRepo, userID string, plan entity.PlanType) *gin.Engine {
	h := NewContentHandler(contentRepo, userRepo, fakeTransactor{}, quota.NewUsageQuotaChecker(userRepo), nil)
	r := gin.New()
	r.Use(withUser(userID, plan))
	r.POST("/v1/contents", h.CreateContent)
	r.GET("/v1/contents", h.ListContents)
	r.GET("/v1/contents/:cid", h.GetContent)
	r.PUT("/v1/contents/:cid", h.UpdateContent)
	r.DELETE("/v1/contents/:cid", h.DeleteContent)
	return r
}

func seedContents(t *testing.T, repo *fakeContentRepo, userID string, n int) []*entity.Content {
	t.Helper()
	items := make([]*entity.Content, 0, n)
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		c := entity.NewContent(userID, entity.ContentTypeBlog, fmt.Sprintf("Post %d", i), "body")
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(t.Context(), c))
		items = append(items, c)
	}
	return items
}

func TestContentHandler_CreateContent(t *testing.T) {
	t.Run("saves content and consumes quota", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		user := entity.NewUser("u@example.com", "U")
		require.NoError(t, userRepo.Create(t.Context(), user))

		contentRepo := newFakeContentRepo()
		r := newContentRouter(contentRepo, userRepo, user.ID, entity.PlanFree)

		body, _ := json.Marshal(gin.H{
			"type":     "blog",
			"title":    "My Post",
			"content":  "Generated text",
			"keywords": []string{"go", "testing"},
			"metadata": gin.H{"template_id": "blog-basic", "provider": "groq"},
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/contents", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		count, err := contentRepo.CountByUser(t.Context(), user.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		after, err := userRepo.GetByID(t.Context(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, after.UsageCurrent)
	})

	t.Run("rejects save when quota exhausted", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		user := entity.NewUser("full@example.com", "U")
		user.UsageCurrent = 10
		require.NoError(t, userRepo.Create(t.Context(), user))

		contentRepo := newFakeContentRepo()
		r := newContentRouter(contentRepo, userRepo, user.ID, entity.PlanFree)

		body, _ := json.Marshal(gin.H{"type": "blog", "title": "x", "content": "y"})
		req := httptest.NewRequest(http.MethodPost, "/v1/contents", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		count, err := contentRepo.CountByUser(t.Context(), user.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		user := entity.NewUser("u@example.com", "U")
		require.NoError(t, userRepo.Create(t.Context(), user))
		r := newContentRouter(newFakeContentRepo(), userRepo, user.ID, entity.PlanFree)

		body, _ := json.Marshal(gin.H{"type": "podcast", "title": "x", "content": "y"})
		req := httptest.NewRequest(http.MethodPost, "/v1/contents", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestContentHandler_ListContents(t *testing.T) {
	t.Run("free plan sees only recent history", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		contentRepo := newFakeContentRepo()
		seedContents(t, contentRepo, "user-1", 15)
		r := newContentRouter(contentRepo, userRepo, "user-1", entity.PlanFree)

		req := httptest.NewRequest(http.MethodGet, "/v1/contents", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Items []struct {
					Title string `json:"title"`
				} `json:"items"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Items, 10)
		// 倒序，最新的在最前
		assert.Equal(t, "Post 14", resp.Data.Items[0].Title)
		assert.Equal(t, "Post 5", resp.Data.Items[9].Title)
	})

	t.Run("premium plan sees full first page", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		contentRepo := newFakeContentRepo()
		seedContents(t, contentRepo, "user-1", 15)
		r := newContentRouter(contentRepo, userRepo, "user-1", entity.PlanPremium)

		req := httptest.NewRequest(http.MethodGet, "/v1/contents", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Items []json.RawMessage `json:"items"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data.Items, 15)
	})

	t.Run("does not leak other users contents", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		contentRepo := newFakeContentRepo()
		seedContents(t, contentRepo, "someone-else", 3)
		r := newContentRouter(contentRepo, userRepo, "user-1", entity.PlanFree)

		req := httptest.NewRequest(http.MethodGet, "/v1/contents", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data struct {
				Items []json.RawMessage `json:"items"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Data.Items)
	})
}

func TestContentHandler_OwnerScope(t *testing.T) {
	userRepo := newFakeUserRepo()
	contentRepo := newFakeContentRepo()
	owned := seedContents(t, contentRepo, "user-1", 1)[0]
	foreign := entity.NewContent("someone-else", entity.ContentTypeEmail, "Theirs", "body")
	require.NoError(t, contentRepo.Create(t.Context(), foreign))

	r := newContentRouter(contentRepo, userRepo, "user-1", entity.PlanFree)

	t.Run("get own content", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/contents/"+owned.ID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign content returns not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/contents/"+foreign.ID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete foreign content is not found and keeps row", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/contents/"+foreign.ID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)

		still, err := contentRepo.GetByID(t.Context(), foreign.ID)
		require.NoError(t, err)
		assert.NotNil(t, still)
	})

	t.Run("update own content", func(t *testing.T) {
		before, err := contentRepo.GetByID(t.Context(), owned.ID)
		require.NoError(t, err)

		body, _ := json.Marshal(gin.H{"title": "Renamed"})
		req := httptest.NewRequest(http.MethodPut, "/v1/contents/"+owned.ID, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Renamed")

		// 只改标题，正文保持不变且 updated_at 前移
		after, err := contentRepo.GetByID(t.Context(), owned.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", after.Title)
		assert.Equal(t, before.Content, after.Content)
		assert.Equal(t, before.Type, after.Type)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	})
}
