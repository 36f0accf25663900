package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanRouter() *gin.Engine {
	h := NewPlanHandler()
	r := gin.New()
	r.GET("/v1/plans", h.ListPlans)
	r.GET("/v1/templates/:type", h.ListTemplates)
	return r
}

func TestPlanHandler_ListPlans(t *testing.T) {
	r := newPlanRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/plans", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items []struct {
				Type         string `json:"type"`
				MonthlyLimit *int   `json:"monthly_limit"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Items, 2)
	assert.Equal(t, "FREE", resp.Data.Items[0].Type)
	require.NotNil(t, resp.Data.Items[0].MonthlyLimit)
	assert.Equal(t, 10, *resp.Data.Items[0].MonthlyLimit)
	assert.Equal(t, "PREMIUM", resp.Data.Items[1].Type)
	assert.Nil(t, resp.Data.Items[1].MonthlyLimit)
}

func TestPlanHandler_ListTemplates(t *testing.T) {
	r := newPlanRouter()

	t.Run("returns catalog for type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/templates/email", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Items []struct {
					ID        string `json:"id"`
					IsPremium bool   `json:"is_premium"`
				} `json:"items"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Items, 4)
		assert.Equal(t, "email-greeting", resp.Data.Items[0].ID)
		assert.False(t, resp.Data.Items[0].IsPremium)
		assert.True(t, resp.Data.Items[3].IsPremium)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/templates/podcast", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
