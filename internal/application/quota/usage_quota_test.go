package quota

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copygen-ai-api/internal/domain/entity"
)

func TestCheckMonthlyUsage(t *testing.T) {
	c := NewUsageQuotaChecker(nil)

	t.Run("free plan with remaining quota", func(t *testing.T) {
		user := &entity.User{ID: "u1", Plan: entity.PlanFree, UsageCurrent: 3}
		used, max, err := c.CheckMonthlyUsage(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, 3, used)
		assert.Equal(t, 10, max)
	})

	t.Run("free plan exhausted", func(t *testing.T) {
		user := &entity.User{ID: "u1", Plan: entity.PlanFree, UsageCurrent: 10}
		_, _, err := c.CheckMonthlyUsage(context.Background(), user)
		require.Error(t, err)

		var quotaErr UsageQuotaExceededError
		require.ErrorAs(t, err, &quotaErr)
		assert.Equal(t, "u1", quotaErr.UserID)
		assert.Equal(t, 10, quotaErr.Used)
	})

	t.Run("premium plan is unlimited", func(t *testing.T) {
		user := &entity.User{ID: "u2", Plan: entity.PlanPremium, UsageCurrent: 5000}
		used, max, err := c.CheckMonthlyUsage(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, 5000, used)
		assert.Equal(t, -1, max)
	})
}
