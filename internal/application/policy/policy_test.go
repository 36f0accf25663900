package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"copygen-ai-api/internal/domain/entity"
)

func TestCanUseTemplate(t *testing.T) {
	tests := []struct {
		name      string
		plan      entity.PlanType
		isPremium bool
		want      bool
	}{
		{"free plan, free template", entity.PlanFree, false, true},
		{"free plan, premium template", entity.PlanFree, true, false},
		{"premium plan, free template", entity.PlanPremium, false, true},
		{"premium plan, premium template", entity.PlanPremium, true, true},
		{"unknown plan, premium template", entity.PlanType("TRIAL"), true, false},
		{"unknown plan, free template", entity.PlanType("TRIAL"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUseTemplate(tt.plan, tt.isPremium))
		})
	}
}

func TestRemainingQuota(t *testing.T) {
	ten := 10

	t.Run("exhausted", func(t *testing.T) {
		remaining, unlimited := RemainingQuota(10, &ten)
		assert.False(t, unlimited)
		assert.Equal(t, 0, remaining)
	})

	t.Run("partially used", func(t *testing.T) {
		remaining, unlimited := RemainingQuota(3, &ten)
		assert.False(t, unlimited)
		assert.Equal(t, 7, remaining)
	})

	t.Run("overrun clamps to zero", func(t *testing.T) {
		remaining, unlimited := RemainingQuota(12, &ten)
		assert.False(t, unlimited)
		assert.Equal(t, 0, remaining)
	})

	t.Run("nil limit is unlimited", func(t *testing.T) {
		_, unlimited := RemainingQuota(3, nil)
		assert.True(t, unlimited)
	})
}

func TestVisibleHistoryWindow(t *testing.T) {
	items := make([]*entity.Content, 15)
	for i := range items {
		items[i] = &entity.Content{ID: string(rune('a' + i))}
	}

	t.Run("free plan truncates to ten", func(t *testing.T) {
		got := VisibleHistoryWindow(entity.PlanFree, items)
		assert.Len(t, got, 10)
		assert.Same(t, items[0], got[0])
	})

	t.Run("premium plan keeps all", func(t *testing.T) {
		got := VisibleHistoryWindow(entity.PlanPremium, items)
		assert.Len(t, got, 15)
	})

	t.Run("short list untouched", func(t *testing.T) {
		got := VisibleHistoryWindow(entity.PlanFree, items[:4])
		assert.Len(t, got, 4)
	})
}

func TestUsagePercent(t *testing.T) {
	ten := 10
	assert.Equal(t, 0, UsagePercent(0, &ten))
	assert.Equal(t, 70, UsagePercent(7, &ten))
	assert.Equal(t, 100, UsagePercent(12, &ten))
	assert.Equal(t, 0, UsagePercent(5, nil))
}

func TestUsageStatus(t *testing.T) {
	ten := 10
	assert.Equal(t, UsageStatusSafe, UsageStatus(6, &ten))
	assert.Equal(t, UsageStatusWarning, UsageStatus(7, &ten))
	assert.Equal(t, UsageStatusWarning, UsageStatus(8, &ten))
	assert.Equal(t, UsageStatusCritical, UsageStatus(9, &ten))
	assert.Equal(t, UsageStatusSafe, UsageStatus(100, nil))
}
