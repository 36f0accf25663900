// Package policy 提供计划与配额的纯函数策略
//
// 本包不依赖任何存储或传输层，所有函数对显式输入求值，便于穷举测试。
package policy

import (
	"copygen-ai-api/internal/domain/entity"
)

// UsageStatusKind 用量状态档位
type UsageStatusKind string

const (
	UsageStatusSafe     UsageStatusKind = "safe"
	UsageStatusWarning  UsageStatusKind = "warning"
	UsageStatusCritical UsageStatusKind = "critical"
)

// CanUseTemplate 判断计划能否使用模板
// 仅当模板为付费且计划不是 PREMIUM 时返回 false
func CanUseTemplate(plan entity.PlanType, templateIsPremium bool) bool {
	if !templateIsPremium {
		return true
	}
	return plan == entity.PlanPremium
}

// RemainingQuota 计算剩余配额
// limit 为 nil 表示无限制，此时 unlimited 为 true 且 remaining 无意义
// 剩余量向下截断到 0，不出现负数
func RemainingQuota(current int, limit *int) (remaining int, unlimited bool) {
	if limit == nil {
		return 0, true
	}
	remaining = *limit - current
	if remaining < 0 {
		remaining = 0
	}
	return remaining, false
}

// VisibleHistoryWindow 按计划裁剪可见的历史记录
// 输入按新到旧排序，FREE 计划只保留前 HistoryLimit 条
func VisibleHistoryWindow(plan entity.PlanType, contents []*entity.Content) []*entity.Content {
	limit := entity.PlanInfoFor(plan).HistoryLimit
	if limit == nil || len(contents) <= *limit {
		return contents
	}
	return contents[:*limit]
}

// UsagePercent 计算用量百分比，无限制计划恒为 0
func UsagePercent(current int, limit *int) int {
	if limit == nil || *limit <= 0 {
		return 0
	}
	pct := current * 100 / *limit
	if pct > 100 {
		pct = 100
	}
	return pct
}

// UsageStatus 用量状态档位，70% 起告警，90% 起临界
func UsageStatus(current int, limit *int) UsageStatusKind {
	pct := UsagePercent(current, limit)
	switch {
	case pct >= 90:
		return UsageStatusCritical
	case pct >= 70:
		return UsageStatusWarning
	default:
		return UsageStatusSafe
	}
}
