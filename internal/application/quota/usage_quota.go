// Package quota 提供用户生成配额相关能力
package quota

import (
	"context"
	"fmt"

	"copygen-ai-api/internal/application/policy"
	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/domain/repository"
)

// UsageQuotaExceededError 表示用户的月度生成配额已耗尽
type UsageQuotaExceededError struct {
	UserID string
	Max    int
	Used   int
}

func (e UsageQuotaExceededError) Error() string {
	return fmt.Sprintf("usage quota exceeded: user=%s used=%d max=%d", e.UserID, e.Used, e.Max)
}

// UsageQuotaChecker 用于检查用户月度生成配额
type UsageQuotaChecker struct {
	userRepo repository.UserRepository
}

func NewUsageQuotaChecker(userRepo repository.UserRepository) *UsageQuotaChecker {
	return &UsageQuotaChecker{
		userRepo: userRepo,
	}
}

// CheckMonthlyUsage 检查用户是否还有当月生成配额。
// 返回：used/max（便于客户端展示），无限制计划 max 为 -1。
func (c *UsageQuotaChecker) CheckMonthlyUsage(ctx context.Context, user *entity.User) (used int, max int, err error) {
	limit := user.UsageLimit()
	remaining, unlimited := policy.RemainingQuota(user.UsageCurrent, limit)
	if unlimited {
		return user.UsageCurrent, -1, nil
	}
	if remaining <= 0 {
		return user.UsageCurrent, *limit, UsageQuotaExceededError{
			UserID: user.ID,
			Max:    *limit,
			Used:   user.UsageCurrent,
		}
	}
	return user.UsageCurrent, *limit, nil
}

// Consume 在事务内记录一次生成消耗
func (c *UsageQuotaChecker) Consume(ctx context.Context, userID string) error {
	return c.userRepo.IncrementUsage(ctx, userID)
}
