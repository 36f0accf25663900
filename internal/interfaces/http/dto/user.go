// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"copygen-ai-api/internal/application/policy"
	"copygen-ai-api/internal/domain/entity"
)

// UserResponse 用户响应
type UserResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Plan        entity.PlanType `json:"plan"`
	Confirmed   bool            `json:"confirmed"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,max=128"`
}

// UsageResponse 用量响应
type UsageResponse struct {
	Used      int     `json:"used"`
	Limit     *int    `json:"limit"` // null 表示不限量
	Remaining int     `json:"remaining"`
	Unlimited bool    `json:"unlimited"`
	Percent   int     `json:"percent"`
	Status    string  `json:"status"`
}

// MeResponse 当前用户响应
type MeResponse struct {
	User  *UserResponse    `json:"user"`
	Plan  *entity.PlanInfo `json:"plan_info"`
	Usage *UsageResponse   `json:"usage"`
}

// ToUserResponse 实体转换为响应
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Plan:        u.Plan,
		Confirmed:   u.IsConfirmed(),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUsageResponse 根据实体计算用量响应
func ToUsageResponse(u *entity.User) *UsageResponse {
	limit := u.UsageLimit()
	remaining, unlimited := policy.RemainingQuota(u.UsageCurrent, limit)
	return &UsageResponse{
		Used:      u.UsageCurrent,
		Limit:     limit,
		Remaining: remaining,
		Unlimited: unlimited,
		Percent:   policy.UsagePercent(u.UsageCurrent, limit),
		Status:    string(policy.UsageStatus(u.UsageCurrent, limit)),
	}
}

// ToMeResponse 组装当前用户视图
func ToMeResponse(u *entity.User) *MeResponse {
	info := entity.PlanInfoFor(u.Plan)
	return &MeResponse{
		User:  ToUserResponse(u),
		Plan:  &info,
		Usage: ToUsageResponse(u),
	}
}

// ApplyToUser 更新实体
func (r *UpdateUserRequest) ApplyToUser(u *entity.User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	u.UpdatedAt = time.Now()
}
