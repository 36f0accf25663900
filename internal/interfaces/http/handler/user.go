// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"encoding/json"
	"time"

	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/domain/repository"
	"copygen-ai-api/internal/infrastructure/persistence/redis"
	"copygen-ai-api/internal/interfaces/http/dto"
	"copygen-ai-api/internal/interfaces/http/middleware"
	"copygen-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// userProfileCacheTTL 用户资料缓存时长
const userProfileCacheTTL = 5 * time.Minute

// UserHandler 用户处理器
type UserHandler struct {
	userRepo repository.UserRepository
	cache    *redis.Cache
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userRepo repository.UserRepository, cache *redis.Cache) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		cache:    cache,
	}
}

// GetMe 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 获取登录用户的资料、套餐和当月用量
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.MeResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	user, err := h.loadUser(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get user info")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	dto.Success(c, dto.ToMeResponse(user))
}

// UpdateMe 更新当前用户信息
// @Summary 更新当前用户信息
// @Description 修改当前登录用户的昵称
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.UpdateUserRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get user info")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	req.ApplyToUser(user)

	if err := h.userRepo.Update(ctx, user); err != nil {
		logger.Error(ctx, "failed to update user", err)
		dto.InternalError(c, "failed to update user")
		return
	}

	h.invalidateProfile(ctx, userID)

	dto.Success(c, dto.ToUserResponse(user))
}

// GetUsage 获取当月用量
// @Summary 获取当月用量
// @Tags Users
// @Produce json
// @Success 200 {object} dto.Response[dto.UsageResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/users/me/usage [get]
func (h *UserHandler) GetUsage(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	// 用量必须实时，不走缓存
	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get usage")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	dto.Success(c, dto.ToUsageResponse(user))
}

// loadUser 读取用户资料，优先走缓存
func (h *UserHandler) loadUser(ctx context.Context, userID string) (*entity.User, error) {
	if h.cache == nil {
		return h.userRepo.GetByID(ctx, userID)
	}

	key := redis.BuildUserProfileKey(userID)
	data, err := h.cache.GetOrLoadSafe(ctx, key, userProfileCacheTTL, func() (interface{}, error) {
		return h.userRepo.GetByID(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var user entity.User
	if err := json.Unmarshal(data, &user); err != nil {
		// 缓存损坏时回源
		return h.userRepo.GetByID(ctx, userID)
	}
	return &user, nil
}

// invalidateProfile 清除用户资料缓存
func (h *UserHandler) invalidateProfile(ctx context.Context, userID string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateUser(ctx, userID); err != nil {
		logger.Warn(ctx, "failed to invalidate user cache", "error", err, "user_id", userID)
	}
}
