// Package handler 提供 HTTP 请求处理器
package handler

import (
	"copygen-ai-api/internal/application/generation"
	"copygen-ai-api/internal/domain/repository"
	"copygen-ai-api/internal/interfaces/http/dto"
	"copygen-ai-api/internal/interfaces/http/middleware"
	"copygen-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GenerationHandler 文案生成处理器
type GenerationHandler struct {
	service  *generation.Service
	userRepo repository.UserRepository
}

// NewGenerationHandler 创建文案生成处理器
func NewGenerationHandler(service *generation.Service, userRepo repository.UserRepository) *GenerationHandler {
	return &GenerationHandler{
		service:  service,
		userRepo: userRepo,
	}
}

// Generate 生成文案
// @Summary 生成文案
// @Description 按内容类型和模板调用 LLM 生成一段文案，不落库
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// 付费门控和配额检查都依赖最新的套餐与用量
	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "generation failed")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	result, err := h.service.Generate(ctx, req.ToGenerationRequest(), user)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}

	dto.Success(c, dto.ToGenerateResponse(result))
}
