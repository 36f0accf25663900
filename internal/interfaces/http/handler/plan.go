// Package handler 提供 HTTP 请求处理器
package handler

import (
	"copygen-ai-api/internal/application/catalog"
	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
)

// PlanHandler 套餐与模板目录处理器
type PlanHandler struct{}

// NewPlanHandler 创建套餐处理器
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// ListPlans 获取套餐列表
// @Summary 套餐列表
// @Tags Plans
// @Produce json
// @Success 200 {object} dto.Response[dto.PlanListResponse]
// @Router /v1/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	dto.Success(c, &dto.PlanListResponse{Items: entity.Plans})
}

// ListTemplates 获取某类型下的模板目录
// @Summary 模板目录
// @Tags Templates
// @Produce json
// @Param type path string true "内容类型"
// @Success 200 {object} dto.Response[dto.TemplateListResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/templates/{type} [get]
func (h *PlanHandler) ListTemplates(c *gin.Context) {
	contentType := entity.ContentType(c.Param("type"))
	templates, err := catalog.TemplatesFor(contentType)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}

	dto.Success(c, dto.ToTemplateListResponse(contentType, templates))
}
