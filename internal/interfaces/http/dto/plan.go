// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"copygen-ai-api/internal/application/catalog"
	"copygen-ai-api/internal/domain/entity"
)

// PlanListResponse 套餐列表响应
type PlanListResponse struct {
	Items []entity.PlanInfo `json:"items"`
}

// TemplateResponse 模板响应
type TemplateResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPremium   bool   `json:"is_premium"`
}

// TemplateListResponse 模板列表响应
type TemplateListResponse struct {
	Type  entity.ContentType  `json:"type"`
	Items []*TemplateResponse `json:"items"`
}

// ToTemplateListResponse 模板目录转换为响应
func ToTemplateListResponse(contentType entity.ContentType, templates []catalog.Template) *TemplateListResponse {
	items := make([]*TemplateResponse, len(templates))
	for i, t := range templates {
		items[i] = &TemplateResponse{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			IsPremium:   t.IsPremium,
		}
	}
	return &TemplateListResponse{Type: contentType, Items: items}
}
