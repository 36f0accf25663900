// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"copygen-ai-api/internal/application/generation"
	"copygen-ai-api/internal/application/prompt"
	"copygen-ai-api/internal/domain/entity"
)

// GenerateRequest 文案生成请求
type GenerateRequest struct {
	Type       string           `json:"type" binding:"required,oneof=blog social email product"`
	TemplateID string           `json:"templateId" binding:"required"`
	FormData   *prompt.FormData `json:"formData" binding:"required"`
}

// GenerateResponse 文案生成响应
type GenerateResponse struct {
	Content  string `json:"content"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// ToGenerationRequest 请求转换为网关请求
func (r *GenerateRequest) ToGenerationRequest() *generation.Request {
	return &generation.Request{
		Type:       entity.ContentType(r.Type),
		TemplateID: r.TemplateID,
		FormData:   r.FormData,
	}
}

// ToGenerateResponse 网关结果转换为响应
func ToGenerateResponse(res *generation.Result) *GenerateResponse {
	if res == nil {
		return nil
	}
	return &GenerateResponse{
		Content:  res.Content,
		Provider: res.Provider,
		Model:    res.Model,
	}
}
