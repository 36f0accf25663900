// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/lib/pq"

	"copygen-ai-api/internal/domain/entity"
)

// CreateContentRequest 保存内容请求
type CreateContentRequest struct {
	Type     string                  `json:"type" binding:"required,oneof=blog social email product"`
	Title    string                  `json:"title" binding:"required,max=256"`
	Content  string                  `json:"content" binding:"required"`
	Keywords []string                `json:"keywords" binding:"omitempty,max=20,dive,max=64"`
	Metadata *entity.ContentMetadata `json:"metadata"`
}

// UpdateContentRequest 更新内容请求
type UpdateContentRequest struct {
	Title    *string  `json:"title" binding:"omitempty,max=256"`
	Content  *string  `json:"content"`
	Keywords []string `json:"keywords" binding:"omitempty,max=20,dive,max=64"`
}

// ContentResponse 内容响应
type ContentResponse struct {
	ID        string                  `json:"id"`
	Type      entity.ContentType      `json:"type"`
	Title     string                  `json:"title"`
	Content   string                  `json:"content"`
	Keywords  []string                `json:"keywords"`
	Metadata  *entity.ContentMetadata `json:"metadata,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// ContentListResponse 内容列表响应
type ContentListResponse struct {
	Items []*ContentResponse `json:"items"`
}

// ToEntity 请求转换为实体
func (r *CreateContentRequest) ToEntity(userID string) *entity.Content {
	content := entity.NewContent(userID, entity.ContentType(r.Type), r.Title, r.Content)
	content.Keywords = pq.StringArray(r.Keywords)
	content.Metadata = r.Metadata
	return content
}

// ApplyToContent 更新实体
func (r *UpdateContentRequest) ApplyToContent(c *entity.Content) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Content != nil {
		c.Content = *r.Content
	}
	if r.Keywords != nil {
		c.Keywords = pq.StringArray(r.Keywords)
	}
	c.UpdatedAt = time.Now()
}

// ToContentResponse 实体转换为响应
func ToContentResponse(c *entity.Content) *ContentResponse {
	if c == nil {
		return nil
	}
	return &ContentResponse{
		ID:        c.ID,
		Type:      c.Type,
		Title:     c.Title,
		Content:   c.Content,
		Keywords:  []string(c.Keywords),
		Metadata:  c.Metadata,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToContentListResponse 实体列表转换为响应
func ToContentListResponse(contents []*entity.Content) *ContentListResponse {
	items := make([]*ContentResponse, len(contents))
	for i, c := range contents {
		items[i] = ToContentResponse(c)
	}
	return &ContentListResponse{Items: items}
}
