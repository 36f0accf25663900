// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"copygen-ai-api/internal/domain/entity"
)

// ContentFilter 内容列表过滤条件
type ContentFilter struct {
	Type    entity.ContentType `json:"type,omitempty"`
	Keyword string             `json:"keyword,omitempty"`
}

// ContentRepository 内容仓储接口
type ContentRepository interface {
	// Create 保存生成的内容
	Create(ctx context.Context, content *entity.Content) error

	// GetByID 根据 ID 获取内容
	GetByID(ctx context.Context, id string) (*entity.Content, error)

	// ListByUser 获取用户的内容列表，按创建时间倒序
	ListByUser(ctx context.Context, userID string, filter ContentFilter, pagination Pagination) (*PagedResult[*entity.Content], error)

	// CountByUser 统计用户的内容数量
	CountByUser(ctx context.Context, userID string) (int64, error)

	// Update 更新内容
	Update(ctx context.Context, content *entity.Content) error

	// Delete 删除内容
	Delete(ctx context.Context, id string) error
}
