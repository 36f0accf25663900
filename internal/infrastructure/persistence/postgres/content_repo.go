// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/domain/repository"
)

// ContentRepository 内容仓储实现
type ContentRepository struct {
	client *Client
}

// NewContentRepository 创建内容仓储
func NewContentRepository(client *Client) *ContentRepository {
	return &ContentRepository{client: client}
}

// Create 保存生成的内容
func (r *ContentRepository) Create(ctx context.Context, content *entity.Content) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(content).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取内容
func (r *ContentRepository) GetByID(ctx context.Context, id string) (*entity.Content, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var content entity.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &content, nil
}

// ListByUser 获取用户的内容列表，按创建时间倒序
func (r *ContentRepository) ListByUser(ctx context.Context, userID string, filter repository.ContentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Content], error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.Content{}).Where("user_id = ?", userID)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Keyword != "" {
		// text[] 包含匹配
		query = query.Where("keywords @> ?", pq.StringArray{filter.Keyword})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count contents: %w", err)
	}

	var contents []*entity.Content
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&contents).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}

	return repository.NewPagedResult(contents, total, pagination), nil
}

// CountByUser 统计用户的内容数量
func (r *ContentRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.CountByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.Content{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count contents: %w", err)
	}
	return count, nil
}

// Update 更新内容
func (r *ContentRepository) Update(ctx context.Context, content *entity.Content) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(content).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update content: %w", err)
	}
	return nil
}

// Delete 删除内容
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Content{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}
