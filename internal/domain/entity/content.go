package entity

import (
	"time"

	"github.com/lib/pq"
)

// ContentMetadata 生成时的输入快照
//
// 保存生成表单的原始字段，便于重新生成和审计。
type ContentMetadata struct {
	TemplateID string            `json:"template_id,omitempty"`
	Tone       string            `json:"tone,omitempty"`
	Length     string            `json:"length,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	Provider   string            `json:"provider,omitempty"`
	Model      string            `json:"model,omitempty"`
}

// Content 生成的文案内容实体
type Content struct {
	ID        string           `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    string           `json:"user_id" gorm:"type:uuid;index;not null"`
	Type      ContentType      `json:"type" gorm:"type:varchar(32);not null"`
	Title     string           `json:"title" gorm:"type:varchar(255);not null"`
	Content   string           `json:"content" gorm:"type:text;not null"`
	Keywords  pq.StringArray   `json:"keywords,omitempty" gorm:"type:text[]"`
	Metadata  *ContentMetadata `json:"metadata,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Content) TableName() string {
	return "user_contents"
}

// NewContent 创建内容实体
func NewContent(userID string, contentType ContentType, title, body string) *Content {
	now := time.Now()
	return &Content{
		UserID:    userID,
		Type:      contentType,
		Title:     title,
		Content:   body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
