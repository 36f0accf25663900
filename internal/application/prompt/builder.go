package prompt

import (
	"fmt"
	"strings"

	"copygen-ai-api/internal/domain/entity"
)

// FormData 生成表单输入
//
// 每种内容类型只使用自己的字段子集，其余字段忽略。
type FormData struct {
	// BLOG
	Title    string   `json:"title,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Tone     string   `json:"tone,omitempty"`
	Length   string   `json:"length,omitempty"`

	// SOCIAL
	Topic           string `json:"topic,omitempty"`
	Platform        string `json:"platform,omitempty"`
	Mood            string `json:"mood,omitempty"`
	IncludeHashtags bool   `json:"includeHashtags,omitempty"`

	// EMAIL
	Purpose        string `json:"purpose,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	MainMessage    string `json:"mainMessage,omitempty"`
	CTAText        string `json:"ctaText,omitempty"`

	// PRODUCT
	ProductName string   `json:"productName,omitempty"`
	Features    []string `json:"features,omitempty"`
	USP         string   `json:"usp,omitempty"`
}

// lengthLabels 目标长度到描述文本的映射，未知值原样透传
var lengthLabels = map[string]string{
	"short":  "approx. 300 characters",
	"medium": "approx. 600 characters",
	"long":   "1000+ characters, detailed",
}

// Builder 提示词构建器
type Builder struct {
	registry *Registry
}

// NewBuilder 创建提示词构建器
func NewBuilder(registry *Registry) *Builder {
	return &Builder{registry: registry}
}

// Build 构建 (系统提示词, 用户提示词) 对
func (b *Builder) Build(contentType entity.ContentType, templateID string, form *FormData) (system string, user string, err error) {
	system, err = b.registry.SystemPrompt(contentType, templateID)
	if err != nil {
		return "", "", err
	}

	switch contentType {
	case entity.ContentTypeBlog:
		length := form.Length
		if label, ok := lengthLabels[length]; ok {
			length = label
		}
		user = fmt.Sprintf("Topic: %s\nKeywords: %s\nTone: %s\nTarget length: %s",
			form.Title, strings.Join(form.Keywords, ", "), form.Tone, length)
	case entity.ContentTypeSocial:
		hashtags := "no"
		if form.IncludeHashtags {
			hashtags = "yes"
		}
		user = fmt.Sprintf("Topic: %s\nPlatform: %s\nMood: %s\nInclude hashtags: %s",
			form.Topic, form.Platform, form.Mood, hashtags)
	case entity.ContentTypeEmail:
		user = fmt.Sprintf("Purpose: %s\nAudience: %s\nKey message: %s\nCTA: %s",
			form.Purpose, form.TargetAudience, form.MainMessage, form.CTAText)
	case entity.ContentTypeProduct:
		user = fmt.Sprintf("Product: %s\nKey features: %s\nTarget customer: %s\nUSP: %s",
			form.ProductName, strings.Join(form.Features, ", "), form.TargetAudience, form.USP)
	default:
		return "", "", fmt.Errorf("unknown content type: %s", contentType)
	}

	return system, user, nil
}
