// Package catalog 提供文案模板目录
//
// 目录是进程级只读配置，启动时固定。每种内容类型恰好四个模板，
// 前两个免费，后两个为付费模板，首个为该类型的默认选择。
package catalog

import (
	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/pkg/errors"
)

// Template 模板定义
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPremium   bool   `json:"is_premium"`
}

// templates 按内容类型组织的全部模板，顺序即展示顺序
var templates = map[entity.ContentType][]Template{
	entity.ContentTypeBlog: {
		{ID: "blog-basic", Name: "Standard Blog", Description: "A classic blog post layout", IsPremium: false},
		{ID: "blog-info", Name: "Knowledge Share", Description: "Educational writing for sharing information", IsPremium: false},
		{ID: "blog-seo", Name: "Business SEO", Description: "Optimized for search engine ranking", IsPremium: true},
		{ID: "blog-story", Name: "Storytelling", Description: "Narrative style that builds empathy", IsPremium: true},
	},
	entity.ContentTypeSocial: {
		{ID: "social-insta", Name: "Instagram", Description: "Emotive captions with hashtags", IsPremium: false},
		{ID: "social-x", Name: "X (Twitter)", Description: "Short, punchy text-first posts", IsPremium: false},
		{ID: "social-promotion", Name: "Event Promotion", Description: "Copy that drives engagement", IsPremium: true},
		{ID: "social-expert", Name: "Expert Voice", Description: "Professional messaging for LinkedIn", IsPremium: true},
	},
	entity.ContentTypeEmail: {
		{ID: "email-greeting", Name: "Customer Greeting", Description: "Welcome and onboarding mail", IsPremium: false},
		{ID: "email-notice", Name: "Announcement", Description: "Important update notices", IsPremium: false},
		{ID: "email-sales", Name: "Sales Message", Description: "Personalized conversion mail", IsPremium: true},
		{ID: "email-survey", Name: "Feedback Request", Description: "Polite review solicitation", IsPremium: true},
	},
	entity.ContentTypeProduct: {
		{ID: "product-summary", Name: "Product Summary", Description: "Concise feature-led description", IsPremium: false},
		{ID: "product-spec", Name: "Detailed Specs", Description: "Spec-heavy technical description", IsPremium: false},
		{ID: "product-narrative", Name: "Emotional Marketing", Description: "A story that sparks desire", IsPremium: true},
		{ID: "product-compare", Name: "Competitor Compare", Description: "Strategic superiority framing", IsPremium: true},
	},
}

// TemplatesFor 返回指定内容类型的模板列表，顺序固定，首个为默认选择
func TemplatesFor(contentType entity.ContentType) ([]Template, error) {
	list, ok := templates[contentType]
	if !ok {
		return nil, errors.ErrInvalidParam.WithDetail("unknown content type: " + string(contentType))
	}
	// 返回副本，防止调用方修改目录
	out := make([]Template, len(list))
	copy(out, list)
	return out, nil
}

// DefaultTemplate 返回指定内容类型的默认模板
func DefaultTemplate(contentType entity.ContentType) (Template, error) {
	list, err := TemplatesFor(contentType)
	if err != nil {
		return Template{}, err
	}
	return list[0], nil
}

// Lookup 查找指定类型下的模板
func Lookup(contentType entity.ContentType, templateID string) (Template, error) {
	list, ok := templates[contentType]
	if !ok {
		return Template{}, errors.ErrInvalidParam.WithDetail("unknown content type: " + string(contentType))
	}
	for _, t := range list {
		if t.ID == templateID {
			return t, nil
		}
	}
	return Template{}, errors.ErrTemplateNotFound.WithDetail(templateID)
}

// IsPremiumTemplate 检查模板是否为付费模板，模板不存在时返回 NotFound 错误
func IsPremiumTemplate(contentType entity.ContentType, templateID string) (bool, error) {
	t, err := Lookup(contentType, templateID)
	if err != nil {
		return false, err
	}
	return t.IsPremium, nil
}
