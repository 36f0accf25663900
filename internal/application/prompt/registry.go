// Package prompt 提供系统提示词注册表和用户提示词构建
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"copygen-ai-api/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

// genericTemplate 未匹配任何模板时的兜底系统提示词
const genericTemplate = "templates/generic.txt"

// Registry 系统提示词注册表
//
// 提示词文件通过 go:embed 编译进二进制，首次访问后缓存。
type Registry struct {
	mu    sync.RWMutex
	cache map[string]string
}

// NewRegistry 创建注册表
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[string]string),
	}
}

// SystemPrompt 返回 (内容类型, 模板) 对应的系统提示词
// 未知组合回退到通用提示词，不视为错误
func (r *Registry) SystemPrompt(contentType entity.ContentType, templateID string) (string, error) {
	path, ok := resolvePromptFile(contentType, templateID)
	if !ok {
		path = genericTemplate
	}
	return r.load(path)
}

func (r *Registry) load(path string) (string, error) {
	r.mu.RLock()
	if text, ok := r.cache[path]; ok {
		r.mu.RUnlock()
		return text, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if text, ok := r.cache[path]; ok {
		return text, nil
	}

	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt template %s: %w", path, err)
	}
	text := strings.TrimSpace(string(b))
	r.cache[path] = text
	return text, nil
}

// resolvePromptFile 解析 (内容类型, 模板) 到提示词文件
func resolvePromptFile(contentType entity.ContentType, templateID string) (string, bool) {
	switch contentType {
	case entity.ContentTypeBlog:
		switch templateID {
		case "blog-basic", "blog-info", "blog-seo", "blog-story":
			return "templates/" + templateID + ".txt", true
		}
	case entity.ContentTypeSocial:
		switch templateID {
		case "social-insta", "social-x", "social-promotion", "social-expert":
			return "templates/" + templateID + ".txt", true
		}
	case entity.ContentTypeEmail:
		switch templateID {
		case "email-greeting", "email-notice", "email-sales", "email-survey":
			return "templates/" + templateID + ".txt", true
		}
	case entity.ContentTypeProduct:
		switch templateID {
		case "product-summary", "product-spec", "product-narrative", "product-compare":
			return "templates/" + templateID + ".txt", true
		}
	}
	return "", false
}
