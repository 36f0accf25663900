// Package llm 提供 LLM 客户端工厂
package llm

import (
	"context"
	"fmt"
	"sync"

	"copygen-ai-api/internal/config"
	"copygen-ai-api/pkg/errors"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Selection 一次凭据选择的结果
type Selection struct {
	Provider  string
	Model     string
	ChatModel model.BaseChatModel
}

// EinoFactory 管理多个 Eino ChatModel 客户端实例
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Select 按回退链选择首个配置了 API Key 的提供商
// 没有任何可用凭据时返回配置错误，且不创建任何客户端
func (f *EinoFactory) Select(ctx context.Context) (*Selection, error) {
	chain := f.config.FallbackChain
	if len(chain) == 0 {
		chain = []string{f.config.DefaultProvider}
	}

	for _, name := range chain {
		providerCfg, ok := f.config.Providers[name]
		if !ok || providerCfg.APIKey == "" {
			continue
		}
		m, err := f.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		return &Selection{
			Provider:  name,
			Model:     providerCfg.Model,
			ChatModel: m,
		}, nil
	}

	return nil, errors.ErrLLMNotConfigured
}

// Get 获取指定名称的 ChatModel，如果未指定则返回默认客户端
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if name == "" {
		name = f.config.DefaultProvider
	}

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	// 使用 Eino 的 OpenAI 适配器，Groq 走 OpenAI 兼容端点
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      providerCfg.APIKey,
		BaseURL:     providerCfg.BaseURL,
		Model:       providerCfg.Model,
		MaxTokens:   &providerCfg.MaxTokens,
		Temperature: ptrFloat32(float32(providerCfg.Temperature)),
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

func ptrFloat32(f float32) *float32 {
	return &f
}
