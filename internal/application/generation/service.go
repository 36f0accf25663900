// Package generation 提供文案生成网关
//
// 网关负责校验、付费模板门控、配额检查、凭据选择和单次上游调用，
// 不做重试，也不落库，持久化由调用方负责。
package generation

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"copygen-ai-api/internal/application/catalog"
	"copygen-ai-api/internal/application/policy"
	"copygen-ai-api/internal/application/prompt"
	"copygen-ai-api/internal/application/quota"
	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/infrastructure/llm"
	"copygen-ai-api/pkg/errors"
	"copygen-ai-api/pkg/logger"
	"copygen-ai-api/pkg/metrics"
	"copygen-ai-api/pkg/tracer"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel/attribute"
)

// generationTemperature 上游生成温度，固定值
const generationTemperature float32 = 0.7

// ProviderSelector 按凭据可用性选择上游提供商
type ProviderSelector interface {
	Select(ctx context.Context) (*llm.Selection, error)
}

// Request 生成请求
type Request struct {
	Type       entity.ContentType
	TemplateID string
	FormData   *prompt.FormData
}

// Result 生成结果
type Result struct {
	Content  string
	Provider string
	Model    string
}

// Service 文案生成网关
type Service struct {
	selector ProviderSelector
	builder  *prompt.Builder
	checker  *quota.UsageQuotaChecker
}

// NewService 创建生成网关
func NewService(selector ProviderSelector, builder *prompt.Builder, checker *quota.UsageQuotaChecker) *Service {
	return &Service{
		selector: selector,
		builder:  builder,
		checker:  checker,
	}
}

// Generate 执行一次文案生成
// 所有校验在任何网络调用之前完成
func (s *Service) Generate(ctx context.Context, req *Request, user *entity.User) (*Result, error) {
	start := time.Now()

	if req == nil || req.Type == "" || req.TemplateID == "" || req.FormData == nil {
		return nil, errors.ErrInvalidParam.WithDetail("type, templateId and formData are required")
	}
	if !req.Type.IsValid() {
		return nil, errors.ErrInvalidParam.WithDetail("unknown content type: " + string(req.Type))
	}

	tpl, err := catalog.Lookup(req.Type, req.TemplateID)
	if err != nil {
		return nil, err
	}

	if !policy.CanUseTemplate(user.Plan, tpl.IsPremium) {
		metrics.QuotaRejectedTotal.WithLabelValues(string(user.Plan), "premium_template").Inc()
		return nil, errors.ErrPremiumRequired.WithDetail(tpl.ID)
	}

	if _, _, err := s.checker.CheckMonthlyUsage(ctx, user); err != nil {
		var quotaErr quota.UsageQuotaExceededError
		if stderrors.As(err, &quotaErr) {
			metrics.QuotaRejectedTotal.WithLabelValues(string(user.Plan), "usage").Inc()
			return nil, errors.ErrQuotaExceeded.WithDetail(quotaErr.Error())
		}
		return nil, err
	}

	// 凭据选择先于任何出站调用，无可用凭据直接失败
	sel, err := s.selector.Select(ctx)
	if err != nil {
		metrics.CopyGenerationTotal.WithLabelValues(string(req.Type), req.TemplateID, "config_error").Inc()
		return nil, err
	}

	system, userPrompt, err := s.builder.Build(req.Type, req.TemplateID, req.FormData)
	if err != nil {
		return nil, errors.ErrGenerationFailed.WithError(err)
	}

	content, err := s.callModel(ctx, sel, system, userPrompt)
	if err != nil {
		metrics.CopyGenerationTotal.WithLabelValues(string(req.Type), req.TemplateID, "error").Inc()
		return nil, err
	}

	metrics.CopyGenerationTotal.WithLabelValues(string(req.Type), req.TemplateID, "success").Inc()
	metrics.CopyGenerationDuration.WithLabelValues(string(req.Type)).Observe(time.Since(start).Seconds())
	metrics.CopyCharCount.WithLabelValues(string(req.Type)).Observe(float64(len([]rune(content))))

	return &Result{
		Content:  content,
		Provider: sel.Provider,
		Model:    sel.Model,
	}, nil
}

// callModel 发起单次聊天补全调用
func (s *Service) callModel(ctx context.Context, sel *llm.Selection, system, userPrompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "generation.llm_call")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", sel.Provider),
		attribute.String("llm.model", sel.Model),
	)

	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(userPrompt),
	}

	start := time.Now()
	outMsg, err := sel.ChatModel.Generate(ctx, messages, model.WithTemperature(generationTemperature))
	metrics.LLMCallDuration.WithLabelValues(sel.Provider, sel.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(sel.Provider, sel.Model, "error").Inc()
		logger.Error(ctx, "llm call failed", err, "provider", sel.Provider, "model", sel.Model)
		return "", errors.Wrap(err, errors.CodeLLMProviderError,
			fmt.Sprintf("%s upstream error", sel.Provider))
	}
	metrics.LLMCallTotal.WithLabelValues(sel.Provider, sel.Model, "success").Inc()

	if outMsg == nil || outMsg.Content == "" {
		return "", errors.ErrEmptyCompletion
	}

	if meta := outMsg.ResponseMeta; meta != nil && meta.Usage != nil {
		metrics.LLMTokensUsed.WithLabelValues(sel.Provider, sel.Model, "prompt").Add(float64(meta.Usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(sel.Provider, sel.Model, "completion").Add(float64(meta.Usage.CompletionTokens))
	}

	return outMsg.Content, nil
}
