package generation

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copygen-ai-api/internal/application/prompt"
	"copygen-ai-api/internal/application/quota"
	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/infrastructure/llm"
	"copygen-ai-api/pkg/errors"
)

// fakeChatModel 统计调用次数的假模型
type fakeChatModel struct {
	calls int
	msg   *schema.Message
	err   error
}

func (f *fakeChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.calls++
	return f.msg, f.err
}

func (f *fakeChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	f.calls++
	return nil, stderrors.New("stream not supported")
}

// fakeSelector 统计凭据选择次数
type fakeSelector struct {
	calls int
	sel   *llm.Selection
	err   error
}

func (f *fakeSelector) Select(ctx context.Context) (*llm.Selection, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.sel, nil
}

func newService(selector ProviderSelector) *Service {
	builder := prompt.NewBuilder(prompt.NewRegistry())
	checker := quota.NewUsageQuotaChecker(nil)
	return NewService(selector, builder, checker)
}

func freeUser() *entity.User {
	return &entity.User{ID: "u1", Plan: entity.PlanFree, UsageCurrent: 0}
}

func emailSalesRequest() *Request {
	return &Request{
		Type:       entity.ContentTypeEmail,
		TemplateID: "email-sales",
		FormData: &prompt.FormData{
			Purpose:        "promotion",
			TargetAudience: "new users",
			MainMessage:    "50% off",
			CTAText:        "Buy now",
		},
	}
}

func TestGenerate_Success(t *testing.T) {
	fake := &fakeChatModel{msg: schema.AssistantMessage("generated copy", nil)}
	selector := &fakeSelector{sel: &llm.Selection{Provider: "groq", Model: "llama-3.3-70b-versatile", ChatModel: fake}}
	svc := newService(selector)

	user := &entity.User{ID: "u1", Plan: entity.PlanPremium}
	res, err := svc.Generate(context.Background(), emailSalesRequest(), user)
	require.NoError(t, err)

	assert.Equal(t, "generated copy", res.Content)
	assert.Equal(t, "groq", res.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", res.Model)
	assert.Equal(t, 1, fake.calls)
}

func TestGenerate_NoCredentialConfigured(t *testing.T) {
	fake := &fakeChatModel{}
	selector := &fakeSelector{err: errors.ErrLLMNotConfigured}
	svc := newService(selector)

	// PREMIUM 用户先通过计划和配额门槛，确保失败只来自凭证缺失
	user := &entity.User{ID: "u1", Plan: entity.PlanPremium}
	_, err := svc.Generate(context.Background(), emailSalesRequest(), user)
	require.Error(t, err)

	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodeLLMNotConfigured, appErr.Code)
	assert.Equal(t, 0, fake.calls, "no upstream call may be attempted without a credential")
}

func TestGenerate_PremiumGateBeforeAnyNetworkWork(t *testing.T) {
	selector := &fakeSelector{}
	svc := newService(selector)

	req := emailSalesRequest() // email-sales 为付费模板
	_, err := svc.Generate(context.Background(), req, freeUser())
	require.Error(t, err)

	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodePremiumRequired, appErr.Code)
	assert.Equal(t, 0, selector.calls, "rejection must happen before credential selection")
}

func TestGenerate_QuotaExceeded(t *testing.T) {
	selector := &fakeSelector{}
	svc := newService(selector)

	user := &entity.User{ID: "u1", Plan: entity.PlanFree, UsageCurrent: 10}
	req := emailSalesRequest()
	req.TemplateID = "email-greeting" // 免费模板，走到配额检查

	_, err := svc.Generate(context.Background(), req, user)
	require.Error(t, err)

	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodeQuotaExceeded, appErr.Code)
	assert.Equal(t, 0, selector.calls)
}

func TestGenerate_UpstreamError(t *testing.T) {
	fake := &fakeChatModel{err: stderrors.New("429 rate limited")}
	selector := &fakeSelector{sel: &llm.Selection{Provider: "openai", Model: "gpt-4o-mini", ChatModel: fake}}
	svc := newService(selector)

	user := &entity.User{ID: "u1", Plan: entity.PlanPremium}
	_, err := svc.Generate(context.Background(), emailSalesRequest(), user)
	require.Error(t, err)

	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodeLLMProviderError, appErr.Code)
	assert.Contains(t, appErr.Message, "openai")
	assert.Equal(t, 1, fake.calls, "single shot, no retries")
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	fake := &fakeChatModel{msg: schema.AssistantMessage("", nil)}
	selector := &fakeSelector{sel: &llm.Selection{Provider: "groq", Model: "llama-3.3-70b-versatile", ChatModel: fake}}
	svc := newService(selector)

	user := &entity.User{ID: "u1", Plan: entity.PlanPremium}
	_, err := svc.Generate(context.Background(), emailSalesRequest(), user)
	require.Error(t, err)

	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodeEmptyCompletion, appErr.Code)
}

func TestGenerate_Validation(t *testing.T) {
	selector := &fakeSelector{}
	svc := newService(selector)

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"missing type", &Request{TemplateID: "email-sales", FormData: &prompt.FormData{}}},
		{"missing template id", &Request{Type: entity.ContentTypeEmail, FormData: &prompt.FormData{}}},
		{"missing form data", &Request{Type: entity.ContentTypeEmail, TemplateID: "email-sales"}},
		{"invalid type", &Request{Type: "video", TemplateID: "x", FormData: &prompt.FormData{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.req, freeUser())
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidParam, errors.AsAppError(err).Code)
		})
	}

	t.Run("unknown template", func(t *testing.T) {
		req := emailSalesRequest()
		req.TemplateID = "email-unknown"
		_, err := svc.Generate(context.Background(), req, freeUser())
		require.Error(t, err)
		assert.Equal(t, errors.CodeTemplateNotFound, errors.AsAppError(err).Code)
	})

	assert.Equal(t, 0, selector.calls)
}
