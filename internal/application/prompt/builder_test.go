package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copygen-ai-api/internal/domain/entity"
)

func TestBuild_Blog(t *testing.T) {
	b := NewBuilder(NewRegistry())

	system, user, err := b.Build(entity.ContentTypeBlog, "blog-seo", &FormData{
		Title:    "T",
		Keywords: []string{"a", "b"},
		Tone:     "formal",
		Length:   "long",
	})
	require.NoError(t, err)

	assert.Contains(t, user, "T")
	assert.Contains(t, user, "a, b")
	assert.Contains(t, user, "formal")
	assert.Contains(t, user, "1000+ characters, detailed")
	assert.Contains(t, system, "SEO")

	basicSystem, _, err := b.Build(entity.ContentTypeBlog, "blog-basic", &FormData{Title: "T"})
	require.NoError(t, err)
	assert.NotEqual(t, system, basicSystem)
}

func TestBuild_BlogLengthPassthrough(t *testing.T) {
	b := NewBuilder(NewRegistry())

	_, user, err := b.Build(entity.ContentTypeBlog, "blog-basic", &FormData{Length: "750 chars"})
	require.NoError(t, err)
	assert.Contains(t, user, "Target length: 750 chars")
}

func TestBuild_Social(t *testing.T) {
	b := NewBuilder(NewRegistry())

	t.Run("hashtags requested", func(t *testing.T) {
		_, user, err := b.Build(entity.ContentTypeSocial, "social-insta", &FormData{
			Topic:           "launch",
			Platform:        "instagram",
			Mood:            "playful",
			IncludeHashtags: true,
		})
		require.NoError(t, err)
		assert.Contains(t, user, "Include hashtags: yes")
		assert.Contains(t, user, "Platform: instagram")
	})

	t.Run("hashtags not requested", func(t *testing.T) {
		_, user, err := b.Build(entity.ContentTypeSocial, "social-x", &FormData{Topic: "launch"})
		require.NoError(t, err)
		assert.Contains(t, user, "Include hashtags: no")
	})
}

func TestBuild_Email(t *testing.T) {
	b := NewBuilder(NewRegistry())

	_, user, err := b.Build(entity.ContentTypeEmail, "email-sales", &FormData{
		Purpose:        "promotion",
		TargetAudience: "new users",
		MainMessage:    "50% off",
		CTAText:        "Buy now",
	})
	require.NoError(t, err)
	assert.Contains(t, user, "Purpose: promotion")
	assert.Contains(t, user, "Audience: new users")
	assert.Contains(t, user, "Key message: 50% off")
	assert.Contains(t, user, "CTA: Buy now")
}

func TestBuild_Product(t *testing.T) {
	b := NewBuilder(NewRegistry())

	_, user, err := b.Build(entity.ContentTypeProduct, "product-spec", &FormData{
		ProductName:    "Widget",
		Features:       []string{"fast", "light"},
		TargetAudience: "makers",
		USP:            "cheapest",
	})
	require.NoError(t, err)
	assert.Contains(t, user, "Product: Widget")
	assert.Contains(t, user, "fast, light")
	assert.Contains(t, user, "USP: cheapest")
}

func TestBuild_MissingListFields(t *testing.T) {
	b := NewBuilder(NewRegistry())

	// 缺失的列表字段按空列表处理，不报错
	_, user, err := b.Build(entity.ContentTypeBlog, "blog-basic", &FormData{Title: "T"})
	require.NoError(t, err)
	assert.Contains(t, user, "Keywords: \n")
}

func TestSystemPrompt_GenericFallback(t *testing.T) {
	r := NewRegistry()

	generic, err := r.SystemPrompt(entity.ContentTypeBlog, "blog-nonexistent")
	require.NoError(t, err)

	known, err := r.SystemPrompt(entity.ContentTypeBlog, "blog-basic")
	require.NoError(t, err)

	assert.NotEqual(t, known, generic)
	assert.Contains(t, generic, "professional content writer")
}

func TestSystemPrompt_TypeScoped(t *testing.T) {
	r := NewRegistry()

	// 模板 ID 属于其它类型时同样回退到通用提示词
	got, err := r.SystemPrompt(entity.ContentTypeBlog, "email-sales")
	require.NoError(t, err)
	assert.Contains(t, got, "professional content writer")
}

func TestBuild_UnknownType(t *testing.T) {
	b := NewBuilder(NewRegistry())

	_, _, err := b.Build(entity.ContentType("video"), "x", &FormData{})
	require.Error(t, err)
}
