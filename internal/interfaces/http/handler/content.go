// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"copygen-ai-api/internal/application/policy"
	"copygen-ai-api/internal/application/quota"
	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/domain/repository"
	"copygen-ai-api/internal/infrastructure/persistence/redis"
	"copygen-ai-api/internal/interfaces/http/dto"
	"copygen-ai-api/internal/interfaces/http/middleware"
	"copygen-ai-api/pkg/errors"
	"copygen-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ContentHandler 内容处理器
type ContentHandler struct {
	contentRepo repository.ContentRepository
	userRepo    repository.UserRepository
	tx          repository.Transactor
	checker     *quota.UsageQuotaChecker
	cache       *redis.Cache
}

// NewContentHandler 创建内容处理器
func NewContentHandler(
	contentRepo repository.ContentRepository,
	userRepo repository.UserRepository,
	tx repository.Transactor,
	checker *quota.UsageQuotaChecker,
	cache *redis.Cache,
) *ContentHandler {
	return &ContentHandler{
		contentRepo: contentRepo,
		userRepo:    userRepo,
		tx:          tx,
		checker:     checker,
		cache:       cache,
	}
}

// CreateContent 保存生成的内容
// @Summary 保存内容
// @Description 保存一条生成的文案并消耗一次当月配额
// @Tags Contents
// @Accept json
// @Produce json
// @Param body body dto.CreateContentRequest true "内容"
// @Success 201 {object} dto.Response[dto.ContentResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/contents [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// 保存同样受当月配额约束，生成接口不落库，计量在这里发生
	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to save content")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}
	if _, _, err := h.checker.CheckMonthlyUsage(ctx, user); err != nil {
		dto.FromAppError(c, errors.ErrQuotaExceeded)
		return
	}

	content := req.ToEntity(userID)

	// 落库和计量在同一事务，保证用量计数与内容条数一致
	err = h.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := h.contentRepo.Create(txCtx, content); err != nil {
			return err
		}
		return h.checker.Consume(txCtx, userID)
	})
	if err != nil {
		logger.Error(ctx, "failed to save content", err)
		dto.InternalError(c, "failed to save content")
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateUser(ctx, userID); err != nil {
			logger.Warn(ctx, "failed to invalidate user cache", "error", err, "user_id", userID)
		}
	}

	dto.Created(c, dto.ToContentResponse(content))
}

// ListContents 获取内容列表
// @Summary 内容列表
// @Description 按创建时间倒序返回当前用户的内容，FREE 套餐只能看到最近 10 条
// @Tags Contents
// @Produce json
// @Param type query string false "内容类型过滤"
// @Param keyword query string false "关键词过滤"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[dto.ContentListResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/contents [get]
func (h *ContentHandler) ListContents(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	plan := entity.PlanType(middleware.GetPlan(c))

	page := dto.BindPage(c)
	filter := repository.ContentFilter{
		Type:    entity.ContentType(c.Query("type")),
		Keyword: c.Query("keyword"),
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		dto.BadRequest(c, "unknown content type: "+string(filter.Type))
		return
	}

	result, err := h.contentRepo.ListByUser(ctx, userID, filter, repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list contents", err)
		dto.InternalError(c, "failed to list contents")
		return
	}

	// 历史窗口按套餐截断，只影响第一页
	items := result.Items
	if page.Page == 1 {
		items = policy.VisibleHistoryWindow(plan, items)
	}

	dto.SuccessWithPage(c, dto.ToContentListResponse(items),
		dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// GetContent 获取单条内容
// @Summary 内容详情
// @Tags Contents
// @Produce json
// @Param cid path string true "内容 ID"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/contents/{cid} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	contentID := dto.BindContentID(c)

	content, err := h.loadOwned(c, userID, contentID)
	if err != nil {
		logger.Error(ctx, "failed to get content", err)
		dto.InternalError(c, "failed to get content")
		return
	}
	if content == nil {
		return
	}

	dto.Success(c, dto.ToContentResponse(content))
}

// UpdateContent 更新内容
// @Summary 更新内容
// @Tags Contents
// @Accept json
// @Produce json
// @Param cid path string true "内容 ID"
// @Param body body dto.UpdateContentRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/contents/{cid} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	contentID := dto.BindContentID(c)

	var req dto.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	content, err := h.loadOwned(c, userID, contentID)
	if err != nil {
		logger.Error(ctx, "failed to get content", err)
		dto.InternalError(c, "failed to update content")
		return
	}
	if content == nil {
		return
	}

	req.ApplyToContent(content)

	if err := h.contentRepo.Update(ctx, content); err != nil {
		logger.Error(ctx, "failed to update content", err)
		dto.InternalError(c, "failed to update content")
		return
	}

	dto.Success(c, dto.ToContentResponse(content))
}

// DeleteContent 删除内容
// @Summary 删除内容
// @Tags Contents
// @Param cid path string true "内容 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/contents/{cid} [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	contentID := dto.BindContentID(c)

	content, err := h.loadOwned(c, userID, contentID)
	if err != nil {
		logger.Error(ctx, "failed to get content", err)
		dto.InternalError(c, "failed to delete content")
		return
	}
	if content == nil {
		return
	}

	if err := h.contentRepo.Delete(ctx, content.ID); err != nil {
		logger.Error(ctx, "failed to delete content", err)
		dto.InternalError(c, "failed to delete content")
		return
	}

	dto.NoContent(c)
}

// loadOwned 加载并校验归属，未找到或越权时已写响应并返回 nil
func (h *ContentHandler) loadOwned(c *gin.Context, userID, contentID string) (*entity.Content, error) {
	content, err := h.contentRepo.GetByID(c.Request.Context(), contentID)
	if err != nil {
		return nil, err
	}
	// 越权访问与不存在返回同样的 404
	if content == nil || content.UserID != userID {
		dto.NotFound(c, "content not found")
		return nil, nil
	}
	return content, nil
}
