package handler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"copygen-ai-api/internal/domain/entity"
	"copygen-ai-api/internal/domain/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserRepo 内存用户仓储
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *fakeUserRepo) IncrementUsage(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.UsageCurrent++
	}
	return nil
}

func (r *fakeUserRepo) ConfirmEmail(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		now := time.Now()
		u.EmailConfirmedAt = &now
	}
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

// fakeContentRepo 内存内容仓储
type fakeContentRepo struct {
	mu       sync.Mutex
	contents map[string]*entity.Content
	seq      int
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{contents: make(map[string]*entity.Content)}
}

func (r *fakeContentRepo) Create(ctx context.Context, content *entity.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if content.ID == "" {
		r.seq++
		content.ID = fmt.Sprintf("content-%d", r.seq)
	}
	cp := *content
	r.contents[content.ID] = &cp
	return nil
}

func (r *fakeContentRepo) GetByID(ctx context.Context, id string) (*entity.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contents[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContentRepo) ListByUser(ctx context.Context, userID string, filter repository.ContentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Content], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []*entity.Content
	for _, c := range r.contents {
		if c.UserID != userID {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		cp := *c
		items = append(items, &cp)
	}
	// 按创建时间倒序
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := int64(len(items))
	start := pagination.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + pagination.Limit()
	if end > len(items) {
		end = len(items)
	}
	return repository.NewPagedResult(items[start:end], total, pagination), nil
}

func (r *fakeContentRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.contents {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeContentRepo) Update(ctx context.Context, content *entity.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *content
	r.contents[content.ID] = &cp
	return nil
}

func (r *fakeContentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contents, id)
	return nil
}

// fakeTransactor 直接执行回调，不做真正的事务
type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// withUser 模拟认证中间件注入的用户信息
func withUser(userID string, plan entity.PlanType) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("plan", string(plan))
		c.Next()
	}
}
