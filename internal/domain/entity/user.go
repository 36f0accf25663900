package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 用户实体
type User struct {
	ID               string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email            string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string     `json:"-" gorm:"type:varchar(255);not null"` // 不在 JSON 中暴露
	Name             string     `json:"name" gorm:"type:varchar(255)"`
	Plan             PlanType   `json:"plan" gorm:"type:varchar(16);default:'FREE'"`
	UsageCurrent     int        `json:"usage_current" gorm:"default:0"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// NewUser 创建新用户，默认 FREE 计划
func NewUser(email, name string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Name:      name,
		Plan:      PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPremium 检查用户是否为付费计划
func (u *User) IsPremium() bool {
	return u.Plan == PlanPremium
}

// IsConfirmed 检查邮箱是否已确认
func (u *User) IsConfirmed() bool {
	return u.EmailConfirmedAt != nil
}

// UsageLimit 返回当前计划的月度配额，nil 表示无限制
func (u *User) UsageLimit() *int {
	return PlanInfoFor(u.Plan).MonthlyLimit
}

// SetPassword 设置并散列密码
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
