// Package entity 定义领域实体
package entity

// PlanType 订阅计划类型
type PlanType string

const (
	PlanFree    PlanType = "FREE"
	PlanPremium PlanType = "PREMIUM"
)

// ContentType 文案内容类型
type ContentType string

const (
	ContentTypeBlog    ContentType = "blog"
	ContentTypeSocial  ContentType = "social"
	ContentTypeEmail   ContentType = "email"
	ContentTypeProduct ContentType = "product"
)

// IsValid 检查内容类型是否合法
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeBlog, ContentTypeSocial, ContentTypeEmail, ContentTypeProduct:
		return true
	}
	return false
}

// PlanInfo 计划的配额与权益定义
//
// MonthlyLimit 和 HistoryLimit 为 nil 表示无限制。
type PlanInfo struct {
	Type         PlanType `json:"type"`
	Name         string   `json:"name"`
	MonthlyLimit *int     `json:"monthly_limit"`
	HistoryLimit *int     `json:"history_limit"`
	Features     []string `json:"features"`
}

var (
	freeMonthlyLimit = 10
	freeHistoryLimit = 10

	// Plans 所有计划的静态定义，按升级顺序排列
	Plans = []PlanInfo{
		{
			Type:         PlanFree,
			Name:         "Free",
			MonthlyLimit: &freeMonthlyLimit,
			HistoryLimit: &freeHistoryLimit,
			Features: []string{
				"10 generations per month",
				"Basic templates",
				"Last 10 history items",
			},
		},
		{
			Type:         PlanPremium,
			Name:         "Premium",
			MonthlyLimit: nil,
			HistoryLimit: nil,
			Features: []string{
				"Unlimited generations",
				"All templates including premium",
				"Full history",
			},
		},
	}
)

// PlanInfoFor 返回指定计划的定义，未知计划按 FREE 处理
func PlanInfoFor(plan PlanType) PlanInfo {
	for _, p := range Plans {
		if p.Type == plan {
			return p
		}
	}
	return Plans[0]
}
