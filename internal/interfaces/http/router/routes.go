// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 认证管理
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/confirm", h.Auth.ConfirmEmail)
	}

	// 套餐与模板目录，无需登录
	v1.GET("/plans", h.Plan.ListPlans)
	v1.GET("/templates/:type", h.Plan.ListTemplates)

	// 文案生成
	v1.POST("/generate", h.Generation.Generate)

	// 内容管理
	contents := v1.Group("/contents")
	{
		contents.GET("", h.Content.ListContents)
		contents.POST("", h.Content.CreateContent)
		contents.GET("/:cid", h.Content.GetContent)
		contents.PUT("/:cid", h.Content.UpdateContent)
		contents.DELETE("/:cid", h.Content.DeleteContent)
	}

	// 用户管理
	users := v1.Group("/users")
	{
		users.GET("/me", h.User.GetMe)
		users.PUT("/me", h.User.UpdateMe)
		users.GET("/me/usage", h.User.GetUsage)
	}
}
