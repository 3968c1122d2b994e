package relation

import (
	"caiary/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册关注、点赞相关路由
func RegisterRoutes(r *gin.RouterGroup, service *RelationService) {
	handler := NewRelationHandler(service)

	users := r.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.POST("/follow/:id", handler.ToggleFollow)          // 关注/取消关注
		users.GET("/profile/:id/followers", handler.Followers)   // 粉丝列表
		users.GET("/profile/:id/followings", handler.Followings) // 关注列表
	}

	articles := r.Group("/articles")
	articles.Use(middleware.JWTAuth())
	{
		articles.POST("/:id/like", handler.ToggleLike) // 点赞/取消点赞
		articles.GET("/:id/likers", handler.Likers)    // 点赞用户列表
	}
}
