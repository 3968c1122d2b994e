package article

import (
	"caiary/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 设置日记相关路由
func RegisterRoutes(r *gin.RouterGroup, service *ArticleService) {
	handler := NewArticleHandler(service)

	articles := r.Group("/articles")
	articles.Use(middleware.JWTAuth())
	{
		articles.POST("", handler.Create)                                  // 创建日记
		articles.GET("", handler.ListMine)                                 // 按年月获取自己的日记
		articles.GET("/friend/:user_id", handler.ListByUser)               // 某用户的全部日记
		articles.GET("/friend/:user_id/month", handler.ListByUserAndMonth) // 某用户某月的日记
		articles.GET("/:id", handler.Get)                                  // 单篇日记
		articles.PUT("/:id", handler.Update)                               // 修改日记
		articles.DELETE("/:id", handler.Delete)                            // 删除日记
	}
}
