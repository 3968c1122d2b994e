package user

import (
	"caiary/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册用户资料相关路由，r 为 /users 分组
func RegisterRoutes(r *gin.RouterGroup, service *UserService) {
	handler := NewUserHandler(service)

	users := r.Group("")
	users.Use(middleware.JWTAuth())
	{
		users.GET("/me", handler.Me)                       // 自己的资料
		users.GET("/profile", handler.GetProfileByEmail)   // 按邮箱查询 ?email=
		users.GET("/profile/:id", handler.GetProfile)      // 按 ID 查询
		users.GET("/search", handler.Search)               // 按用户名搜索 ?username=
		users.POST("/list", handler.List)                  // 按 ID 列表批量查询
		users.PUT("/username/:id", handler.UpdateUsername) // 修改用户名
	}
}
