package refresh

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes r 为 /users 分组
func RegisterRoutes(r *gin.RouterGroup, service *RefreshTokenService, cookieSecure bool) {
	handler := NewRefreshTokenHandler(service, cookieSecure)

	r.POST("/login/token/verify", handler.Verify)
	r.POST("/login/token/refresh", handler.Refresh)
	r.POST("/logout", handler.Logout)
}
