package login

import (
	"caiary/internal/refresh"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes r 为 /users 分组
func RegisterRoutes(r *gin.RouterGroup, service *LoginService, tokens *refresh.RefreshTokenService, cookieSecure bool) {
	handler := NewLoginHandler(service, tokens, cookieSecure)

	r.POST("/login/kakao", handler.Handle("kakao"))
}
