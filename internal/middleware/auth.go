package middleware

import (
	"errors"
	"strings"

	"caiary/internal/dto"
	"caiary/internal/pkg"
	"caiary/packages/response"

	"github.com/gin-gonic/gin"
)

// extractToken 优先读取 Authorization header，其次读取 access_token cookie
func extractToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return "", errors.New("认证格式错误")
		}
		return token, nil
	}

	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token, nil
	}

	return "", errors.New("未提供认证令牌")
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		claims, err := pkg.ParseAccessToken(tokenString)
		if err != nil {
			msg := "无效的认证令牌"
			if errors.Is(err, pkg.ErrExpiredToken) {
				msg = "认证令牌已过期"
			}
			abortUnauthorized(c, msg)
			return
		}

		// 将用户信息存入上下文
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage(msg),
	))
	c.Abort()
}
