package login

import (
	"net/http"
	"strings"

	"caiary/internal/dto"
	"caiary/internal/refresh"

	"github.com/gin-gonic/gin"
)

// LoginRequest 访问令牌也可以放在请求体中
type LoginRequest struct {
	AccessToken string `json:"access_token"`
}

// LoginResponse 登录成功响应，与客户端约定为扁平结构
type LoginResponse struct {
	Success     bool   `json:"success"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

type LoginHandler struct {
	service      *LoginService
	tokens       *refresh.RefreshTokenService
	cookieSecure bool
}

func NewLoginHandler(service *LoginService, tokens *refresh.RefreshTokenService, cookieSecure bool) *LoginHandler {
	return &LoginHandler{
		service:      service,
		tokens:       tokens,
		cookieSecure: cookieSecure,
	}
}

// credential 读取 Authorization: Bearer <第三方访问令牌>，没有则读取请求体
func credential(c *gin.Context) string {
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	var req LoginRequest
	_ = c.ShouldBindJSON(&req)
	return req.AccessToken
}

// Handle 返回指定提供方的登录处理函数
// @Summary Kakao 登录
// @Description 用 Kakao 访问令牌登录，首次登录自动创建账号；刷新令牌写入 httpOnly Cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer <Kakao 访问令牌>"
// @Param body body LoginRequest false "请求头缺省时读取"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} response.Response "Kakao 令牌无效"
// @Router /users/login/kakao [post]
func (h *LoginHandler) Handle(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.service.Login(c.Request.Context(), provider, credential(c))
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		refresh.SetRefreshCookie(c, h.tokens, result.RefreshToken, h.cookieSecure)
		c.JSON(http.StatusOK, LoginResponse{
			Success:     true,
			Email:       result.User.Email,
			AccessToken: result.AccessToken,
		})
	}
}
