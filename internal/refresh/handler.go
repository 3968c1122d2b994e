package refresh

import (
	"caiary/internal/dto"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"

type RefreshTokenHandler struct {
	service      *RefreshTokenService
	cookieSecure bool
}

func NewRefreshTokenHandler(service *RefreshTokenService, cookieSecure bool) *RefreshTokenHandler {
	return &RefreshTokenHandler{
		service:      service,
		cookieSecure: cookieSecure,
	}
}

// SetRefreshCookie 把刷新令牌写入 httpOnly Cookie
func SetRefreshCookie(c *gin.Context, service *RefreshTokenService, token string, secure bool) {
	c.SetCookie(refreshCookieName, token, int(service.TTL().Seconds()), "/", "", secure, true)
}

// Refresh 使用刷新令牌获取新的访问令牌，新的刷新令牌写回 Cookie
// @Summary 刷新访问令牌
// @Description 使用 Cookie 或请求体中的刷新令牌获取新的访问令牌，新的刷新令牌写回 Cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body RefreshTokenRequest false "Cookie 缺省时读取"
// @Success 200 {object} response.Response{data=RefreshTokenResponse}
// @Failure 401 {object} response.Response "刷新令牌无效或已过期"
// @Router /users/login/token/refresh [post]
func (h *RefreshTokenHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	if token == "" {
		var req RefreshTokenRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}

	pair, err := h.service.Rotate(c.Request.Context(), token)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	SetRefreshCookie(c, h.service, pair.RefreshToken, h.cookieSecure)
	dto.SuccessResponse(c, RefreshTokenResponse{AccessToken: pair.AccessToken})
}

// Verify 校验访问令牌是否有效
// @Summary 校验访问令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body VerifyRequest true "访问令牌"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/login/token/verify [post]
func (h *RefreshTokenHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	claims, err := h.service.Verify(req.Token)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"user_id": claims.UserID})
}

// Logout 退出登录，?all=true 时注销该用户的全部会话
// @Summary 退出登录
// @Tags 认证
// @Produce json
// @Param all query bool false "注销全部会话"
// @Success 200 {object} response.Response
// @Router /users/logout [post]
func (h *RefreshTokenHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)

	if err := h.service.Revoke(c.Request.Context(), token, c.Query("all") == "true"); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.SetCookie("access_token", "", -1, "/", "", h.cookieSecure, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.cookieSecure, true)
	dto.SuccessResponse(c, gin.H{"message": "退出成功"})
}
