package refresh

// RefreshTokenRequest 刷新令牌请求，优先使用 Cookie 中的令牌
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenResponse 刷新令牌响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// VerifyRequest 校验访问令牌
type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// TokenPair 登录或刷新后签发的令牌
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
