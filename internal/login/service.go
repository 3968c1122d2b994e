package login

import (
	"context"

	"caiary/internal/model/user"
	"caiary/internal/refresh"
	"caiary/packages/response"
)

// UserResolver 登录时查找或创建本地用户
type UserResolver interface {
	ResolveOrCreate(ctx context.Context, email, displayName string, avatarURL *string) (*user.User, error)
}

// LoginResult 登录结果
type LoginResult struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
}

type LoginService struct {
	providers map[string]IdentityProvider
	users     UserResolver
	tokens    *refresh.RefreshTokenService
}

func NewLoginService(users UserResolver, tokens *refresh.RefreshTokenService) *LoginService {
	return &LoginService{
		providers: make(map[string]IdentityProvider),
		users:     users,
		tokens:    tokens,
	}
}

// Register 注册第三方登录提供方，启动时调用，之后不再修改
func (s *LoginService) Register(name string, provider IdentityProvider) {
	s.providers[name] = provider
}

// Login 用第三方访问令牌登录
func (s *LoginService) Login(ctx context.Context, providerName, credential string) (*LoginResult, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("不支持的登录类型"),
		)
	}

	// 1. 获取第三方用户信息
	profile, err := provider.FetchProfile(ctx, credential)
	if err != nil {
		return nil, err
	}

	// 2. 查找或创建用户
	u, err := s.users.ResolveOrCreate(ctx, profile.Email, profile.Nickname, profile.ProfileImageURL)
	if err != nil {
		return nil, err
	}

	// 3. 签发令牌
	pair, err := s.tokens.Issue(ctx, refresh.TokenData{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         u,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
