package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caiary/internal/pkg"
	"caiary/packages/response"
)

// RefreshTokenService 签发、轮换和撤销令牌
type RefreshTokenService struct {
	repo *RefreshTokenRepository
	ttl  time.Duration
}

func NewRefreshTokenService(repo *RefreshTokenRepository, ttl time.Duration) *RefreshTokenService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RefreshTokenService{repo: repo, ttl: ttl}
}

// TTL 刷新令牌有效期
func (s *RefreshTokenService) TTL() time.Duration {
	return s.ttl
}

func errUnauthorized(msg string) error {
	return response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage(msg),
	)
}

// Issue 为用户签发访问令牌和刷新令牌
func (s *RefreshTokenService) Issue(ctx context.Context, data TokenData) (*TokenPair, error) {
	// 1. 生成 access token
	accessToken, err := pkg.GenerateAccessToken(data.UserID, data.Username, data.Email)
	if err != nil {
		return nil, fmt.Errorf("生成访问令牌失败: %w", err)
	}

	// 2. 生成并存储 refresh token
	refreshToken, err := pkg.GenerateRandomToken()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, refreshToken, data, s.ttl); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Rotate 用刷新令牌换取新的令牌对，旧令牌立即失效
func (s *RefreshTokenService) Rotate(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, errUnauthorized("未找到刷新令牌")
	}

	tokenData, err := s.repo.Consume(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if tokenData == nil {
		return nil, errUnauthorized("刷新令牌无效或已过期")
	}

	return s.Issue(ctx, *tokenData)
}

// Verify 校验访问令牌
func (s *RefreshTokenService) Verify(accessToken string) (*pkg.Claims, error) {
	claims, err := pkg.ParseAccessToken(accessToken)
	if err != nil {
		if errors.Is(err, pkg.ErrExpiredToken) {
			return nil, errUnauthorized("令牌已过期")
		}
		return nil, errUnauthorized("令牌无效")
	}
	return claims, nil
}

// Revoke 撤销刷新令牌，all 为 true 时撤销该用户的所有会话
func (s *RefreshTokenService) Revoke(ctx context.Context, refreshToken string, all bool) error {
	if refreshToken == "" {
		return nil
	}

	tokenData, err := s.repo.Consume(ctx, refreshToken)
	if err != nil {
		return err
	}
	if all && tokenData != nil {
		return s.repo.DeleteAllByUserID(ctx, tokenData.UserID)
	}
	return nil
}
