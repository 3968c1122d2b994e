package login

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"caiary/packages/response"

	"golang.org/x/oauth2"
)

// ExternalProfile 第三方返回的用户信息
type ExternalProfile struct {
	Email           string
	Nickname        string
	ProfileImageURL *string
}

// IdentityProvider 用第三方访问令牌换取用户信息
type IdentityProvider interface {
	FetchProfile(ctx context.Context, accessToken string) (*ExternalProfile, error)
}

func authFailure(msg string) error {
	return response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage(msg),
	)
}

// KakaoProvider 通过 Kakao 用户信息接口校验访问令牌
type KakaoProvider struct {
	apiBase string
	timeout time.Duration
	// 底层 HTTP 客户端，测试时替换
	base *http.Client
}

func NewKakaoProvider(apiBase string, timeout time.Duration) *KakaoProvider {
	return &KakaoProvider{
		apiBase: strings.TrimRight(apiBase, "/"),
		timeout: timeout,
		base:    http.DefaultClient,
	}
}

// kakaoUser /v2/user/me 响应
type kakaoUser struct {
	ID           int64         `json:"id"`
	KakaoAccount *kakaoAccount `json:"kakao_account"`
	Code         int           `json:"code"`
	Msg          string        `json:"msg"`
	Error        string        `json:"error"`
}

type kakaoAccount struct {
	Email   string `json:"email"`
	Profile struct {
		Nickname        string `json:"nickname"`
		ProfileImageURL string `json:"profile_image_url"`
	} `json:"profile"`
}

func (p *KakaoProvider) FetchProfile(ctx context.Context, accessToken string) (*ExternalProfile, error) {
	if accessToken == "" {
		return nil, authFailure("缺少访问令牌")
	}

	// 1. 构造带 Bearer 令牌的客户端
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	client.Timeout = p.timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+"/v2/user/me", nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// 2. 请求用户信息
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 Kakao 用户信息失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("读取 Kakao 响应失败: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("Kakao 服务异常: status=%d", resp.StatusCode)
	}

	// 3. 解析响应
	var ku kakaoUser
	if err := json.Unmarshal(body, &ku); err != nil {
		return nil, authFailure("无效的访问令牌")
	}
	if resp.StatusCode != http.StatusOK || ku.Error != "" || ku.Code < 0 {
		return nil, authFailure("无效的访问令牌")
	}
	if ku.KakaoAccount == nil || ku.KakaoAccount.Email == "" {
		return nil, authFailure("无效的访问令牌")
	}

	profile := &ExternalProfile{
		Email:    ku.KakaoAccount.Email,
		Nickname: ku.KakaoAccount.Profile.Nickname,
	}
	if u := ku.KakaoAccount.Profile.ProfileImageURL; u != "" {
		profile.ProfileImageURL = &u
	}
	return profile, nil
}
