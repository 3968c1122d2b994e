package refresh

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"caiary/config"
	"caiary/internal/pkg"
	"caiary/internal/testutils"
	"caiary/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWT(t *testing.T) {
	t.Helper()
	original := config.Conf
	config.Conf = &config.AppConfig{JWT: config.JWTConfig{Secret: "refresh-test-secret", ExpireTime: 1}}
	t.Cleanup(func() { config.Conf = original })
}

func TestIssueAndRotate(t *testing.T) {
	setupJWT(t)
	client, mr := testutils.SetupTestRedis(t)
	repo := NewRefreshTokenRepository(client)
	svc := NewRefreshTokenService(repo, 2*time.Hour)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, TokenData{UserID: 3, Username: "yuna", Email: "yuna@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.True(t, mr.Exists(RefreshTokenPrefix+pair.RefreshToken))
	assert.Equal(t, 2*time.Hour, mr.TTL(RefreshTokenPrefix+pair.RefreshToken))
	assert.Equal(t, "3", mr.HGet(RefreshTokenPrefix+pair.RefreshToken, "user_id"))

	claims, err := pkg.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)

	rotated, err := svc.Rotate(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
	assert.False(t, mr.Exists(RefreshTokenPrefix+pair.RefreshToken))

	members, err := mr.Members(UserRefreshTokensPrefix + "3")
	require.NoError(t, err)
	assert.Equal(t, []string{rotated.RefreshToken}, members)

	// 旧令牌只能使用一次
	_, err = svc.Rotate(ctx, pair.RefreshToken)
	assert.True(t, response.HasCode(err, response.Unauthorized))

	_, err = svc.Rotate(ctx, "")
	assert.True(t, response.HasCode(err, response.Unauthorized))
}

func TestRotate_Expired(t *testing.T) {
	setupJWT(t)
	client, mr := testutils.SetupTestRedis(t)
	svc := NewRefreshTokenService(NewRefreshTokenRepository(client), time.Minute)
	ctx := context.Background()

	pair, err := svc.Issue(ctx, TokenData{UserID: 1})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = svc.Rotate(ctx, pair.RefreshToken)
	assert.True(t, response.HasCode(err, response.Unauthorized))
}

func TestRevokeAll(t *testing.T) {
	setupJWT(t)
	client, mr := testutils.SetupTestRedis(t)
	svc := NewRefreshTokenService(NewRefreshTokenRepository(client), time.Hour)
	ctx := context.Background()

	first, err := svc.Issue(ctx, TokenData{UserID: 9})
	require.NoError(t, err)
	second, err := svc.Issue(ctx, TokenData{UserID: 9})
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, first.RefreshToken, true))
	assert.False(t, mr.Exists(RefreshTokenPrefix+second.RefreshToken))
	assert.False(t, mr.Exists(UserRefreshTokensPrefix+"9"))

	// 空令牌或未知令牌不报错
	assert.NoError(t, svc.Revoke(ctx, "", false))
	assert.NoError(t, svc.Revoke(ctx, "unknown", true))
}

func TestHandlers(t *testing.T) {
	setupJWT(t)
	gin.SetMode(gin.TestMode)
	client, _ := testutils.SetupTestRedis(t)
	svc := NewRefreshTokenService(NewRefreshTokenRepository(client), time.Hour)

	r := gin.New()
	RegisterRoutes(r.Group("/users"), svc, false)

	pair, err := svc.Issue(context.Background(), TokenData{UserID: 5, Email: "x@example.com"})
	require.NoError(t, err)

	t.Run("verify", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/login/token/verify", strings.NewReader(`{"token":"`+pair.AccessToken+`"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/users/login/token/verify", strings.NewReader(`{"token":"garbage"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh from cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/login/token/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: pair.RefreshToken})
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			Data RefreshTokenResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Data.AccessToken)

		var newCookie *http.Cookie
		for _, ck := range w.Result().Cookies() {
			if ck.Name == "refresh_token" {
				newCookie = ck
			}
		}
		require.NotNil(t, newCookie)
		assert.True(t, newCookie.HttpOnly)
		assert.NotEqual(t, pair.RefreshToken, newCookie.Value)
	})

	t.Run("refresh without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/login/token/refresh", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
