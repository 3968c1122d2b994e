package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"caiary/config"
	"caiary/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	original := config.Conf
	config.Conf = &config.AppConfig{JWT: config.JWTConfig{Secret: "middleware-secret", ExpireTime: 1}}
	t.Cleanup(func() { config.Conf = original })

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	r := setupRouter(t)

	token, err := pkg.GenerateAccessToken(7, "jisoo", "jisoo@example.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
	}{
		{name: "bearer header", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "cookie", cookie: token, wantStatus: http.StatusOK},
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "bad scheme", header: "Token " + token, wantStatus: http.StatusUnauthorized},
		{name: "tampered", header: "Bearer " + token + "x", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, float64(7), body["user_id"])
			} else {
				assert.Equal(t, false, body["success"])
			}
		})
	}
}
