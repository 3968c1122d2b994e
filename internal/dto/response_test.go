package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	res "caiary/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	cases := map[res.ResponseCode]int{
		res.ParseError:       http.StatusBadRequest,
		res.InvalidParameter: http.StatusBadRequest,
		res.NotFound:         http.StatusNotFound,
		res.Forbidden:        http.StatusForbidden,
		res.Unauthorized:     http.StatusUnauthorized,
		res.Fail:             http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusOf(code), "code=%d", code)
	}
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("business error keeps message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleError(c, res.NewBusinessError(
			res.WithErrorCode(res.NotFound),
			res.WithErrorMessage("日记不存在"),
		))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "日记不存在")
	})

	t.Run("infrastructure error is hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleError(c, errors.New("dial tcp: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestValidationErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type request struct {
		IDList []uint `json:"id_list" binding:"required,min=1"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			ValidationErrorResponse(c, err)
			return
		}
		SuccessResponse(c, req.IDList)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Field string `json:"field"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "id_list", body.Data.Field)
	assert.Contains(t, body.Message, "id_list")
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Username":        "username",
		"IDList":          "id_list",
		"ProfileImageURL": "profile_image_url",
		"AccessToken":     "access_token",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnakeCase(in))
	}
}
