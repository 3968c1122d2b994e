package article

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"caiary/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestRouter 注册与线上相同的路径，用固定用户代替 JWT 认证
func newTestRouter(svc *ArticleService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewArticleHandler(svc)

	g := r.Group("/articles", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/friend/:user_id", h.ListByUser)
	g.GET("/friend/:user_id/month", h.ListByUserAndMonth)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func multipartRequest(t *testing.T, method, url, data string, withImage bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != "" {
		require.NoError(t, mw.WriteField("data", data))
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

const validData = `{"emotion":"joy","location":"Busan","menu":"","weather":"rain","song":"","point":5,"content":"beach day"}`

func TestHandler_CreateMultipart(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner := testutils.CreateTestUser(db)
	r := newTestRouter(svc, owner.ID)

	w, body := doRequest(t, r, multipartRequest(t, http.MethodPost, "/articles", validData, true))
	require.Equal(t, http.StatusOK, w.Code, body.Message)
	assert.True(t, body.Success)

	var p Payload
	require.NoError(t, json.Unmarshal(body.Data, &p))
	assert.Equal(t, "beach day", p.Content)
	assert.Equal(t, owner.ID, p.User)
	require.NotNil(t, p.Image)
	assert.True(t, strings.HasPrefix(*p.Image, "http://example.com/media/articles/"), *p.Image)
}

func TestHandler_CreateValidation(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner := testutils.CreateTestUser(db)
	r := newTestRouter(svc, owner.ID)

	tests := []struct {
		name string
		data string
	}{
		{"missing data field", ""},
		{"broken json", "{not json"},
		{"missing point", `{"emotion":"joy","location":"","menu":"","weather":"","song":"","content":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := doRequest(t, r, multipartRequest(t, http.MethodPost, "/articles", tt.data, false))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandler_UpdateJSONAndForbidden(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner := testutils.CreateTestUser(db)
	stranger := testutils.CreateTestUser(db)
	art := testutils.CreateTestArticle(db, owner.ID, testutils.WithContent("before"))

	url := "/articles/" + jsonID(art.ID)

	req := httptest.NewRequest(http.MethodPut, url, strings.NewReader(validData))
	req.Header.Set("Content-Type", "application/json")
	w, _ := doRequest(t, newTestRouter(svc, stranger.ID), req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodPut, url, strings.NewReader(validData))
	req.Header.Set("Content-Type", "application/json")
	w, body := doRequest(t, newTestRouter(svc, owner.ID), req)
	require.Equal(t, http.StatusOK, w.Code, body.Message)

	var p Payload
	require.NoError(t, json.Unmarshal(body.Data, &p))
	assert.Equal(t, "beach day", p.Content)
}

func TestHandler_MonthQueries(t *testing.T) {
	svc, db, _ := newTestService(t)
	owner := testutils.CreateTestUser(db)
	r := newTestRouter(svc, owner.ID)

	w, body := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/articles?year=2024&month=13", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)

	w, _ = doRequest(t, r, httptest.NewRequest(http.MethodGet, "/articles?year=2024", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = doRequest(t, r, httptest.NewRequest(http.MethodGet, "/articles?year=2024&month=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(body.Data))

	// 年月也可以放在请求体中
	req := httptest.NewRequest(http.MethodGet, "/articles/friend/"+jsonID(owner.ID)+"/month", strings.NewReader(`{"year":2024,"month":2}`))
	req.Header.Set("Content-Type", "application/json")
	w, body = doRequest(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, body.Message)

	w, _ = doRequest(t, r, httptest.NewRequest(http.MethodGet, "/articles/friend/9999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, r, httptest.NewRequest(http.MethodGet, "/articles/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
