package article

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"caiary/internal/dto"
	"caiary/internal/storage"
	"caiary/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ArticleHandler struct {
	service *ArticleService
}

func NewArticleHandler(service *ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

func parseID(c *gin.Context, name, msg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage(msg),
		))
		return 0, false
	}
	return uint(id), true
}

// bindArticle 解析 multipart（data 字段为 JSON，image 为可选文件）或 JSON 请求体
func bindArticle(c *gin.Context) (*ArticleRequest, *multipart.FileHeader, error) {
	var req ArticleRequest

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	data := c.PostForm("data")
	if data == "" {
		return nil, nil, errors.New("缺少 data 字段")
	}
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return nil, nil, errors.New("data 字段不是合法的 JSON")
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return nil, nil, err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return &req, nil, nil
		}
		return nil, nil, err
	}
	return &req, fileHeader, nil
}

// openUpload 打开上传的文件，调用方负责关闭
func openUpload(fh *multipart.FileHeader) (*storage.Upload, func(), error) {
	if fh == nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &storage.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}, func() { f.Close() }, nil
}

// Create 创建日记
// @Summary 创建日记
// @Description multipart 表单：data 为日记 JSON，image 为可选图片；也接受 JSON 请求体
// @Tags 日记
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param data formData string true "日记 JSON"
// @Param image formData file false "图片"
// @Success 200 {object} response.Response{data=Payload}
// @Failure 400 {object} response.Response
// @Router /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	req, fh, err := bindArticle(c)
	if err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	upload, closeFn, err := openUpload(fh)
	if err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	defer closeFn()

	payload, err := h.service.Create(c.Request.Context(), dto.CurrentUserID(c), req.Fields(), upload)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ResolveImageURLs(c, payload)
	dto.SuccessResponse(c, payload)
}

// Update 修改日记
// @Summary 修改日记
// @Tags 日记
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Param data formData string true "日记 JSON"
// @Param image formData file false "新图片"
// @Success 200 {object} response.Response{data=Payload}
// @Failure 403 {object} response.Response "不是作者"
// @Failure 404 {object} response.Response
// @Router /articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "无效的日记ID")
	if !ok {
		return
	}

	req, fh, err := bindArticle(c)
	if err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	upload, closeFn, err := openUpload(fh)
	if err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	defer closeFn()

	payload, err := h.service.Update(c.Request.Context(), dto.CurrentUserID(c), id, req.Fields(), upload)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ResolveImageURLs(c, payload)
	dto.SuccessResponse(c, payload)
}

// Delete 删除日记，返回删除前的内容
// @Summary 删除日记
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} response.Response{data=Payload} "删除前的日记"
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "无效的日记ID")
	if !ok {
		return
	}

	payload, err := h.service.Delete(c.Request.Context(), dto.CurrentUserID(c), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ResolveImageURLs(c, payload)
	dto.SuccessResponse(c, payload)
}

// Get 获取单篇日记
// @Summary 获取单篇日记
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} response.Response{data=Payload}
// @Failure 404 {object} response.Response
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "无效的日记ID")
	if !ok {
		return
	}

	payload, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ResolveImageURLs(c, payload)
	dto.SuccessResponse(c, payload)
}

// ListMine 按年月获取自己的日记
// @Summary 按年月获取自己的日记
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param year query int true "年"
// @Param month query int true "月"
// @Success 200 {object} response.Response{data=[]Payload}
// @Failure 400 {object} response.Response
// @Router /articles [get]
func (h *ArticleHandler) ListMine(c *gin.Context) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	h.respondList(c, func() ([]*Payload, error) {
		return h.service.ListByOwnerAndMonth(c.Request.Context(), dto.CurrentUserID(c), q.Year, q.Month)
	})
}

// ListByUser 获取某用户的全部日记
// @Summary 获取某用户的全部日记
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]Payload}
// @Failure 404 {object} response.Response
// @Router /articles/friend/{user_id} [get]
func (h *ArticleHandler) ListByUser(c *gin.Context) {
	ownerID, ok := parseID(c, "user_id", "无效的用户ID")
	if !ok {
		return
	}

	h.respondList(c, func() ([]*Payload, error) {
		return h.service.ListByOwner(c.Request.Context(), ownerID)
	})
}

// ListByUserAndMonth 按年月获取某用户的日记，年月可以放在查询参数或 JSON 请求体中
// @Summary 按年月获取某用户的日记
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Param year query int false "年"
// @Param month query int false "月"
// @Param body body MonthQuery false "查询参数缺省时读取"
// @Success 200 {object} response.Response{data=[]Payload}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /articles/friend/{user_id}/month [get]
func (h *ArticleHandler) ListByUserAndMonth(c *gin.Context) {
	ownerID, ok := parseID(c, "user_id", "无效的用户ID")
	if !ok {
		return
	}

	var q MonthQuery
	var err error
	if c.Query("year") == "" && c.Request.ContentLength > 0 {
		err = c.ShouldBindJSON(&q)
	} else {
		err = c.ShouldBindQuery(&q)
	}
	if err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	h.respondList(c, func() ([]*Payload, error) {
		return h.service.ListByOwnerAndMonth(c.Request.Context(), ownerID, q.Year, q.Month)
	})
}

func (h *ArticleHandler) respondList(c *gin.Context, list func() ([]*Payload, error)) {
	payloads, err := list()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ResolveImageURLs(c, payloads...)
	dto.SuccessResponse(c, payloads)
}
