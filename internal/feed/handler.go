package feed

import (
	"caiary/internal/article"
	"caiary/internal/dto"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	service *FeedService
}

func NewFeedHandler(service *FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

// Feed 获取时间线
// @Summary 时间线
// @Description 自己和关注的人的日记，按创建时间倒序
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]article.Payload}
// @Router /articles/all [get]
func (h *FeedHandler) Feed(c *gin.Context) {
	payloads, err := h.service.Compose(c.Request.Context(), dto.CurrentUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	article.ResolveImageURLs(c, payloads...)
	dto.SuccessResponse(c, payloads)
}
