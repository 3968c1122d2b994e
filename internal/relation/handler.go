package relation

import (
	"context"
	"net/http"

	"caiary/internal/article"
	"caiary/internal/dto"
	userPkg "caiary/internal/user"

	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	service *RelationService
}

func NewRelationHandler(service *RelationService) *RelationHandler {
	return &RelationHandler{service: service}
}

// ToggleFollow 关注/取消关注，已关注时再次调用会取消关注
// @Summary 关注/取消关注
// @Description 返回目标用户资料，status 为 followed 或 unfollowed，字段平铺在顶层
// @Tags 关系
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} FollowResult
// @Failure 400 {object} response.Response "不能关注自己"
// @Failure 404 {object} response.Response
// @Router /users/follow/{id} [post]
func (h *RelationHandler) ToggleFollow(c *gin.Context) {
	targetID, ok := userPkg.ParseIDParam(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	result, err := h.service.ToggleFollow(c.Request.Context(), dto.CurrentUserID(c), targetID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	// 与客户端约定：资料字段与 status 平铺在顶层
	c.JSON(http.StatusOK, result)
}

// Followers 粉丝 ID 列表
// @Summary 粉丝列表
// @Tags 关系
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]int}
// @Router /users/profile/{id}/followers [get]
func (h *RelationHandler) Followers(c *gin.Context) {
	h.respondIDs(c, "id", "无效的用户ID", h.service.Followers)
}

// Followings 关注 ID 列表
// @Summary 关注列表
// @Tags 关系
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]int}
// @Router /users/profile/{id}/followings [get]
func (h *RelationHandler) Followings(c *gin.Context) {
	h.respondIDs(c, "id", "无效的用户ID", h.service.Followings)
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞/取消点赞
// @Description 返回日记内容，status 为 liked 或 unliked，字段平铺在顶层
// @Tags 关系
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} LikeResult
// @Failure 404 {object} response.Response
// @Router /articles/{id}/like [post]
func (h *RelationHandler) ToggleLike(c *gin.Context) {
	articleID, ok := userPkg.ParseIDParam(c, "id", "无效的日记ID")
	if !ok {
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), dto.CurrentUserID(c), articleID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	article.ResolveImageURLs(c, result.Payload)
	c.JSON(http.StatusOK, result)
}

// Likers 点赞用户 ID 列表
// @Summary 点赞用户列表
// @Tags 关系
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} response.Response{data=[]int}
// @Failure 404 {object} response.Response
// @Router /articles/{id}/likers [get]
func (h *RelationHandler) Likers(c *gin.Context) {
	h.respondIDs(c, "id", "无效的日记ID", h.service.Likers)
}

func (h *RelationHandler) respondIDs(c *gin.Context, param, msg string, list func(ctx context.Context, id uint) ([]uint, error)) {
	id, ok := userPkg.ParseIDParam(c, param, msg)
	if !ok {
		return
	}

	ids, err := list(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, ids)
}
