package user

import (
	"strconv"

	"caiary/internal/dto"
	"caiary/internal/model/user"
	"caiary/packages/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *UserService
}

func NewUserHandler(service *UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ParseIDParam 解析路径中的 ID 参数
func ParseIDParam(c *gin.Context, name, msg string) (uint, bool) {
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

// Me 获取自己的资料
// @Summary 获取自己的资料
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Profile}
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), dto.CurrentUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, profile)
}

// GetProfile 按 ID 获取资料
// @Summary 按 ID 获取资料
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=Profile}
// @Failure 404 {object} response.Response
// @Router /users/profile/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := ParseIDParam(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, profile)
}

// GetProfileByEmail 按邮箱获取资料
// @Summary 按邮箱获取资料
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param email query string true "邮箱"
// @Success 200 {object} response.Response{data=Profile}
// @Failure 404 {object} response.Response
// @Router /users/profile [get]
func (h *UserHandler) GetProfileByEmail(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := h.service.FindByEmail(ctx, c.Query("email"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	profile, err := h.service.GetProfile(ctx, u.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, profile)
}

// Search 按用户名搜索
// @Summary 按用户名搜索
// @Description 前缀匹配，完全匹配的排在前面
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param username query string true "用户名"
// @Success 200 {object} response.Response{data=[]Profile}
// @Failure 400 {object} response.Response
// @Router /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.service.SearchByUsername(ctx, c.Query("username"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	h.respondProfiles(c, users)
}

// List 按 ID 列表批量获取资料
// @Summary 按 ID 列表批量获取资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ListRequest true "ID 列表"
// @Success 200 {object} response.Response{data=[]Profile}
// @Failure 400 {object} response.Response
// @Router /users/list [post]
func (h *UserHandler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	users, err := h.service.FindByIDs(c.Request.Context(), req.IDList)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	h.respondProfiles(c, users)
}

// UpdateUsername 修改用户名
// @Summary 修改用户名
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param body body UpdateUsernameRequest true "新用户名"
// @Success 200 {object} response.Response{data=Profile}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/username/{id} [put]
func (h *UserHandler) UpdateUsername(c *gin.Context) {
	id, ok := ParseIDParam(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	var req UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.service.UpdateUsername(ctx, dto.CurrentUserID(c), id, req.Username); err != nil {
		dto.HandleError(c, err)
		return
	}

	profile, err := h.service.GetProfile(ctx, id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, profile)
}

func (h *UserHandler) respondProfiles(c *gin.Context, users []user.User) {
	profiles, err := h.service.BuildProfiles(c.Request.Context(), users)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, profiles)
}
