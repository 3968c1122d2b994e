package user

import "caiary/internal/model/user"

// Profile 用户资料，附带关注和粉丝 ID 列表
type Profile struct {
	ID              uint    `json:"id"`
	Email           string  `json:"email"`
	Username        string  `json:"username"`
	ProfileImageURL *string `json:"profile_image_url"`
	Followers       []uint  `json:"followers"`
	Followings      []uint  `json:"followings"`
}

func newProfile(u *user.User) *Profile {
	return &Profile{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		ProfileImageURL: u.ProfileImageURL,
		Followers:       []uint{},
		Followings:      []uint{},
	}
}

// ListRequest 按 ID 列表批量查询
type ListRequest struct {
	IDList []uint `json:"id_list" binding:"required,min=1"`
}

// UpdateUsernameRequest 修改用户名
type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required,max=150"`
}
