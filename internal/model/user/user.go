package user

import "time"

// User 用户模型，通过第三方登录自动创建
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username        string    `gorm:"size:150;index" json:"username"`
	ProfileImageURL *string   `gorm:"column:profile_image_url;size:512" json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
