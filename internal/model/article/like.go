package article

import (
	"time"

	"caiary/internal/model/user"
)

// Like 点赞表
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ArticleID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`

	// 外键，用户或日记删除时点赞随之删除
	User    *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Article *Article   `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "article_likes"
}
