package article

import "time"

// Article 日记
type Article struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user"`
	Emotion  string `gorm:"size:100" json:"emotion"`
	Location string `gorm:"size:255" json:"location"`
	Menu     string `gorm:"size:255" json:"menu"`
	Weather  string `gorm:"size:100" json:"weather"`
	Song     string `gorm:"size:255" json:"song"`
	Point    int    `json:"point"`
	Content  string `gorm:"type:text" json:"content"`
	// 存储中的对象 key，没有图片时为空
	Image *string `gorm:"size:512" json:"image"`
	// 创建时间只在创建时写入一次，统一存 UTC
	Created   time.Time `gorm:"not null;index" json:"created"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}
