package article

import (
	"time"

	"caiary/internal/dto"
	"caiary/internal/model/article"

	"github.com/gin-gonic/gin"
)

// ArticleRequest 创建/修改日记的请求体
// 字段必须出现，允许为空字符串
type ArticleRequest struct {
	Emotion  *string `json:"emotion" binding:"required"`
	Location *string `json:"location" binding:"required"`
	Menu     *string `json:"menu" binding:"required"`
	Weather  *string `json:"weather" binding:"required"`
	Song     *string `json:"song" binding:"required"`
	Point    *int    `json:"point" binding:"required"`
	Content  *string `json:"content" binding:"required"`
}

// Fields 日记的可修改字段
type Fields struct {
	Emotion  string
	Location string
	Menu     string
	Weather  string
	Song     string
	Point    int
	Content  string
}

func (r *ArticleRequest) Fields() Fields {
	return Fields{
		Emotion:  *r.Emotion,
		Location: *r.Location,
		Menu:     *r.Menu,
		Weather:  *r.Weather,
		Song:     *r.Song,
		Point:    *r.Point,
		Content:  *r.Content,
	}
}

// columns 修改时写入的列，零值也会写入
func (f Fields) columns() map[string]any {
	return map[string]any{
		"emotion":  f.Emotion,
		"location": f.Location,
		"menu":     f.Menu,
		"weather":  f.Weather,
		"song":     f.Song,
		"point":    f.Point,
		"content":  f.Content,
	}
}

func (f Fields) applyTo(a *article.Article) {
	a.Emotion = f.Emotion
	a.Location = f.Location
	a.Menu = f.Menu
	a.Weather = f.Weather
	a.Song = f.Song
	a.Point = f.Point
	a.Content = f.Content
}

// MonthQuery 按年月筛选
type MonthQuery struct {
	Year  int `form:"year" json:"year" binding:"required"`
	Month int `form:"month" json:"month" binding:"required"`
}

// Payload 日记响应
type Payload struct {
	ID       uint      `json:"id"`
	Emotion  string    `json:"emotion"`
	Location string    `json:"location"`
	Menu     string    `json:"menu"`
	Weather  string    `json:"weather"`
	Song     string    `json:"song"`
	Point    int       `json:"point"`
	Content  string    `json:"content"`
	Image    *string   `json:"image"`
	User     uint      `json:"user"`
	Created  time.Time `json:"created"`
	Liked    []uint    `json:"liked"`
}

// ResolveImageURLs 把相对图片地址补全为绝对地址
func ResolveImageURLs(c *gin.Context, payloads ...*Payload) {
	for _, p := range payloads {
		if p == nil || p.Image == nil {
			continue
		}
		abs := dto.AbsoluteURL(c, *p.Image)
		p.Image = &abs
	}
}
