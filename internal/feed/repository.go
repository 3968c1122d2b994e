package feed

import (
	"context"

	"caiary/internal/model/article"
	"caiary/internal/model/user"

	"gorm.io/gorm"
)

type FeedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// ListVisible 查询 viewer 自己和其关注用户的日记，一条 SQL 完成
func (r *FeedRepository) ListVisible(ctx context.Context, viewerID uint) ([]article.Article, error) {
	followees := r.db.Model(&user.Follow{}).
		Select("followee_id").
		Where("follower_id = ?", viewerID)

	var arts []article.Article
	err := r.db.WithContext(ctx).
		Where("user_id IN (?) OR user_id = ?", followees, viewerID).
		Order("created DESC, id DESC").
		Find(&arts).Error
	return arts, err
}
