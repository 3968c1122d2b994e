package article

import (
	"context"
	"time"

	"caiary/internal/model/article"
	"caiary/internal/model/user"

	"gorm.io/gorm"
)

// ArticleRepository 日记仓储层
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// 列表统一按创建时间倒序
const listOrder = "created DESC, id DESC"

// ===== Article 基础操作 =====

func (r *ArticleRepository) FindByID(ctx context.Context, id uint) (*article.Article, error) {
	var art article.Article
	if err := r.db.WithContext(ctx).First(&art, id).Error; err != nil {
		return nil, err
	}
	return &art, nil
}

func (r *ArticleRepository) Create(ctx context.Context, art *article.Article) error {
	return r.db.WithContext(ctx).Create(art).Error
}

// WithTx 返回绑定到事务的仓储
func (r *ArticleRepository) WithTx(tx *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: tx}
}

// Transaction 在事务中执行 fn，fn 内必须使用传入的仓储
func (r *ArticleRepository) Transaction(ctx context.Context, fn func(repo *ArticleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// UpdateOwned 仅当日记属于 ownerID 时更新给定列，返回影响行数
// 日记已被删除或不属于 ownerID 时返回 0，不会重新插入
func (r *ArticleRepository) UpdateOwned(ctx context.Context, id, ownerID uint, values map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&article.Article{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(values)
	return res.RowsAffected, res.Error
}

// DeleteOwned 仅当日记属于 ownerID 时删除日记及其点赞，返回删除的日记行数
// 需在事务中调用
func (r *ArticleRepository) DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&article.Article{})
	if res.Error != nil || res.RowsAffected == 0 {
		return res.RowsAffected, res.Error
	}

	if err := r.db.WithContext(ctx).Where("article_id = ?", id).Delete(&article.Like{}).Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func (r *ArticleRepository) ListByOwner(ctx context.Context, ownerID uint) ([]article.Article, error) {
	var arts []article.Article
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order(listOrder).
		Find(&arts).Error
	return arts, err
}

// ListByOwnerBetween 查询 [from, to) 区间内创建的日记
func (r *ArticleRepository) ListByOwnerBetween(ctx context.Context, ownerID uint, from, to time.Time) ([]article.Article, error) {
	var arts []article.Article
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created >= ? AND created < ?", ownerID, from, to).
		Order(listOrder).
		Find(&arts).Error
	return arts, err
}

// ===== Like 查询 =====

// LikerIDs 批量查询点赞用户，key 为日记 ID
func (r *ArticleRepository) LikerIDs(ctx context.Context, articleIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	var likes []article.Like
	err := r.db.WithContext(ctx).
		Where("article_id IN ?", articleIDs).
		Order("article_id ASC, user_id ASC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}

	for _, l := range likes {
		result[l.ArticleID] = append(result[l.ArticleID], l.UserID)
	}
	return result, nil
}

func (r *ArticleRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}
