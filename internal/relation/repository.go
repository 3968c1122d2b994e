package relation

import (
	"context"
	"errors"

	"caiary/internal/model/article"
	"caiary/internal/model/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 同一条边被并发切换时的最大重试次数
const maxToggleAttempts = 5

var (
	// ErrToggleContention 多次重试仍未完成切换
	ErrToggleContention = errors.New("关系切换冲突，请重试")
	// ErrTargetGone 被关注的用户或被点赞的日记在切换时已不存在
	ErrTargetGone = errors.New("关系目标不存在")
)

// RelationRepository 关注、点赞关系仓储层
type RelationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

// ToggleFollow 切换 follower -> followee 的关注关系，返回切换后是否处于关注状态
func (r *RelationRepository) ToggleFollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return r.toggle(ctx,
		func(tx *gorm.DB) (bool, error) {
			return rowExists(tx, &user.User{}, followeeID)
		},
		func(tx *gorm.DB) *gorm.DB {
			return tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&user.Follow{})
		},
		func(tx *gorm.DB) *gorm.DB {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&user.Follow{FollowerID: followerID, FolloweeID: followeeID})
		},
	)
}

// ToggleLike 切换点赞，返回切换后是否处于点赞状态
func (r *RelationRepository) ToggleLike(ctx context.Context, userID, articleID uint) (bool, error) {
	return r.toggle(ctx,
		func(tx *gorm.DB) (bool, error) {
			return rowExists(tx, &article.Article{}, articleID)
		},
		func(tx *gorm.DB) *gorm.DB {
			return tx.Where("user_id = ? AND article_id = ?", userID, articleID).Delete(&article.Like{})
		},
		func(tx *gorm.DB) *gorm.DB {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&article.Like{UserID: userID, ArticleID: articleID})
		},
	)
}

// toggle 在一个事务里做比较并交换：
// 删除成功说明原来存在，结果为移除；否则确认目标仍存在后插入，插入成功结果为添加；
// 两者都没有影响行时说明并发请求刚插入了同一条边，重新开始一轮
// 目标在校验后被并发删除时，外键约束使插入失败，同样返回 ErrTargetGone
func (r *RelationRepository) toggle(ctx context.Context, targetExists func(tx *gorm.DB) (bool, error), remove, insert func(tx *gorm.DB) *gorm.DB) (bool, error) {
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		var added, done bool

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := remove(tx)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				added, done = false, true
				return nil
			}

			exists, err := targetExists(tx)
			if err != nil {
				return err
			}
			if !exists {
				return ErrTargetGone
			}

			res = insert(tx)
			if res.Error != nil {
				if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
					return ErrTargetGone
				}
				return res.Error
			}
			if res.RowsAffected > 0 {
				added, done = true, true
			}
			return nil
		})
		if err != nil {
			return false, err
		}
		if done {
			return added, nil
		}
	}

	return false, ErrToggleContention
}

func rowExists(tx *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	err := tx.Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// LikerIDs 点赞了某篇日记的用户
func (r *RelationRepository) LikerIDs(ctx context.Context, articleID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&article.Like{}).
		Where("article_id = ?", articleID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
