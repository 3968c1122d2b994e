package user

import (
	"context"
	"strings"

	"caiary/internal/model/user"

	"gorm.io/gorm"
)

// UserRepository 用户仓储层
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// ===== User 基础操作 =====

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) UpdateColumn(ctx context.Context, id uint, column string, value any) error {
	return r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", id).Update(column, value).Error
}

// FindByIDs 查询存在的用户，不存在的 ID 直接忽略
func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint) ([]user.User, error) {
	var users []user.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&users).Error
	return users, err
}

// SearchByUsernamePrefix 按用户名前缀搜索（精确匹配也属于前缀匹配）
func (r *UserRepository) SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Where("username LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ===== Follow 查询 =====

// FollowerIDs 关注了 userID 的用户
func (r *UserRepository) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&user.Follow{}).
		Where("followee_id = ?", userID).
		Order("follower_id ASC").
		Pluck("follower_id", &ids).Error
	return ids, err
}

// FollowingIDs userID 关注的用户
func (r *UserRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&user.Follow{}).
		Where("follower_id = ?", userID).
		Order("followee_id ASC").
		Pluck("followee_id", &ids).Error
	return ids, err
}

// FollowEdgesInvolving 批量查询与给定用户相关的所有关注关系
func (r *UserRepository) FollowEdgesInvolving(ctx context.Context, ids []uint) ([]user.Follow, error) {
	var edges []user.Follow
	if len(ids) == 0 {
		return edges, nil
	}
	err := r.db.WithContext(ctx).
		Where("follower_id IN ? OR followee_id IN ?", ids, ids).
		Order("follower_id ASC, followee_id ASC").
		Find(&edges).Error
	return edges, err
}
