package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"caiary/internal/model/user"
	"caiary/packages/response"

	"gorm.io/gorm"
)

// 用户名搜索返回的最大条数
const searchLimit = 50

type UserService struct {
	db   *gorm.DB
	repo *UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:   db,
		repo: NewUserRepository(db),
	}
}

func notFoundError(msg string) error {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage(msg),
	)
}

func invalidError(msg string) error {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
	)
}

// ResolveOrCreate 第三方登录后按邮箱查找或创建用户
// 已存在的用户只同步头像，用户名保持不变
func (s *UserService) ResolveOrCreate(ctx context.Context, email, displayName string, avatarURL *string) (*user.User, error) {
	if email == "" {
		return nil, invalidError("邮箱不能为空")
	}

	var resolved *user.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// 1. 按邮箱查找
		existing, err := repo.FindByEmail(ctx, email)
		if err == nil {
			// 2. 头像变化时更新
			if !sameURL(existing.ProfileImageURL, avatarURL) {
				if err := repo.UpdateColumn(ctx, existing.ID, "profile_image_url", avatarURL); err != nil {
					return err
				}
				existing.ProfileImageURL = avatarURL
			}
			resolved = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 3. 不存在则创建
		created := &user.User{
			Email:           email,
			Username:        displayName,
			ProfileImageURL: avatarURL,
		}
		if err := repo.Create(ctx, created); err != nil {
			return err
		}
		resolved = created
		return nil
	})
	if err != nil {
		// 并发首次登录时邮箱唯一索引冲突，对方已创建，重新读取即可
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, findErr := s.repo.FindByEmail(ctx, email); findErr == nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("查找或创建用户失败: %w", err)
	}

	return resolved, nil
}

func sameURL(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// FindByID 按 ID 查询
func (s *UserService) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("用户不存在")
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return u, nil
}

// FindByEmail 按邮箱查询
func (s *UserService) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalidError("请输入邮箱")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("用户不存在")
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return u, nil
}

// SearchByUsername 用户名前缀搜索，完全匹配的排在前面
func (s *UserService) SearchByUsername(ctx context.Context, username string) ([]user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalidError("请输入用户名")
	}

	users, err := s.repo.SearchByUsernamePrefix(ctx, username, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("搜索用户失败: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Username == username && users[j].Username != username
	})
	return users, nil
}

// FindByIDs 批量查询，按请求顺序返回存在的用户
func (s *UserService) FindByIDs(ctx context.Context, ids []uint) ([]user.User, error) {
	if len(ids) == 0 {
		return nil, invalidError("ID 列表不能为空")
	}

	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("批量查询用户失败: %w", err)
	}

	byID := make(map[uint]user.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	result := make([]user.User, 0, len(found))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			result = append(result, u)
			delete(byID, id)
		}
	}
	return result, nil
}

// UpdateUsername 修改用户名，只允许修改自己的
func (s *UserService) UpdateUsername(ctx context.Context, actorID, targetID uint, username string) (*user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalidError("用户名不能为空")
	}

	target, err := s.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.ID != actorID {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("只能修改自己的用户名"),
		)
	}

	if err := s.repo.UpdateColumn(ctx, target.ID, "username", username); err != nil {
		return nil, fmt.Errorf("更新用户名失败: %w", err)
	}
	target.Username = username
	return target, nil
}

// FollowerIDs 粉丝 ID 列表
func (s *UserService) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.repo.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询粉丝失败: %w", err)
	}
	return ids, nil
}

// FollowingIDs 关注 ID 列表
func (s *UserService) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.repo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询关注失败: %w", err)
	}
	return ids, nil
}

// GetProfile 查询单个用户资料
func (s *UserService) GetProfile(ctx context.Context, id uint) (*Profile, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profiles, err := s.BuildProfiles(ctx, []user.User{*u})
	if err != nil {
		return nil, err
	}
	return profiles[0], nil
}

// BuildProfiles 批量组装用户资料，关注关系一次查出
func (s *UserService) BuildProfiles(ctx context.Context, users []user.User) ([]*Profile, error) {
	profiles := make([]*Profile, 0, len(users))
	if len(users) == 0 {
		return profiles, nil
	}

	ids := make([]uint, 0, len(users))
	byID := make(map[uint]*Profile, len(users))
	for i := range users {
		p := newProfile(&users[i])
		profiles = append(profiles, p)
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	edges, err := s.repo.FollowEdgesInvolving(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("查询关注关系失败: %w", err)
	}
	for _, e := range edges {
		if p, ok := byID[e.FolloweeID]; ok {
			p.Followers = append(p.Followers, e.FollowerID)
		}
		if p, ok := byID[e.FollowerID]; ok {
			p.Followings = append(p.Followings, e.FolloweeID)
		}
	}

	return profiles, nil
}
