package relation

import (
	"context"
	"errors"
	"fmt"

	"caiary/internal/article"
	"caiary/internal/model/user"
	userPkg "caiary/internal/user"
	"caiary/packages/response"
)

const (
	StatusFollowed   = "followed"
	StatusUnfollowed = "unfollowed"
	StatusLiked      = "liked"
	StatusUnliked    = "unliked"
)

// UserReader 关系服务依赖的用户查询
type UserReader interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
	GetProfile(ctx context.Context, id uint) (*userPkg.Profile, error)
	FollowerIDs(ctx context.Context, userID uint) ([]uint, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

// ArticleReader 关系服务依赖的日记查询
type ArticleReader interface {
	GetByID(ctx context.Context, id uint) (*article.Payload, error)
}

// FollowResult 关注切换结果，目标用户资料附带 status
type FollowResult struct {
	*userPkg.Profile
	Status string `json:"status"`
}

// LikeResult 点赞切换结果，日记内容附带 status
type LikeResult struct {
	*article.Payload
	Status string `json:"status"`
}

type RelationService struct {
	repo     *RelationRepository
	users    UserReader
	articles ArticleReader
}

func NewRelationService(repo *RelationRepository, users UserReader, articles ArticleReader) *RelationService {
	return &RelationService{
		repo:     repo,
		users:    users,
		articles: articles,
	}
}

// ToggleFollow 关注或取消关注 target
func (s *RelationService) ToggleFollow(ctx context.Context, actorID, targetID uint) (*FollowResult, error) {
	// 1. 不能关注自己
	if actorID == targetID {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("不能关注自己"),
		)
	}

	// 2. 目标用户必须存在
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return nil, err
	}

	// 3. 切换关系
	followed, err := s.repo.ToggleFollow(ctx, actorID, targetID)
	if err != nil {
		return nil, wrapToggleError("关注", "用户不存在", err)
	}

	// 4. 返回最新资料
	profile, err := s.users.GetProfile(ctx, targetID)
	if err != nil {
		return nil, err
	}

	status := StatusUnfollowed
	if followed {
		status = StatusFollowed
	}
	return &FollowResult{Profile: profile, Status: status}, nil
}

// ToggleLike 点赞或取消点赞，作者也可以给自己的日记点赞
func (s *RelationService) ToggleLike(ctx context.Context, actorID, articleID uint) (*LikeResult, error) {
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		return nil, err
	}

	liked, err := s.repo.ToggleLike(ctx, actorID, articleID)
	if err != nil {
		return nil, wrapToggleError("点赞", "日记不存在", err)
	}

	payload, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	status := StatusUnliked
	if liked {
		status = StatusLiked
	}
	return &LikeResult{Payload: payload, Status: status}, nil
}

// Followers 粉丝列表
func (s *RelationService) Followers(ctx context.Context, userID uint) ([]uint, error) {
	return s.users.FollowerIDs(ctx, userID)
}

// Followings 关注列表
func (s *RelationService) Followings(ctx context.Context, userID uint) ([]uint, error) {
	return s.users.FollowingIDs(ctx, userID)
}

// Likers 点赞了某篇日记的用户
func (s *RelationService) Likers(ctx context.Context, articleID uint) ([]uint, error) {
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		return nil, err
	}

	ids, err := s.repo.LikerIDs(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("查询点赞用户失败: %w", err)
	}
	return ids, nil
}

func wrapToggleError(action, goneMsg string, err error) error {
	if errors.Is(err, ErrTargetGone) {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage(goneMsg),
		)
	}
	if errors.Is(err, ErrToggleContention) {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage(action+"操作冲突，请重试"),
			response.WithError(err),
		)
	}
	return fmt.Errorf("%s切换失败: %w", action, err)
}
