package feed

import (
	"context"
	"fmt"

	articlePkg "caiary/internal/article"
	"caiary/internal/model/article"
)

// PayloadBuilder 把日记组装为响应
type PayloadBuilder interface {
	BuildPayloads(ctx context.Context, arts []article.Article) ([]*articlePkg.Payload, error)
}

type FeedService struct {
	repo     *FeedRepository
	payloads PayloadBuilder
}

func NewFeedService(repo *FeedRepository, payloads PayloadBuilder) *FeedService {
	return &FeedService{repo: repo, payloads: payloads}
}

// Compose 组装 viewer 的时间线：自己和关注的人的日记，按创建时间倒序
func (s *FeedService) Compose(ctx context.Context, viewerID uint) ([]*articlePkg.Payload, error) {
	arts, err := s.repo.ListVisible(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("查询时间线失败: %w", err)
	}
	return s.payloads.BuildPayloads(ctx, arts)
}
