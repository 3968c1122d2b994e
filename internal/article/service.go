package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caiary/internal/model/article"
	"caiary/internal/storage"
	"caiary/packages/logger"
	"caiary/packages/response"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ArticleService struct {
	repo  *ArticleRepository
	store storage.ImageStore
	loc   *time.Location
	now   func() time.Time
}

type Option func(*ArticleService)

// WithClock 替换时钟，测试中固定创建时间
func WithClock(now func() time.Time) Option {
	return func(s *ArticleService) {
		s.now = now
	}
}

// WithLocation 设置按月筛选和展示使用的时区
func WithLocation(loc *time.Location) Option {
	return func(s *ArticleService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewArticleService(db *gorm.DB, store storage.ImageStore, opts ...Option) *ArticleService {
	s := &ArticleService{
		repo:  NewArticleRepository(db),
		store: store,
		loc:   time.UTC,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func errArticleNotFound() error {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage("日记不存在"),
	)
}

func errNotOwner(action string) error {
	return response.NewBusinessError(
		response.WithErrorCode(response.Forbidden),
		response.WithErrorMessage("只有作者本人可以"+action),
	)
}

// Create 创建日记，image 可为空
func (s *ArticleService) Create(ctx context.Context, ownerID uint, fields Fields, image *storage.Upload) (*Payload, error) {
	// 1. 先保存图片
	key, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	// 2. 写入数据库，创建时间统一存 UTC
	art := &article.Article{
		UserID:  ownerID,
		Created: s.now().UTC(),
	}
	fields.applyTo(art)
	if key != "" {
		art.Image = &key
	}

	if err := s.repo.Create(ctx, art); err != nil {
		s.removeImage(ctx, key)
		return nil, fmt.Errorf("创建日记失败: %w", err)
	}

	return s.toPayload(art, nil), nil
}

// Update 修改日记，只有作者可以修改，新图片会替换旧图片
func (s *ArticleService) Update(ctx context.Context, actorID, articleID uint, fields Fields, image *storage.Upload) (*Payload, error) {
	// 1. 先校验作者，无权限时不上传图片
	if _, err := s.findOwned(ctx, s.repo, actorID, articleID, "修改"); err != nil {
		return nil, err
	}

	// 2. 保存新图片
	key, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	// 3. 事务内重新校验，并按 id + 作者条件更新，创建时间不变
	values := fields.columns()
	if key != "" {
		values["image"] = key
	}

	var oldImage *string
	err = s.repo.Transaction(ctx, func(repo *ArticleRepository) error {
		current, err := s.findOwned(ctx, repo, actorID, articleID, "修改")
		if err != nil {
			return err
		}

		rows, err := repo.UpdateOwned(ctx, articleID, actorID, values)
		if err != nil {
			return fmt.Errorf("更新日记失败: %w", err)
		}
		if rows == 0 {
			// 校验之后被并发删除
			return errArticleNotFound()
		}

		oldImage = current.Image
		return nil
	})
	if err != nil {
		s.removeImage(ctx, key)
		return nil, err
	}

	// 4. 提交成功后再删除旧图片
	if key != "" && oldImage != nil {
		s.removeImage(ctx, *oldImage)
	}

	return s.GetByID(ctx, articleID)
}

// Delete 删除日记并返回删除前的快照
func (s *ArticleService) Delete(ctx context.Context, actorID, articleID uint) (*Payload, error) {
	var (
		snapshot *Payload
		image    *string
	)

	err := s.repo.Transaction(ctx, func(repo *ArticleRepository) error {
		art, err := s.findOwned(ctx, repo, actorID, articleID, "删除")
		if err != nil {
			return err
		}

		// 快照与删除在同一事务内完成
		payloads, err := s.buildPayloads(ctx, repo, []article.Article{*art})
		if err != nil {
			return err
		}

		rows, err := repo.DeleteOwned(ctx, articleID, actorID)
		if err != nil {
			return fmt.Errorf("删除日记失败: %w", err)
		}
		if rows == 0 {
			return errArticleNotFound()
		}

		snapshot, image = payloads[0], art.Image
		return nil
	})
	if err != nil {
		return nil, err
	}

	if image != nil {
		s.removeImage(ctx, *image)
	}

	return snapshot, nil
}

// GetByID 查询单篇日记
func (s *ArticleService) GetByID(ctx context.Context, id uint) (*Payload, error) {
	art, err := s.find(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	payloads, err := s.BuildPayloads(ctx, []article.Article{*art})
	if err != nil {
		return nil, err
	}
	return payloads[0], nil
}

// ListByOwner 查询某用户的全部日记
func (s *ArticleService) ListByOwner(ctx context.Context, ownerID uint) ([]*Payload, error) {
	if err := s.ensureOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	arts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("查询日记失败: %w", err)
	}
	return s.BuildPayloads(ctx, arts)
}

// ListByOwnerAndMonth 查询某用户在某个自然月内创建的日记
func (s *ArticleService) ListByOwnerAndMonth(ctx context.Context, ownerID uint, year, month int) ([]*Payload, error) {
	from, to, err := MonthRange(year, month, s.loc)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	arts, err := s.repo.ListByOwnerBetween(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("查询日记失败: %w", err)
	}
	return s.BuildPayloads(ctx, arts)
}

// BuildPayloads 批量组装响应，点赞列表一次查出
func (s *ArticleService) BuildPayloads(ctx context.Context, arts []article.Article) ([]*Payload, error) {
	return s.buildPayloads(ctx, s.repo, arts)
}

func (s *ArticleService) buildPayloads(ctx context.Context, repo *ArticleRepository, arts []article.Article) ([]*Payload, error) {
	payloads := make([]*Payload, 0, len(arts))
	if len(arts) == 0 {
		return payloads, nil
	}

	ids := make([]uint, 0, len(arts))
	for _, a := range arts {
		ids = append(ids, a.ID)
	}

	likers, err := repo.LikerIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("查询点赞失败: %w", err)
	}

	for i := range arts {
		payloads = append(payloads, s.toPayload(&arts[i], likers[arts[i].ID]))
	}
	return payloads, nil
}

func (s *ArticleService) toPayload(a *article.Article, liked []uint) *Payload {
	if liked == nil {
		liked = []uint{}
	}

	p := &Payload{
		ID:       a.ID,
		Emotion:  a.Emotion,
		Location: a.Location,
		Menu:     a.Menu,
		Weather:  a.Weather,
		Song:     a.Song,
		Point:    a.Point,
		Content:  a.Content,
		User:     a.UserID,
		Created:  a.Created.In(s.loc),
		Liked:    liked,
	}
	if a.Image != nil && *a.Image != "" {
		u := s.store.URL(*a.Image)
		p.Image = &u
	}
	return p
}

func (s *ArticleService) find(ctx context.Context, repo *ArticleRepository, id uint) (*article.Article, error) {
	art, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errArticleNotFound()
		}
		return nil, fmt.Errorf("查询日记失败: %w", err)
	}
	return art, nil
}

// findOwned 查找日记并校验 actorID 是作者
func (s *ArticleService) findOwned(ctx context.Context, repo *ArticleRepository, actorID, id uint, action string) (*article.Article, error) {
	art, err := s.find(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if art.UserID != actorID {
		return nil, errNotOwner(action)
	}
	return art, nil
}

func (s *ArticleService) ensureOwner(ctx context.Context, ownerID uint) error {
	exists, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("查询用户失败: %w", err)
	}
	if !exists {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
		)
	}
	return nil
}

func (s *ArticleService) saveImage(ctx context.Context, image *storage.Upload) (string, error) {
	if image == nil {
		return "", nil
	}

	key, err := s.store.Save(ctx, *image)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return "", response.NewBusinessError(
				response.WithErrorCode(response.InvalidParameter),
				response.WithErrorMessage(err.Error()),
			)
		}
		return "", fmt.Errorf("保存图片失败: %w", err)
	}
	return key, nil
}

// removeImage 清理图片失败只记录日志
func (s *ArticleService) removeImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		logger.L().Warn("删除图片失败", zap.String("key", key), zap.Error(err))
	}
}
