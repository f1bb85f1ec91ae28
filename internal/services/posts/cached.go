package posts

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
)

const listKey = "posts:list"

type postService interface {
	Create(ctx context.Context, in models.PostInput, image *models.Image) (models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (models.Post, error)
	Delete(ctx context.Context, id string) (models.Post, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T, expiration time.Duration) error
	Get(ctx context.Context, key string, returnValue *T) error
	Delete(ctx context.Context, keys ...string) error
}

// CachedService keeps the newest-first post list in the cache and drops it on every write.
type CachedService struct {
	inner    postService
	cache    cacheClient[[]models.Post]
	logger   zerolog.Logger
	liveTime time.Duration
}

func NewCachedService(
	inner postService,
	cache cacheClient[[]models.Post],
	logger zerolog.Logger,
	liveTime time.Duration,
) *CachedService {
	return &CachedService{
		inner:    inner,
		cache:    cache,
		logger:   logger.With().Str("component", "CachedPostService").Logger(),
		liveTime: liveTime,
	}
}

func (s *CachedService) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.cache.Get(ctx, listKey, &posts); err == nil {
		s.logger.Debug().Ctx(ctx).Msg("cache hit for post list")
		return posts, nil
	}

	posts, err := s.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if err = s.cache.Set(ctx, listKey, posts, s.liveTime); err != nil {
		s.logger.Warn().Err(err).Ctx(ctx).Msg("failed to cache post list")
	}

	return posts, nil
}

func (s *CachedService) Get(ctx context.Context, id string) (models.Post, error) {
	return s.inner.Get(ctx, id)
}

func (s *CachedService) Create(ctx context.Context, in models.PostInput, image *models.Image) (models.Post, error) {
	post, err := s.inner.Create(ctx, in, image)
	if err == nil {
		s.invalidate(ctx)
	}
	return post, err
}

func (s *CachedService) Delete(ctx context.Context, id string) (models.Post, error) {
	post, err := s.inner.Delete(ctx, id)
	if err == nil {
		s.invalidate(ctx)
	}
	return post, err
}

func (s *CachedService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, listKey); err != nil {
		s.logger.Warn().Err(err).Ctx(ctx).Msg("failed to invalidate post list")
	}
}
