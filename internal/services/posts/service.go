package posts

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
	"github.com/Nazarious-ucu/blog-newsletter-api/pkg/messaging"
)

type PostRepository interface {
	Create(ctx context.Context, post models.Post) (models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	Delete(ctx context.Context, id string) (models.Post, error)
}

type ImageStorage interface {
	Save(original string, r io.Reader) (string, error)
	Remove(publicPath string) error
}

type EventPublisher interface {
	PublishPost(ctx context.Context, routingKey string, event messaging.PostEvent) error
}

type Service struct {
	repo    PostRepository
	storage ImageStorage
	events  EventPublisher
	log     zerolog.Logger
	m       *metrics.Metrics
	now     func() time.Time
}

func NewService(
	repo PostRepository,
	storage ImageStorage,
	events EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		events:  events,
		log:     logger.With().Str("component", "PostService").Logger(),
		m:       m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create validates input, fills defaults, stores the optional image and persists the post.
func (s *Service) Create(ctx context.Context, in models.PostInput, image *models.Image) (models.Post, error) {
	post := models.Post{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    models.Category(strings.TrimSpace(in.Category)),
		Author:      strings.TrimSpace(in.Author),
		AuthorImg:   strings.TrimSpace(in.AuthorImg),
	}
	if post.Title == "" || post.Description == "" {
		return models.Post{}, models.NewValidationError("Title and description are required")
	}

	if post.Category == "" {
		post.Category = models.CategoryStartup
	}
	if !post.Category.Valid() {
		return models.Post{}, models.NewValidationError("Invalid category. Must be: Startup, Technology, or Lifestyle")
	}
	if post.Author == "" {
		post.Author = models.DefaultAuthor
	}
	if post.AuthorImg == "" {
		post.AuthorImg = models.DefaultAuthorImg
	}

	if image != nil {
		path, err := s.storage.Save(image.Filename, image.Content)
		if err != nil {
			s.log.Error().Err(err).Ctx(ctx).Str("file", image.Filename).Msg("failed to store image")
			s.m.TechnicalErrors.WithLabelValues("upload_error", "critical").Inc()
			return models.Post{}, models.NewStorageError("Error uploading image")
		}
		post.Image = path
	}

	now := s.now()
	post.CreatedAt = now
	post.UpdatedAt = now

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		s.discardImage(ctx, post.Image)
		return models.Post{}, err
	}

	s.m.PostsCreated.WithLabelValues(string(created.Category)).Inc()
	s.publish(ctx, messaging.PostCreatedKey, created)
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]models.Post, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (models.Post, error) {
	if id == "" {
		return models.Post{}, models.NewValidationError("Blog ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the post and the image it uploaded.
func (s *Service) Delete(ctx context.Context, id string) (models.Post, error) {
	if id == "" {
		return models.Post{}, models.NewValidationError("Blog ID is required")
	}

	post, err := s.repo.Delete(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	s.discardImage(ctx, post.Image)
	s.m.PostsDeleted.Inc()
	s.publish(ctx, messaging.PostDeletedKey, post)
	return post, nil
}

func (s *Service) discardImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.storage.Remove(path); err != nil {
		s.log.Warn().Err(err).Ctx(ctx).Str("image", path).Msg("image left on disk")
	}
}

func (s *Service) publish(ctx context.Context, routingKey string, post models.Post) {
	event := messaging.PostEvent{
		ID:         post.ID,
		Title:      post.Title,
		Category:   string(post.Category),
		OccurredAt: s.now(),
	}
	if err := s.events.PublishPost(ctx, routingKey, event); err != nil {
		s.log.Error().Err(err).Ctx(ctx).Str("routing_key", routingKey).Msg("event not published")
	}
}
