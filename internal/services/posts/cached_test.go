package posts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/cache"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/posts"
)

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) Create(ctx context.Context, in models.PostInput, image *models.Image) (models.Post, error) {
	args := m.Called(ctx, in, image)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *mockPostService) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostService) Get(ctx context.Context, id string) (models.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *mockPostService) Delete(ctx context.Context, id string) (models.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Post), args.Error(1)
}

type memoryCache struct {
	data    map[string][]models.Post
	deletes int
	setErr  error
}

func (c *memoryCache) Set(_ context.Context, key string, value []models.Post, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, returnValue *[]models.Post) error {
	v, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	*returnValue = v
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
	return nil
}

func TestCachedService_ListServesFromCache(t *testing.T) {
	inner := &mockPostService{}
	c := &memoryCache{data: map[string][]models.Post{}}
	svc := posts.NewCachedService(inner, c, zerolog.Nop(), time.Minute)

	list := []models.Post{{ID: "p1"}}
	inner.On("List", mock.Anything).Return(list, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, list, got)
	}
	inner.AssertExpectations(t)
}

func TestCachedService_WritesInvalidate(t *testing.T) {
	inner := &mockPostService{}
	c := &memoryCache{data: map[string][]models.Post{}}
	svc := posts.NewCachedService(inner, c, zerolog.Nop(), time.Minute)

	inner.On("List", mock.Anything).Return([]models.Post{}, nil).Once()
	inner.On("Create", mock.Anything, mock.Anything, (*models.Image)(nil)).Return(models.Post{ID: "p1"}, nil).Once()
	inner.On("List", mock.Anything).Return([]models.Post{{ID: "p1"}}, nil).Once()
	inner.On("Delete", mock.Anything, "missing").Return(models.Post{}, models.NewNotFoundError("Blog not found")).Once()

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), models.PostInput{Title: "t", Description: "d"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.deletes)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Post{{ID: "p1"}}, got)

	_, err = svc.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 1, c.deletes)

	inner.AssertExpectations(t)
}

func TestCachedService_CacheFailureFallsThrough(t *testing.T) {
	inner := &mockPostService{}
	c := &memoryCache{data: map[string][]models.Post{}, setErr: errors.New("redis down")}
	svc := posts.NewCachedService(inner, c, zerolog.Nop(), time.Minute)

	inner.On("List", mock.Anything).Return([]models.Post{{ID: "p1"}}, nil).Twice()

	for i := 0; i < 2; i++ {
		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	inner.AssertExpectations(t)
}
