package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/repository/sqlite"
)

func TestPostRepository_Lifecycle(t *testing.T) {
	repo := sqlite.NewPostRepository(newTestDB(t), zerolog.Nop(), metrics.NewMetrics("repo_test"))
	ctx := context.Background()
	base := time.Now().UTC()

	first, err := repo.Create(ctx, models.Post{
		Title: "First", Description: "one", Category: models.CategoryStartup,
		Author: "A", AuthorImg: "/a.png", CreatedAt: base, UpdatedAt: base,
	})
	require.NoError(t, err)

	second, err := repo.Create(ctx, models.Post{
		Title: "Second", Description: "two", Category: models.CategoryLifestyle,
		Author: "B", AuthorImg: "/b.png", Image: "/uploads/1_x.png",
		CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second),
	})
	require.NoError(t, err)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
	assert.Equal(t, "/uploads/1_x.png", posts[0].Image)
	assert.Empty(t, posts[1].Image)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)

	_, err = repo.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	posts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPostRepository_ListEmpty(t *testing.T) {
	repo := sqlite.NewPostRepository(newTestDB(t), zerolog.Nop(), metrics.NewMetrics("repo_test"))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}
