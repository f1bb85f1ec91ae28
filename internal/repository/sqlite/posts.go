package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
)

const postColumns = `id, title, description, category, author, author_img, image, created_at, updated_at`

type PostRepository struct {
	DB  *sql.DB
	log zerolog.Logger
	m   *metrics.Metrics
}

func NewPostRepository(db *sql.DB, logger zerolog.Logger, m *metrics.Metrics) *PostRepository {
	logger = logger.With().Str("component", "PostRepository").Logger()
	return &PostRepository{DB: db, log: logger, m: m}
}

func (r *PostRepository) Create(ctx context.Context, post models.Post) (models.Post, error) {
	start := time.Now()
	post.ID = uuid.NewString()

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Description, string(post.Category), post.Author, post.AuthorImg,
		nullString(post.Image), post.CreatedAt, post.UpdatedAt,
	)
	dur := time.Since(start)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Dur("duration", dur).Msg("failed to insert post")
		r.m.TechnicalErrors.WithLabelValues("db_insert_error", "critical").Inc()
		return models.Post{}, err
	}

	r.log.Info().Ctx(ctx).Str("id", post.ID).Dur("duration", dur).Msg("post created")
	return post, nil
}

// List returns every post, newest first.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to list posts")
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to close rows after query")
		}
	}(rows)

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			r.m.TechnicalErrors.WithLabelValues("db_scan_error", "critical").Inc()
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (models.Post, error) {
	post, err := scanPost(r.DB.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, models.NewNotFoundError("Blog not found")
	}
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return models.Post{}, err
	}
	return post, nil
}

// Delete removes the post and returns what was stored. An unknown id writes nothing.
func (r *PostRepository) Delete(ctx context.Context, id string) (models.Post, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_tx_error", "critical").Inc()
		return models.Post{}, err
	}
	defer func() { _ = tx.Rollback() }()

	post, err := scanPost(tx.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, models.NewNotFoundError("Blog not found")
	}
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return models.Post{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("id", id).Msg("failed to delete post")
		r.m.TechnicalErrors.WithLabelValues("db_delete_error", "critical").Inc()
		return models.Post{}, err
	}
	if err := tx.Commit(); err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_tx_error", "critical").Inc()
		return models.Post{}, err
	}

	r.log.Info().Ctx(ctx).Str("id", id).Msg("post deleted")
	return post, nil
}

func scanPost(row scanner) (models.Post, error) {
	var (
		post     models.Post
		category string
		image    sql.NullString
	)
	err := row.Scan(&post.ID, &post.Title, &post.Description, &category, &post.Author, &post.AuthorImg,
		&image, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return models.Post{}, err
	}
	post.Category = models.Category(category)
	post.Image = image.String
	return post, nil
}
