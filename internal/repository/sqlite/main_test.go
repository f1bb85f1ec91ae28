package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(db))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newSubscriptionRepo(t *testing.T) *sqlite.SubscriptionRepository {
	t.Helper()
	return sqlite.NewSubscriptionRepository(newTestDB(t), zerolog.Nop(), metrics.NewMetrics("repo_test"))
}

func newSubscription(email string, status models.Status, created time.Time) models.Subscription {
	return models.Subscription{
		Email:            email,
		Status:           status,
		SubscriptionDate: created,
		Source:           models.DefaultSource,
		IPAddress:        "10.0.0.1",
		UserAgent:        "test-agent",
		CreatedAt:        created,
		UpdatedAt:        created,
	}
}
