package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/config"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/repository/sqlite"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/logger"
)

func testConfig(dir string) config.Config {
	return config.Config{
		UnsubscribeSecret: "secret",
		PublicBaseURL:     "http://blog.test",
		UploadsDir:        filepath.Join(dir, "uploads"),
		AccessLogPath:     filepath.Join(dir, "logs", "access.log"),
		StatsSchedule:     "0 */5 * * * *",
		Server:            config.Server{Host: "127.0.0.1", HTTPPort: "0", ReadTimeout: 10},
		DB:                config.Db{Dialect: "sqlite", Source: filepath.Join(dir, "blog.db")},
	}
}

func TestServiceContainer_ReleaseClosesOpenResources(t *testing.T) {
	dir := t.TempDir()

	db, err := sqlite.Open(context.Background(), "sqlite", filepath.Join(dir, "release.db"))
	require.NoError(t, err)
	accessLog, err := logger.NewFileLogger(filepath.Join(dir, "access.log"))
	require.NoError(t, err)

	c := ServiceContainer{Db: db, AccessLog: accessLog}
	c.release(zerolog.Nop())

	assert.Error(t, db.Ping())
}

func TestApp_InitFailureReleasesDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	// a regular file where the uploads directory should be
	cfg.UploadsDir = filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(cfg.UploadsDir, []byte("x"), 0o600))

	a := New(cfg, zerolog.Nop(), metrics.NewMetrics("app_init_fail_test"))
	_, err := a.Init(context.Background())
	require.Error(t, err)

	// the same file opens and migrates again once the failed attempt let go of it
	cfg = testConfig(dir)
	a = New(cfg, zerolog.Nop(), metrics.NewMetrics("app_init_ok_test"))
	c, err := a.Init(context.Background())
	require.NoError(t, err)

	assert.Nil(t, c.RabbitConn)
	assert.Nil(t, c.Redis)
	require.NoError(t, a.Stop(c))
}
