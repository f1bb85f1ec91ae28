//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/app"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/config"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/subscriptions"
)

var (
	testServerURL string
	db            *sql.DB
	tokens        *subscriptions.Tokens
	client        = &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	dir, err := os.MkdirTemp("", "blog-integration")
	if err != nil {
		log.Panic(err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	env := map[string]string{
		"DB_NAME":            filepath.Join(dir, "blog.db"),
		"UPLOADS_DIR":        filepath.Join(dir, "uploads"),
		"ACCESS_LOG_PATH":    filepath.Join(dir, "logs", "access.log"),
		"UNSUBSCRIBE_SECRET": "integration-secret",
		"STATS_SCHEDULE":     "@every 1h",
	}
	for k, v := range env {
		if err := os.Setenv(k, v); err != nil {
			log.Panic(err)
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	application := app.New(*cfg, zerolog.Nop(), metrics.NewMetrics("integration"))
	srvContainer, err := application.Init(context.Background())
	if err != nil {
		log.Panicf("failed to init application: %v", err)
	}

	testServer := httptest.NewServer(srvContainer.Router)
	defer func() {
		testServer.Close()
		if err := application.Stop(srvContainer); err != nil {
			log.Printf("failed to shutdown application: %v", err)
		}
	}()

	testServerURL = testServer.URL
	db = srvContainer.Db

	fmt.Println("Starting integration tests...")
	tokens = subscriptions.NewTokens(cfg.UnsubscribeSecret, testServer.URL)
	return m.Run()
}

func resetTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"subscriptions", "posts"} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoErrorf(t, err, "failed to reset %s table", table)
	}
}

type storedSubscription struct {
	ID           string
	Email        string
	Status       string
	Unsubscribed sql.NullTime
}

func fetchSubscription(t *testing.T, email string) (storedSubscription, int) {
	t.Helper()

	var cnt int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM subscriptions WHERE email = ?`, email).Scan(&cnt))
	if cnt == 0 {
		return storedSubscription{}, 0
	}

	var s storedSubscription
	err := db.QueryRow(
		`SELECT id, email, status, unsubscribed_date FROM subscriptions WHERE email = ?`, email,
	).Scan(&s.ID, &s.Email, &s.Status, &s.Unsubscribed)
	require.NoError(t, err)
	return s, cnt
}
