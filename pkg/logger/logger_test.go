package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/blog-newsletter-api/pkg/logger"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := logger.NewLogger(path, "logger_test", "debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())

	l.Info().Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"logger_test"`)
	assert.Contains(t, string(data), "hello")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := logger.NewLogger("", "logger_test", "loud")
	assert.Error(t, err)
}

func TestNewLogger_EmptyLevelDefaultsToInfo(t *testing.T) {
	l, err := logger.NewLogger("", "logger_test", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
