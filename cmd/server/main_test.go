package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))

	logger.Warn("listening", "addr", ":8080")
	assert.Contains(t, buf.String(), `"msg":"listening"`)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := newLogger(&bytes.Buffer{}, "verbose")
	assert.ErrorContains(t, err, "server.log_level")
}
