package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/nuance-coach/internal/observability"
)

func TestLoggerFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	observability.Init(&buf, "debug")

	ctx := observability.WithRequestID(context.Background(), "req-123")
	observability.LoggerFromContext(ctx).Info("hello", "flow", "interpret")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, "interpret", line["flow"])
	assert.Equal(t, "hello", line["msg"])
}

func TestLoggerFromContextWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	observability.Init(&buf, "info")

	observability.LoggerFromContext(context.Background()).Info("plain")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	_, ok := line["request_id"]
	assert.False(t, ok)
}

func TestInitRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	observability.Init(&buf, "warn")

	observability.Logger().Info("dropped")
	assert.Zero(t, buf.Len())

	observability.Logger().Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, observability.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel(""))
}
