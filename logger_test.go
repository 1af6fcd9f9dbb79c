package bitvec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLogCommand(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)
	defer SetLogger(nil)

	GetLogger().WithKey("bitvec:k").LogCommand(context.Background(), "setbit", errors.New("boom"))

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "redis command failed", record["msg"])
	assert.Equal(t, "bitvec:k", record["key"])
	assert.Equal(t, "setbit", record["op"])
	assert.Equal(t, "boom", record["error"])
}

func TestLoggerDefaultsToNoop(t *testing.T) {
	SetLogger(nil)
	l := GetLogger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestNewJSONLoggerLevel(t *testing.T) {
	l := NewJSONLogger(slog.LevelWarn)
	require.NotNil(t, l)
	ctx := context.Background()
	assert.True(t, l.Enabled(ctx, slog.LevelError))
	assert.True(t, l.Enabled(ctx, slog.LevelWarn))
	assert.False(t, l.Enabled(ctx, slog.LevelInfo))
	_, ok := l.Handler().(*slog.JSONHandler)
	assert.True(t, ok)
}
