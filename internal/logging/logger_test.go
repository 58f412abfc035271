package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerPrefixAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, slog.LevelInfo)

	l.Debug("hidden")
	l.Info("loaded", "nodes", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="[godoxy] loaded"`)
	assert.Contains(t, out, "nodes=3")
}

func TestWithDefaultArgs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, slog.LevelDebug)

	ctx := WithDefaultArgs(context.Background(), "phase", "groups")
	ctx = WithDefaultArgs(ctx, "run", 1)
	l.WarnCtx(ctx, "failed", "refid", "group__a")

	out := buf.String()
	assert.Contains(t, out, "refid=group__a")
	assert.Contains(t, out, "phase=groups")
	assert.Contains(t, out, "run=1")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	Nop().Error("discarded")
}
