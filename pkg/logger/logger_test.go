package logger

import (
	"context"
	"log/slog"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DEBUG", slog.LevelDebug},
		{"unknown falls back to warn", "bogus", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestTextHandler(t *testing.T) {
	newRecord := func(level slog.Level, msg string) slog.Record {
		return slog.NewRecord(time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), level, msg, 0)
	}

	t.Run("simple format", func(t *testing.T) {
		var buf strings.Builder
		h := &textHandler{writer: &buf, level: slog.LevelInfo}

		record := newRecord(slog.LevelInfo, "resolved agent")
		record.AddAttrs(slog.String("name", "coder"))
		require.NoError(t, h.Handle(context.Background(), record))

		assert.Equal(t, "INFO resolved agent name=coder\n", buf.String())
	})

	t.Run("verbose format includes timestamp", func(t *testing.T) {
		var buf strings.Builder
		h := &textHandler{writer: &buf, level: slog.LevelInfo, verbose: true}

		require.NoError(t, h.Handle(context.Background(), newRecord(slog.LevelInfo, "hello")))
		assert.Equal(t, "2025/06/01 12:30:00 INFO hello\n", buf.String())
	})

	t.Run("warning renders as WARN", func(t *testing.T) {
		var buf strings.Builder
		h := &textHandler{writer: &buf, level: slog.LevelDebug}

		require.NoError(t, h.Handle(context.Background(), newRecord(slog.LevelWarn, "stream closed")))
		assert.True(t, strings.HasPrefix(buf.String(), "WARN "))
	})

	t.Run("respects level threshold", func(t *testing.T) {
		h := &textHandler{level: slog.LevelWarn}
		assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("WithAttrs does not mutate the receiver", func(t *testing.T) {
		var buf strings.Builder
		h := &textHandler{writer: &buf, level: slog.LevelInfo}
		child := h.WithAttrs([]slog.Attr{slog.String("task", "t1")})

		require.NoError(t, child.Handle(context.Background(), newRecord(slog.LevelInfo, "msg")))
		assert.Contains(t, buf.String(), "task=t1")

		buf.Reset()
		require.NoError(t, h.Handle(context.Background(), newRecord(slog.LevelInfo, "msg")))
		assert.NotContains(t, buf.String(), "task=t1")
	})
}

func TestFilteringHandler(t *testing.T) {
	ownPC := func() uintptr {
		pcs := make([]uintptr, 1)
		runtime.Callers(1, pcs)
		return pcs[0]
	}()
	stdlibPC := reflect.ValueOf(strings.Contains).Pointer()

	newRecord := func(pc uintptr) slog.Record {
		return slog.NewRecord(time.Now(), slog.LevelInfo, "msg", pc)
	}

	t.Run("passes records from this module", func(t *testing.T) {
		var buf strings.Builder
		h := &filteringHandler{
			handler:  &textHandler{writer: &buf, level: slog.LevelInfo},
			minLevel: slog.LevelInfo,
		}
		require.NoError(t, h.Handle(context.Background(), newRecord(ownPC)))
		assert.Contains(t, buf.String(), "msg")
	})

	t.Run("suppresses third-party records", func(t *testing.T) {
		var buf strings.Builder
		h := &filteringHandler{
			handler:  &textHandler{writer: &buf, level: slog.LevelInfo},
			minLevel: slog.LevelInfo,
		}
		require.NoError(t, h.Handle(context.Background(), newRecord(stdlibPC)))
		require.NoError(t, h.Handle(context.Background(), newRecord(0)))
		assert.Empty(t, buf.String())
	})

	t.Run("debug level lets everything through", func(t *testing.T) {
		var buf strings.Builder
		h := &filteringHandler{
			handler:  &textHandler{writer: &buf, level: slog.LevelDebug},
			minLevel: slog.LevelDebug,
		}
		require.NoError(t, h.Handle(context.Background(), newRecord(stdlibPC)))
		assert.Contains(t, buf.String(), "msg")
	})

	t.Run("respects the level threshold", func(t *testing.T) {
		h := &filteringHandler{
			handler:  &textHandler{level: slog.LevelWarn},
			minLevel: slog.LevelWarn,
		}
		assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	})
}
