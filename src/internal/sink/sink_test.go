// FILE: actionlog/src/internal/sink/sink_test.go
package sink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"actionlog/src/internal/config"
	"actionlog/src/internal/core"
	"actionlog/src/internal/format"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func newTestFormatter(t *testing.T) format.Formatter {
	t.Helper()
	f, err := format.NewTextFormatter(nil, newTestLogger())
	require.NoError(t, err)
	return f
}

// recordingHandler keeps every record it receives
type recordingHandler struct {
	entries []core.LogEntry
}

func (r *recordingHandler) Handle(entry core.LogEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingHandler) GetStats() HandlerStats {
	return HandlerStats{Type: "recording", TotalProcessed: uint64(len(r.entries))}
}

func testEntry(level core.Level, msg string) core.LogEntry {
	return core.LogEntry{
		Time:    time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC),
		Source:  "orders",
		Level:   level,
		Message: msg,
	}
}

func TestConsoleHandler(t *testing.T) {
	logger := newTestLogger()

	t.Run("DefaultsToStderr", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		h, err := NewConsoleHandlerWithWriters(config.ConsoleOutputConfig{}, logger, newTestFormatter(t), &stdout, &stderr)
		require.NoError(t, err)

		require.NoError(t, h.Handle(testEntry(core.LevelInfo, "Starting execution of ship")))

		assert.Empty(t, stdout.String())
		assert.Equal(t, "2024-03-01 08:15:00 - [INFO] - Starting execution of ship\n", stderr.String())
		assert.Equal(t, uint64(1), h.GetStats().TotalProcessed)
		assert.Equal(t, "stderr", h.GetStats().Details["target"])
	})

	t.Run("SplitTarget", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		cfg := config.ConsoleOutputConfig{Target: "split"}
		h, err := NewConsoleHandlerWithWriters(cfg, logger, newTestFormatter(t), &stdout, &stderr)
		require.NoError(t, err)

		require.NoError(t, h.Handle(testEntry(core.LevelInfo, "Starting execution of ship")))
		require.NoError(t, h.Handle(testEntry(core.LevelError, "Error occurred in ship: no stock")))

		assert.Contains(t, stdout.String(), "[INFO]")
		assert.NotContains(t, stdout.String(), "[ERROR]")
		assert.Contains(t, stderr.String(), "[ERROR] - Error occurred in ship: no stock")
	})

	t.Run("AlwaysColor", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		cfg := config.ConsoleOutputConfig{Target: "stdout", Color: "always"}
		h, err := NewConsoleHandlerWithWriters(cfg, logger, newTestFormatter(t), &stdout, &stderr)
		require.NoError(t, err)

		require.NoError(t, h.Handle(testEntry(core.LevelError, "boom")))
		require.NoError(t, h.Handle(testEntry(core.LevelInfo, "fine")))

		lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], colorRed))
		assert.True(t, strings.HasSuffix(lines[0], colorReset))
		assert.NotContains(t, lines[1], "\x1b[")
	})

	t.Run("AutoColorOnBuffer", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		cfg := config.ConsoleOutputConfig{Target: "stderr", Color: "auto"}
		h, err := NewConsoleHandlerWithWriters(cfg, logger, newTestFormatter(t), &stdout, &stderr)
		require.NoError(t, err)

		require.NoError(t, h.Handle(testEntry(core.LevelError, "boom")))
		assert.NotContains(t, stderr.String(), "\x1b[")
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		_, err := NewConsoleHandlerWithWriters(config.ConsoleOutputConfig{Target: "printer"}, logger, newTestFormatter(t), nil, nil)
		assert.Error(t, err)

		_, err = NewConsoleHandlerWithWriters(config.ConsoleOutputConfig{Color: "rainbow"}, logger, newTestFormatter(t), nil, nil)
		assert.Error(t, err)

		_, err = NewConsoleHandlerWithWriters(config.ConsoleOutputConfig{}, logger, nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestRateLimitedHandler(t *testing.T) {
	logger := newTestLogger()

	t.Run("ZeroRateIsPassthrough", func(t *testing.T) {
		next := &recordingHandler{}
		h, err := NewRateLimitedHandler(next, config.RateLimitConfig{}, logger)
		require.NoError(t, err)
		assert.Same(t, next, h)
	})

	t.Run("DropsOverBurst", func(t *testing.T) {
		next := &recordingHandler{}
		h, err := NewRateLimitedHandler(next, config.RateLimitConfig{Rate: 0.001, Burst: 2}, logger)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, h.Handle(testEntry(core.LevelInfo, "tick")))
		}

		assert.Len(t, next.entries, 2)
		stats := h.GetStats()
		assert.Equal(t, uint64(3), stats.TotalDropped)
		assert.Equal(t, "recording", stats.Type)
		assert.Equal(t, 2, stats.Details["burst"])
	})

	t.Run("ExemptErrors", func(t *testing.T) {
		next := &recordingHandler{}
		cfg := config.RateLimitConfig{Rate: 0.001, Burst: 1, ExemptErrors: true}
		h, err := NewRateLimitedHandler(next, cfg, logger)
		require.NoError(t, err)

		require.NoError(t, h.Handle(testEntry(core.LevelInfo, "first")))
		require.NoError(t, h.Handle(testEntry(core.LevelInfo, "dropped")))
		require.NoError(t, h.Handle(testEntry(core.LevelError, "kept")))

		require.Len(t, next.entries, 2)
		assert.Equal(t, "kept", next.entries[1].Message)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		_, err := NewRateLimitedHandler(nil, config.RateLimitConfig{Rate: 1}, logger)
		assert.Error(t, err)

		_, err = NewRateLimitedHandler(&recordingHandler{}, config.RateLimitConfig{Rate: -1}, logger)
		assert.Error(t, err)
	})
}

func TestFilteredHandler(t *testing.T) {
	logger := newTestLogger()

	t.Run("NoFiltersIsPassthrough", func(t *testing.T) {
		next := &recordingHandler{}
		h, err := NewFilteredHandler(next, nil, logger)
		require.NoError(t, err)
		assert.Same(t, next, h)
	})

	t.Run("DropsExcluded", func(t *testing.T) {
		next := &recordingHandler{}
		configs := []config.FilterConfig{{Type: config.FilterTypeExclude, Patterns: []string{"healthcheck"}}}
		h, err := NewFilteredHandler(next, configs, logger)
		require.NoError(t, err)

		require.NoError(t, h.Handle(testEntry(core.LevelInfo, "Starting execution of healthcheck")))
		require.NoError(t, h.Handle(testEntry(core.LevelInfo, "Starting execution of ship")))

		require.Len(t, next.entries, 1)
		assert.Equal(t, "Starting execution of ship", next.entries[0].Message)
		assert.Equal(t, uint64(1), h.GetStats().TotalDropped)
		assert.Contains(t, h.GetStats().Details, "filters")
	})

	t.Run("InvalidPattern", func(t *testing.T) {
		_, err := NewFilteredHandler(&recordingHandler{}, []config.FilterConfig{{Patterns: []string{"["}}}, logger)
		assert.Error(t, err)
	})
}
