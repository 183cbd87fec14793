// FILE: actionlog/src/internal/filter/filter_test.go
package filter

import (
	"sync"
	"testing"

	"actionlog/src/internal/config"
	"actionlog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

var (
	chargeStarted = core.LogEntry{Source: "shop/billing", Level: core.LevelInfo, Message: "Starting execution of charge"}
	chargeDone    = core.LogEntry{Source: "shop/billing", Level: core.LevelInfo, Message: "Execution of charge completed"}
	chargeFailed  = core.LogEntry{Source: "shop/billing", Level: core.LevelError, Message: "Error occurred in charge: card declined"}
	shipStarted   = core.LogEntry{Source: "shop/shipping", Level: core.LevelInfo, Message: "Starting execution of ship"}
)

func TestNewFilter(t *testing.T) {
	logger := newTestLogger()

	t.Run("Defaults", func(t *testing.T) {
		f, err := NewFilter(config.FilterConfig{Patterns: []string{"charge"}}, logger)
		require.NoError(t, err)
		assert.Equal(t, config.FilterTypeInclude, f.kind)
		assert.Equal(t, config.FilterLogicOr, f.logic)
		assert.Equal(t, config.FilterFieldRecord, f.field)
		assert.Equal(t, []string{"charge"}, f.Patterns())
	})

	t.Run("InvalidRegex", func(t *testing.T) {
		f, err := NewFilter(config.FilterConfig{Patterns: []string{"["}}, logger)
		assert.Nil(t, f)
		assert.ErrorContains(t, err, "invalid regex pattern[0]")
	})
}

func TestFilter_Apply(t *testing.T) {
	logger := newTestLogger()

	tests := []struct {
		name  string
		cfg   config.FilterConfig
		entry core.LogEntry
		want  bool
	}{
		{
			name:  "NoPatternsPassesEverything",
			cfg:   config.FilterConfig{Type: config.FilterTypeInclude},
			entry: shipStarted,
			want:  true,
		},
		{
			name:  "RecordMatchesAcrossFields",
			cfg:   config.FilterConfig{Patterns: []string{"^shop/billing ERROR .*declined$"}},
			entry: chargeFailed,
			want:  true,
		},
		{
			name:  "ChannelInclude",
			cfg:   config.FilterConfig{Field: config.FilterFieldChannel, Patterns: []string{"^shop/billing$"}},
			entry: chargeStarted,
			want:  true,
		},
		{
			name:  "ChannelIncludeOtherUnit",
			cfg:   config.FilterConfig{Field: config.FilterFieldChannel, Patterns: []string{"^shop/billing$"}},
			entry: shipStarted,
			want:  false,
		},
		{
			name:  "ChannelIgnoresMessage",
			cfg:   config.FilterConfig{Field: config.FilterFieldChannel, Patterns: []string{"charge"}},
			entry: chargeStarted,
			want:  false,
		},
		{
			name:  "LevelKeepsFailuresOnly",
			cfg:   config.FilterConfig{Field: config.FilterFieldLevel, Patterns: []string{"^ERROR$"}},
			entry: chargeDone,
			want:  false,
		},
		{
			name:  "LevelKeepsFailure",
			cfg:   config.FilterConfig{Field: config.FilterFieldLevel, Patterns: []string{"^ERROR$"}},
			entry: chargeFailed,
			want:  true,
		},
		{
			name:  "MessageExcludeStarts",
			cfg:   config.FilterConfig{Type: config.FilterTypeExclude, Field: config.FilterFieldMessage, Patterns: []string{"^Starting execution"}},
			entry: chargeStarted,
			want:  false,
		},
		{
			name:  "MessageExcludeKeepsCompletion",
			cfg:   config.FilterConfig{Type: config.FilterTypeExclude, Field: config.FilterFieldMessage, Patterns: []string{"^Starting execution"}},
			entry: chargeDone,
			want:  true,
		},
		{
			name:  "AndNeedsEveryPattern",
			cfg:   config.FilterConfig{Logic: config.FilterLogicAnd, Field: config.FilterFieldMessage, Patterns: []string{"charge", "completed"}},
			entry: chargeStarted,
			want:  false,
		},
		{
			name:  "AndAllMatch",
			cfg:   config.FilterConfig{Logic: config.FilterLogicAnd, Field: config.FilterFieldMessage, Patterns: []string{"charge", "completed"}},
			entry: chargeDone,
			want:  true,
		},
		{
			name:  "OrAnyMatch",
			cfg:   config.FilterConfig{Field: config.FilterFieldMessage, Patterns: []string{"refund", "charge"}},
			entry: chargeStarted,
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.cfg, logger)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Apply(tt.entry))
		})
	}
}

func TestFilter_UpdatePatterns(t *testing.T) {
	f, err := NewFilter(config.FilterConfig{Field: config.FilterFieldChannel, Patterns: []string{"billing"}}, newTestLogger())
	require.NoError(t, err)

	assert.False(t, f.Apply(shipStarted))

	require.NoError(t, f.UpdatePatterns([]string{"shipping"}))
	assert.True(t, f.Apply(shipStarted))
	assert.Equal(t, []string{"shipping"}, f.Patterns())

	assert.Error(t, f.UpdatePatterns([]string{"("}))
	assert.True(t, f.Apply(shipStarted), "failed update keeps previous patterns")
	assert.Equal(t, []string{"shipping"}, f.Patterns())

	stats := f.GetStats()
	assert.Equal(t, uint64(3), stats["total_processed"])
	assert.Equal(t, uint64(2), stats["total_matched"])
	assert.Equal(t, uint64(1), stats["total_dropped"])
	assert.Equal(t, config.FilterFieldChannel, stats["field"])
}

func TestFilter_UpdateWhileApplying(t *testing.T) {
	f, err := NewFilter(config.FilterConfig{Field: config.FilterFieldMessage, Patterns: []string{"charge"}}, newTestLogger())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				f.Apply(chargeStarted)
			}
		}()
	}
	for j := 0; j < 50; j++ {
		require.NoError(t, f.UpdatePatterns([]string{"charge", "ship"}))
	}
	wg.Wait()

	assert.Equal(t, uint64(800), f.GetStats()["total_processed"])
	assert.Equal(t, uint64(0), f.GetStats()["total_dropped"])
}
