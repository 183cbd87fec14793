// FILE: actionlog/src/internal/config/output.go
package config

import (
	"fmt"
	"time"
)

// Line shape produced by the default text formatter
const (
	DefaultTextTemplate    = "{{FmtTime .Timestamp}} - [{{.Level}}] - {{.Message}}"
	DefaultTimestampFormat = time.DateTime
)

// OutputConfig describes the console handler attached to a channel for each
// wrapped call
type OutputConfig struct {
	Console ConsoleOutputConfig  `toml:"console"`
	Text    TextFormatterOptions `toml:"text"`

	RateLimit RateLimitConfig `toml:"rate_limit"`

	// Every filter must pass for a record to be written
	Filters []FilterConfig `toml:"filters"`
}

type ConsoleOutputConfig struct {
	// "stdout", "stderr" or "split"
	Target string `toml:"target"`

	// Level colouring: "never", "always", "auto"
	Color string `toml:"color"`
}

type TextFormatterOptions struct {
	Template        string `toml:"template"`
	TimestampFormat string `toml:"timestamp_format"`
}

// RateLimitConfig caps records per second delivered to the output handler.
// Rate 0 disables limiting.
type RateLimitConfig struct {
	Rate         float64 `toml:"rate"`
	Burst        int64   `toml:"burst"`
	ExemptErrors bool    `toml:"exempt_errors"`
}

// DefaultOutputConfig mirrors a plain console stream handler
func DefaultOutputConfig() *OutputConfig {
	return &OutputConfig{
		Console: ConsoleOutputConfig{
			Target: "stderr",
			Color:  "never",
		},
		Text: *DefaultTextFormatterOptions(),
	}
}

func DefaultTextFormatterOptions() *TextFormatterOptions {
	return &TextFormatterOptions{
		Template:        DefaultTextTemplate,
		TimestampFormat: DefaultTimestampFormat,
	}
}

func validateOutputConfig(cfg *OutputConfig) error {
	switch cfg.Console.Target {
	case "stdout", "stderr", "split":
	default:
		return fmt.Errorf("invalid console target: %s", cfg.Console.Target)
	}

	switch cfg.Console.Color {
	case "never", "always", "auto", "":
	default:
		return fmt.Errorf("invalid console color mode: %s", cfg.Console.Color)
	}

	if cfg.RateLimit.Rate < 0 {
		return fmt.Errorf("rate limit must not be negative: %v", cfg.RateLimit.Rate)
	}
	if cfg.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit burst must not be negative: %d", cfg.RateLimit.Burst)
	}

	for i := range cfg.Filters {
		if err := validateFilter(i, &cfg.Filters[i]); err != nil {
			return err
		}
	}

	return nil
}
