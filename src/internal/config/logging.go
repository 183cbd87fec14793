// FILE: actionlog/src/internal/config/logging.go
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lixenwraith/log"
)

// LogConfig controls actionlog's own diagnostics, never the action records
type LogConfig struct {
	// "none", "stdout", "stderr", "file" or "both"
	Output string `toml:"output"`

	// "debug", "info", "warn" or "error"
	Level string `toml:"level"`

	File    LogFileConfig    `toml:"file"`
	Console LogConsoleConfig `toml:"console"`
}

// LogFileConfig is used when Output is "file" or "both"
type LogFileConfig struct {
	Directory      string  `toml:"directory"`
	Name           string  `toml:"name"`
	MaxSizeKB      int64   `toml:"max_size_kb"`
	MaxTotalSizeKB int64   `toml:"max_total_size_kb"`
	RetentionHours float64 `toml:"retention_hours"` // 0 keeps files forever
}

// LogConsoleConfig is used when Output is "stdout", "stderr" or "both"
type LogConsoleConfig struct {
	// "stdout", "stderr" or "split" (warn and error to stderr)
	Target string `toml:"target"`
	// "txt" or "json"
	Format string `toml:"format"`
}

var (
	logOutputs        = []string{"none", "stdout", "stderr", "file", "both"}
	logConsoleTargets = []string{"stdout", "stderr", "split"}
	logConsoleFormats = []string{"txt", "json"}
)

// DefaultLogConfig keeps diagnostics on stderr and quiet below warn, so they
// do not mix with the action records of a normal run
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Output: "stderr",
		Level:  "warn",
		File: LogFileConfig{
			Directory:      "./log",
			Name:           "actionlog",
			MaxSizeKB:      10 * 1000,
			MaxTotalSizeKB: 100 * 1000,
			RetentionHours: 7 * 24,
		},
		Console: LogConsoleConfig{
			Target: "stderr",
			Format: "txt",
		},
	}
}

// LoggerOverrides renders the config as key=value overrides for the
// diagnostics logger. quiet turns every destination off.
func (c *LogConfig) LoggerOverrides(quiet bool) ([]string, error) {
	if quiet || c.Output == "none" {
		return []string{"disable_file=true", "enable_console=false"}, nil
	}

	level, err := loggerLevel(c.Level)
	if err != nil {
		return nil, err
	}
	overrides := []string{fmt.Sprintf("level=%d", level)}

	toFile := c.Output == "file" || c.Output == "both"
	toConsole := c.Output != "file"

	if toFile {
		overrides = append(overrides,
			"disable_file=false",
			"directory="+c.File.Directory,
			"name="+c.File.Name)
		if c.File.MaxSizeKB > 0 {
			overrides = append(overrides, fmt.Sprintf("max_size_kb=%d", c.File.MaxSizeKB))
		}
		if c.File.MaxTotalSizeKB > 0 {
			overrides = append(overrides, fmt.Sprintf("max_total_size_kb=%d", c.File.MaxTotalSizeKB))
		}
		if c.File.RetentionHours > 0 {
			overrides = append(overrides, fmt.Sprintf("retention_period_hrs=%.1f", c.File.RetentionHours))
		}
	} else {
		overrides = append(overrides, "disable_file=true")
	}

	if !toConsole {
		return append(overrides, "enable_console=false"), nil
	}

	target := c.Console.Target
	switch {
	case c.Output == "stdout" || c.Output == "stderr":
		target = c.Output
	case target == "":
		target = "stderr"
	}
	overrides = append(overrides, "enable_console=true", "console_target="+target)

	if c.Console.Format != "" {
		overrides = append(overrides, "format="+c.Console.Format)
	}
	return overrides, nil
}

func loggerLevel(level string) (int64, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int64(log.LevelDebug), nil
	case "info":
		return int64(log.LevelInfo), nil
	case "warn", "warning":
		return int64(log.LevelWarn), nil
	case "error":
		return int64(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

func validateLogConfig(cfg *LogConfig) error {
	if !slices.Contains(logOutputs, cfg.Output) {
		return fmt.Errorf("invalid log output mode: %s (want one of %s)",
			cfg.Output, strings.Join(logOutputs, ", "))
	}
	if _, err := loggerLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}
	if cfg.Console.Target != "" && !slices.Contains(logConsoleTargets, cfg.Console.Target) {
		return fmt.Errorf("invalid console target: %s", cfg.Console.Target)
	}
	if cfg.Console.Format != "" && !slices.Contains(logConsoleFormats, cfg.Console.Format) {
		return fmt.Errorf("invalid console format: %s", cfg.Console.Format)
	}
	if cfg.File.MaxSizeKB < 0 || cfg.File.MaxTotalSizeKB < 0 || cfg.File.RetentionHours < 0 {
		return fmt.Errorf("file limits must not be negative")
	}
	if (cfg.Output == "file" || cfg.Output == "both") && cfg.File.Name == "" {
		return fmt.Errorf("log file output requires a name")
	}
	return nil
}
