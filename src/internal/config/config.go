// FILE: actionlog/src/internal/config/config.go
package config

// Config is the complete actionlog configuration
type Config struct {
	// Suppress all console output from the CLI itself
	Quiet bool `toml:"quiet"`

	// Application diagnostics logger
	Logging LogConfig `toml:"logging"`

	// Decorator message templates and channel threshold
	Actions ActionConfig `toml:"actions"`

	// Output handler attached around each wrapped call
	Output OutputConfig `toml:"output"`
}

// ActionConfig holds the decorator templates. An empty template keeps the
// decorator's built-in message.
type ActionConfig struct {
	StartMessage    string `toml:"start_message"`
	CompleteMessage string `toml:"complete_message"`
	ErrorMessage    string `toml:"error_message"`

	// Registry-wide threshold: "debug", "info", "warn", "error"
	Level string `toml:"level"`
}

func defaults() *Config {
	return &Config{
		Quiet:   false,
		Logging: *DefaultLogConfig(),
		Actions: ActionConfig{
			Level: "debug",
		},
		Output: *DefaultOutputConfig(),
	}
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return defaults()
}
