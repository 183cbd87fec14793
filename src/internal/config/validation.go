// FILE: actionlog/src/internal/config/validation.go
package config

import "fmt"

var validLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// validateConfig is the centralized validator for the entire configuration
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateLogConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if !validLevels[cfg.Actions.Level] {
		return fmt.Errorf("actions config: invalid level: %s", cfg.Actions.Level)
	}

	if err := validateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	return nil
}
