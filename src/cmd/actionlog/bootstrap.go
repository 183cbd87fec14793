// FILE: actionlog/src/cmd/actionlog/bootstrap.go
package main

import (
	"fmt"
	"io"

	"actionlog/src/internal/actionlog"
	"actionlog/src/internal/channel"
	"actionlog/src/internal/config"
	"actionlog/src/internal/core"
	"actionlog/src/internal/format"
	"actionlog/src/internal/sink"

	"github.com/lixenwraith/log"
)

// bootstrapDecorator builds the registry, output handler and decorator from
// configuration. Action records go to stdout and stderr.
func bootstrapDecorator(cfg *config.Config, stdout, stderr io.Writer) (*actionlog.Decorator, error) {
	level, err := core.ParseLevel(cfg.Actions.Level)
	if err != nil {
		return nil, fmt.Errorf("actions level: %w", err)
	}

	handler, err := buildHandler(&cfg.Output, logger, stdout, stderr)
	if err != nil {
		return nil, err
	}

	registry := channel.NewRegistry(
		channel.WithLevel(level),
		channel.WithLogger(logger),
	)

	opts := []actionlog.Option{actionlog.WithLogger(logger)}
	if msg := cfg.Actions.StartMessage; msg != "" {
		opts = append(opts, actionlog.WithStartMessage(msg))
	}
	if msg := cfg.Actions.CompleteMessage; msg != "" {
		opts = append(opts, actionlog.WithCompleteMessage(msg))
	}
	if msg := cfg.Actions.ErrorMessage; msg != "" {
		opts = append(opts, actionlog.WithErrorMessage(msg))
	}
	decorator := actionlog.Build(registry, handler, opts...)

	logger.Debug("msg", "Decorator ready",
		"console_target", cfg.Output.Console.Target,
		"filters", len(cfg.Output.Filters),
		"rate", cfg.Output.RateLimit.Rate,
		"level", level.String())

	return decorator, nil
}

// buildHandler creates the console output handler, wrapped in the rate
// limiter and filters when configured
func buildHandler(cfg *config.OutputConfig, logger *log.Logger, stdout, stderr io.Writer) (sink.Handler, error) {
	formatter, err := format.NewTextFormatter(&cfg.Text, logger)
	if err != nil {
		return nil, fmt.Errorf("output formatter: %w", err)
	}

	var handler sink.Handler
	handler, err = sink.NewConsoleHandlerWithWriters(cfg.Console, logger, formatter, stdout, stderr)
	if err != nil {
		return nil, fmt.Errorf("output handler: %w", err)
	}

	handler, err = sink.NewRateLimitedHandler(handler, cfg.RateLimit, logger)
	if err != nil {
		return nil, fmt.Errorf("output rate limit: %w", err)
	}

	// Filters run first so dropped records do not spend rate tokens
	handler, err = sink.NewFilteredHandler(handler, cfg.Filters, logger)
	if err != nil {
		return nil, fmt.Errorf("output filters: %w", err)
	}

	return handler, nil
}

// initializeLogger starts the diagnostics logger described by cfg.Logging
func initializeLogger(cfg *config.Config) error {
	overrides, err := cfg.Logging.LoggerOverrides(cfg.Quiet)
	if err != nil {
		return err
	}

	logger = log.NewLogger()
	if err := logger.ApplyConfigString(overrides...); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	if err := logger.Start(); err != nil {
		return fmt.Errorf("start logger: %w", err)
	}
	return nil
}
