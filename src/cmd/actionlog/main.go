// FILE: actionlog/src/cmd/actionlog/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"actionlog/src/internal/actionlog"
	"actionlog/src/internal/config"
	"actionlog/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one CLI invocation and returns the process exit code:
// 0 on success, 1 when the action or setup fails, 2 on usage errors
func run(args []string, stdout, stderr io.Writer) int {
	flagCfg, err := ParseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			customUsage(stderr)
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	out := &cliOutput{stdout: stdout, stderr: stderr, quiet: flagCfg.Quiet}

	if flagCfg.ShowVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	if flagCfg.ConfigFile != "" {
		os.Setenv("ACTIONLOG_CONFIG_FILE", flagCfg.ConfigFile)
	}

	// Load configuration with CLI overrides
	cfg, err := config.LoadWithCLI(flagCfg.Overrides)
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			out.errorf("Config file not found: %s\n", flagCfg.ConfigFile)
			return 2
		}
		out.errorf("Failed to load configuration: %v\n", err)
		return 2
	}
	if flagCfg.Quiet {
		cfg.Quiet = true
	}

	in, err := parseOperands(flagCfg.Operands)
	if err != nil {
		out.errorf("Error: %v\n", err)
		return 2
	}

	if err := initializeLogger(cfg); err != nil {
		out.errorf("Failed to initialize logger: %v\n", err)
		return 1
	}
	defer shutdownLogger(out)

	logger.Info("msg", "actionlog starting",
		"version", version.String(),
		"config_file", config.GetConfigPath())

	decorator, err := bootstrapDecorator(cfg, stdout, stderr)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap decorator", "error", err)
		out.errorf("Failed to set up output: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sum, err := actionlog.Wrap(decorator, addIfLess)(ctx, in)
	if err != nil {
		// The decorator already reported the failure on the action channel
		return 1
	}

	out.printf("%d\n", sum)
	return 0
}

func shutdownLogger(out *cliOutput) {
	if logger == nil {
		return
	}
	if err := logger.Shutdown(2 * time.Second); err != nil {
		// Best effort, the logger itself is gone
		out.errorf("Logger shutdown error: %v\n", err)
	}
}
