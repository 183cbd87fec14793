// FILE: actionlog/src/cmd/actionlog/flags.go
package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FlagConfig holds everything read from the command line
type FlagConfig struct {
	ConfigFile  string
	ShowVersion bool
	Quiet       bool

	// Positional operands for the demo action
	Operands []string

	// --key=value pairs forwarded to the config loader
	Overrides []string
}

// ParseFlags parses args (without the program name). Flags come first;
// after them, --section.key=value arguments are config overrides and
// everything else is an operand. A leading negative number starts the
// operands, so "actionlog -5 3" works without "--".
func ParseFlags(args []string) (*FlagConfig, error) {
	cfg := &FlagConfig{}

	fs := flag.NewFlagSet("actionlog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress CLI output and diagnostics")

	if err := fs.Parse(markOperands(args)); err != nil {
		return nil, err
	}

	for _, arg := range fs.Args() {
		if strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") {
			cfg.Overrides = append(cfg.Overrides, arg)
			continue
		}
		cfg.Operands = append(cfg.Operands, arg)
	}

	return cfg, nil
}

// markOperands inserts "--" before the first negative number that appears
// before any other operand, which the flag parser would otherwise reject
// as an unknown flag
func markOperands(args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			return args
		}
		if _, err := strconv.Atoi(arg); err == nil {
			marked := make([]string, 0, len(args)+1)
			marked = append(marked, args[:i]...)
			marked = append(marked, "--")
			return append(marked, args[i:]...)
		}
		if arg == "-config" || arg == "--config" {
			i++ // skip the value
		}
	}
	return args
}

func customUsage(w io.Writer) {
	fmt.Fprintf(w, "actionlog - logs the start, completion and failure of a wrapped action\n\n")
	fmt.Fprintf(w, "Usage: actionlog [options] x y [--section.key=value ...]\n\n")
	fmt.Fprintf(w, "Runs addIfLess(x, y) under the action logger: prints x+y, or fails when x > y.\n")
	fmt.Fprintf(w, "Negative operands are accepted as is; \"--\" also ends the options.\n")

	fmt.Fprintf(w, "\nOptions:\n")
	fmt.Fprintf(w, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(w, "  -version\n\tShow version information\n")
	fmt.Fprintf(w, "  -quiet\n\tSuppress CLI output and diagnostics\n")

	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  # Succeeds, two INFO records on stderr\n")
	fmt.Fprintf(w, "  actionlog 2 3\n\n")
	fmt.Fprintf(w, "  # Fails, INFO then ERROR record\n")
	fmt.Fprintf(w, "  actionlog 5 3\n\n")
	fmt.Fprintf(w, "  # Negative operands\n")
	fmt.Fprintf(w, "  actionlog -quiet -5 3\n\n")
	fmt.Fprintf(w, "  # Records on stdout with a custom start message\n")
	fmt.Fprintf(w, "  actionlog 2 3 --output.console.target=stdout --actions.start_message='Go {callable}'\n\n")

	fmt.Fprintf(w, "Environment Variables:\n")
	fmt.Fprintf(w, "  ACTIONLOG_CONFIG_FILE   Config file path\n")
	fmt.Fprintf(w, "  ACTIONLOG_CONFIG_DIR    Config directory\n")
	fmt.Fprintf(w, "  ACTIONLOG_<SECTION>_<KEY>  Any config value, e.g. ACTIONLOG_OUTPUT_CONSOLE_TARGET=stdout\n")
}
