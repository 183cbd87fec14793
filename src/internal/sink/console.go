// FILE: actionlog/src/internal/sink/console.go
package sink

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"actionlog/src/internal/config"
	"actionlog/src/internal/core"
	"actionlog/src/internal/format"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

const (
	colorReset  = "\x1b[0m"
	colorGray   = "\x1b[90m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
)

// ConsoleHandler writes formatted records to stdout and/or stderr
type ConsoleHandler struct {
	config    config.ConsoleOutputConfig
	mu        sync.Mutex
	stdout    io.Writer
	stderr    io.Writer
	colorOut  bool
	colorErr  bool
	startTime time.Time
	logger    *log.Logger
	formatter format.Formatter

	// Statistics
	totalProcessed atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewConsoleHandler creates a console handler bound to the process streams
func NewConsoleHandler(cfg config.ConsoleOutputConfig, logger *log.Logger, formatter format.Formatter) (*ConsoleHandler, error) {
	return NewConsoleHandlerWithWriters(cfg, logger, formatter, os.Stdout, os.Stderr)
}

// NewConsoleHandlerWithWriters creates a console handler with explicit destinations
func NewConsoleHandlerWithWriters(cfg config.ConsoleOutputConfig, logger *log.Logger, formatter format.Formatter, stdout, stderr io.Writer) (*ConsoleHandler, error) {
	if formatter == nil {
		return nil, fmt.Errorf("console handler requires a formatter")
	}
	if cfg.Target == "" {
		cfg.Target = "stderr"
	}
	switch cfg.Target {
	case "stdout", "stderr", "split":
	default:
		return nil, fmt.Errorf("invalid console target: %s", cfg.Target)
	}

	h := &ConsoleHandler{
		config:    cfg,
		stdout:    stdout,
		stderr:    stderr,
		startTime: time.Now(),
		logger:    logger,
		formatter: formatter,
	}
	h.lastProcessed.Store(time.Time{})

	switch cfg.Color {
	case "", "never":
	case "always":
		h.colorOut, h.colorErr = true, true
	case "auto":
		h.colorOut, h.colorErr = isTerminal(stdout), isTerminal(stderr)
	default:
		return nil, fmt.Errorf("invalid console color mode: %s", cfg.Color)
	}

	return h, nil
}

func (h *ConsoleHandler) Handle(entry core.LogEntry) error {
	formatted, err := h.formatter.Format(entry)
	if err != nil {
		h.logger.Error("msg", "Failed to format record for console",
			"component", "console_handler",
			"error", err)
		return fmt.Errorf("format record: %w", err)
	}

	out, colored := h.stderr, h.colorErr
	switch h.config.Target {
	case "stdout":
		out, colored = h.stdout, h.colorOut
	case "split":
		// info/debug to stdout, warn/error to stderr
		if entry.Level < core.LevelWarn {
			out, colored = h.stdout, h.colorOut
		}
	}

	if colored {
		formatted = colorize(entry.Level, formatted)
	}

	h.mu.Lock()
	_, err = out.Write(formatted)
	h.mu.Unlock()

	h.totalProcessed.Add(1)
	h.lastProcessed.Store(time.Now())

	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func (h *ConsoleHandler) GetStats() HandlerStats {
	lastProc, _ := h.lastProcessed.Load().(time.Time)

	return HandlerStats{
		Type:           "console",
		TotalProcessed: h.totalProcessed.Load(),
		StartTime:      h.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"target": h.config.Target,
			"color":  h.colorOut || h.colorErr,
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorize wraps the line, keeping the trailing newline outside the escape
func colorize(level core.Level, line []byte) []byte {
	var code string
	switch {
	case level >= core.LevelError:
		code = colorRed
	case level == core.LevelWarn:
		code = colorYellow
	case level == core.LevelDebug:
		code = colorGray
	default:
		return line
	}

	body := line
	newline := len(body) > 0 && body[len(body)-1] == '\n'
	if newline {
		body = body[:len(body)-1]
	}

	out := make([]byte, 0, len(line)+len(code)+len(colorReset))
	out = append(out, code...)
	out = append(out, body...)
	out = append(out, colorReset...)
	if newline {
		out = append(out, '\n')
	}
	return out
}
