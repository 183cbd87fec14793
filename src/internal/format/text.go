// FILE: actionlog/src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"actionlog/src/internal/config"
	"actionlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Produces human-readable text records using templates
type TextFormatter struct {
	config   config.TextFormatterOptions
	template *template.Template
	logger   *log.Logger
}

// Creates a new text formatter, nil options select the defaults
func NewTextFormatter(opts *config.TextFormatterOptions, logger *log.Logger) (*TextFormatter, error) {
	cfg := *config.DefaultTextFormatterOptions()
	if opts != nil {
		if opts.Template != "" {
			cfg.Template = opts.Template
		}
		if opts.TimestampFormat != "" {
			cfg.TimestampFormat = opts.TimestampFormat
		}
	}

	f := &TextFormatter{
		config: cfg,
		logger: logger,
	}

	// Create template with helper functions
	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return t.Format(f.config.TimestampFormat)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("record").Funcs(funcMap).Parse(f.config.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Formats the record using the template
func (f *TextFormatter) Format(entry core.LogEntry) ([]byte, error) {
	data := map[string]any{
		"Timestamp": entry.Time,
		"Level":     entry.Level.String(),
		"Source":    entry.Source,
		"Message":   entry.Message,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "text_formatter",
			"error", err)

		fallback := fmt.Sprintf("%s - [%s] - %s\n",
			entry.Time.Format(f.config.TimestampFormat),
			entry.Level,
			entry.Message)
		return []byte(fallback), nil
	}

	// Ensure newline at end
	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Returns the formatter name
func (f *TextFormatter) Name() string {
	return "text"
}
