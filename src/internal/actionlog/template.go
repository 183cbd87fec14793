// FILE: actionlog/src/internal/actionlog/template.go
package actionlog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Placeholder names understood by message templates
const (
	PlaceholderCallable  = "callable"
	PlaceholderException = "exception"
)

// Default messages
const (
	DefaultStartMessage    = "Starting execution of {callable}"
	DefaultCompleteMessage = "Execution of {callable} completed"
	DefaultErrorMessage    = "Error occurred in {callable}: {exception}"
)

var (
	// ErrUnknownPlaceholder is wrapped when a template names a value that is not supplied
	ErrUnknownPlaceholder = errors.New("unknown placeholder")

	// ErrUnmatchedBrace is wrapped for a '}' that closes nothing and is not doubled
	ErrUnmatchedBrace = errors.New("single '}' in template")
)

// Tags standing in for "{{" and "}}". The leading NUL keeps them out of reach
// of placeholder names.
const (
	openBraceTag  = "\x00lbrace"
	closeBraceTag = "\x00rbrace"
)

// TemplateError reports a message template that could not be rendered
type TemplateError struct {
	Template string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("format message template %q: %v", e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// MessageTemplate is an immutable message with {name} placeholders. "{{" and
// "}}" render as literal braces. Syntax problems are kept and reported on
// Format, never on construction.
type MessageTemplate struct {
	text     string
	tmpl     *fasttemplate.Template
	parseErr error
}

// NewMessageTemplate parses text. It never fails.
func NewMessageTemplate(text string) MessageTemplate {
	m := MessageTemplate{text: text}

	source, err := escapeBraces(text)
	if err != nil {
		m.parseErr = err
		return m
	}
	m.tmpl, m.parseErr = fasttemplate.NewTemplate(source, "{", "}")
	return m
}

// escapeBraces rewrites doubled braces into the reserved brace tags and
// rejects a lone '}'
func escapeBraces(text string) (string, error) {
	if !strings.Contains(text, "{{") && !strings.Contains(text, "}") {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		doubled := i+1 < len(text) && text[i+1] == c

		switch {
		case c == '{' && doubled:
			b.WriteString("{" + openBraceTag + "}")
			i++
		case c == '{':
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unclosed placeholder at offset %d", i)
			}
			b.WriteString(text[i : i+end+2])
			i += end + 1
		case c == '}' && doubled:
			b.WriteString("{" + closeBraceTag + "}")
			i++
		case c == '}':
			return "", fmt.Errorf("%w at offset %d", ErrUnmatchedBrace, i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// String returns the raw template text
func (m MessageTemplate) String() string {
	return m.text
}

// Format substitutes values into the template. Every placeholder must be present in values.
func (m MessageTemplate) Format(values map[string]string) (string, error) {
	if m.parseErr != nil {
		return "", &TemplateError{Template: m.text, Err: m.parseErr}
	}
	if m.tmpl == nil {
		// zero value
		return m.text, nil
	}

	out, err := m.tmpl.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		switch tag {
		case openBraceTag:
			return io.WriteString(w, "{")
		case closeBraceTag:
			return io.WriteString(w, "}")
		}
		v, ok := values[tag]
		if !ok {
			return 0, fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, tag)
		}
		return io.WriteString(w, v)
	})
	if err != nil {
		return "", &TemplateError{Template: m.text, Err: err}
	}
	return out, nil
}
