// FILE: actionlog/src/internal/actionlog/template_test.go
package actionlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageTemplate_Format(t *testing.T) {
	values := map[string]string{
		PlaceholderCallable:  "foo",
		PlaceholderException: "boom",
	}

	testCases := []struct {
		name     string
		template string
		expected string
	}{
		{name: "DefaultStart", template: DefaultStartMessage, expected: "Starting execution of foo"},
		{name: "DefaultComplete", template: DefaultCompleteMessage, expected: "Execution of foo completed"},
		{name: "DefaultError", template: DefaultErrorMessage, expected: "Error occurred in foo: boom"},
		{name: "Custom", template: "Go {callable}", expected: "Go foo"},
		{name: "NoPlaceholders", template: "plain text", expected: "plain text"},
		{name: "Repeated", template: "{callable}/{callable}", expected: "foo/foo"},
		{name: "EscapedPlaceholder", template: "{{callable}}", expected: "{callable}"},
		{name: "EscapedAroundValue", template: "{{{callable}}}", expected: "{foo}"},
		{name: "EscapedEmpty", template: "set {{}} for {callable}", expected: "set {} for foo"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := NewMessageTemplate(tc.template).Format(values)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestMessageTemplate_Errors(t *testing.T) {
	t.Run("UnknownPlaceholder", func(t *testing.T) {
		tmpl := NewMessageTemplate("Starting {callable} after {exception}")
		_, err := tmpl.Format(map[string]string{PlaceholderCallable: "foo"})

		var templateErr *TemplateError
		require.True(t, errors.As(err, &templateErr))
		assert.Equal(t, "Starting {callable} after {exception}", templateErr.Template)
		assert.ErrorIs(t, err, ErrUnknownPlaceholder)
		assert.Contains(t, err.Error(), "{exception}")
	})

	t.Run("UnclosedPlaceholderReportedOnFormat", func(t *testing.T) {
		tmpl := NewMessageTemplate("Starting {callable")
		assert.Equal(t, "Starting {callable", tmpl.String())

		_, err := tmpl.Format(map[string]string{PlaceholderCallable: "foo"})
		var templateErr *TemplateError
		assert.True(t, errors.As(err, &templateErr))
	})

	t.Run("SingleClosingBrace", func(t *testing.T) {
		_, err := NewMessageTemplate("Done } {callable}").Format(map[string]string{PlaceholderCallable: "foo"})
		assert.ErrorIs(t, err, ErrUnmatchedBrace)
	})

	t.Run("EscapeTagsAreNotPlaceholders", func(t *testing.T) {
		out, err := NewMessageTemplate("{{ {callable} }}").Format(map[string]string{PlaceholderCallable: "{x}"})
		require.NoError(t, err)
		assert.Equal(t, "{ {x} }", out)
	})

	t.Run("ZeroValue", func(t *testing.T) {
		var tmpl MessageTemplate
		out, err := tmpl.Format(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
