// Package cli provides error types surfaced to the user.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAuthorRequired is returned when no author can be determined without
// prompting.
var ErrAuthorRequired = errors.New("author name not found: pass --author, set defaults.author, or configure git user.name")

// WriteError reports a failure to write the output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// PreflightError explains why a command cannot run and what to do instead.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
	}
	if e.NextStep != "" {
		b.WriteString("\nTry: ")
		b.WriteString(e.NextStep)
	}
	return b.String()
}
