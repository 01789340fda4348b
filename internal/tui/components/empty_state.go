// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/lic/internal/tui/styles"
)

// EmptyState is shown in place of a list that has nothing to display.
type EmptyState struct {
	Icon        string
	Title       string
	Subtitle    string
	Suggestions []Suggestion
}

// Suggestion is a command the user can run, with a short description.
type Suggestion struct {
	Command     string
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines := []string{styleSet.Muted.Render(titleLine)}

	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "", styleSet.Text.Render("Try:"))
		for _, s := range e.Suggestions {
			cmdLine := "  " + styleSet.Accent.Render(s.Command)
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render("  # " + s.Description)
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// NoLicensesMatch is shown when the picker filter matches nothing.
func NoLicensesMatch(filter string) EmptyState {
	return EmptyState{
		Icon:     "🔍",
		Title:    fmt.Sprintf("No licenses match '%s'", filter),
		Subtitle: "Press backspace to edit the filter.",
	}
}

// NoLicenses is shown when the catalog is empty.
func NoLicenses() EmptyState {
	return EmptyState{
		Icon:  "📭",
		Title: "No licenses available",
		Suggestions: []Suggestion{
			{Command: "lic list", Description: "show catalog directories and sources"},
			{Command: "lic config init", Description: "write a config with catalog.dirs"},
		},
	}
}
