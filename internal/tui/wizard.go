// Package tui implements the interactive license wizard.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/lic/internal/licenses"
	"github.com/opencode-ai/lic/internal/tui/components"
	"github.com/opencode-ai/lic/internal/tui/styles"
)

// ErrCancelled is returned when the user aborts the wizard.
var ErrCancelled = errors.New("cancelled")

// Options seed the wizard. A step whose Skip flag is set is not shown and
// its value is taken as given.
type Options struct {
	Licenses    []*licenses.License
	LicenseID   string
	SkipLicense bool

	Author     string
	SkipAuthor bool

	Year     string
	SkipYear bool

	Styles styles.Styles
}

// Result holds the wizard's answers.
type Result struct {
	LicenseID string
	Author    string
	Year      string
}

// Run shows the wizard on stderr and returns the answers.
func Run(opts Options) (Result, error) {
	m := newModel(opts)
	if m.step == stepDone {
		return m.result, nil
	}

	program := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("run wizard: %w", err)
	}

	done, ok := final.(model)
	if !ok {
		return Result{}, fmt.Errorf("run wizard: unexpected model %T", final)
	}
	if done.cancelled {
		return Result{}, ErrCancelled
	}
	return done.result, nil
}

type step int

const (
	stepLicense step = iota
	stepAuthor
	stepYear
	stepDone
)

const maxVisible = 10

type model struct {
	opts      Options
	styles    styles.Styles
	step      step
	filter    string
	cursor    int
	notice    string
	input     []rune
	result    Result
	cancelled bool
}

func newModel(opts Options) model {
	m := model{
		opts:   opts,
		styles: opts.Styles,
		result: Result{
			LicenseID: opts.LicenseID,
			Author:    opts.Author,
			Year:      opts.Year,
		},
		step: stepLicense,
	}
	if m.styles.Theme.Name == "" {
		m.styles = styles.DefaultStyles()
	}
	for i, lic := range opts.Licenses {
		if strings.EqualFold(lic.ID, opts.LicenseID) {
			m.cursor = i
			break
		}
	}
	if m.skipped(m.step) {
		m.step = m.next(m.step)
	}
	return m
}

func (m model) skipped(s step) bool {
	switch s {
	case stepLicense:
		return m.opts.SkipLicense
	case stepAuthor:
		return m.opts.SkipAuthor
	case stepYear:
		return m.opts.SkipYear
	}
	return false
}

func (m model) next(s step) step {
	s++
	for s < stepDone && m.skipped(s) {
		s++
	}
	return s
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	}

	if m.step == stepLicense {
		return m.updateLicense(key)
	}
	return m.updateInput(key)
}

func (m model) updateLicense(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.filtered()
	m.notice = ""

	switch key.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case tea.KeyBackspace:
		if m.filter != "" {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.cursor = 0
		}
	case tea.KeyRunes:
		m.filter += string(key.Runes)
		m.cursor = 0
	case tea.KeyEnter:
		if len(visible) == 0 {
			m.notice = "Nothing to select. Edit the filter first."
			return m, nil
		}
		m.result.LicenseID = visible[m.cursor].ID
		return m.advance()
	}
	return m, nil
}

func (m model) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyEnter:
		value := strings.TrimSpace(string(m.input))
		switch m.step {
		case stepAuthor:
			if value != "" {
				m.result.Author = value
			}
		case stepYear:
			if value != "" {
				m.result.Year = value
			}
		}
		m.input = nil
		return m.advance()
	}
	return m, nil
}

func (m model) advance() (tea.Model, tea.Cmd) {
	m.step = m.next(m.step)
	if m.step == stepDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) filtered() []*licenses.License {
	if m.filter == "" {
		return m.opts.Licenses
	}
	needle := strings.ToLower(m.filter)
	out := make([]*licenses.License, 0, len(m.opts.Licenses))
	for _, lic := range m.opts.Licenses {
		if strings.Contains(lic.ID, needle) || strings.Contains(strings.ToLower(lic.Name), needle) {
			out = append(out, lic)
		}
	}
	return out
}

func (m model) View() string {
	if m.step == stepDone || m.cancelled {
		return ""
	}

	lines := []string{m.styles.Title.Render("📜 Initialize License"), ""}

	switch m.step {
	case stepLicense:
		lines = append(lines, m.licenseLines()...)
	case stepAuthor:
		lines = append(lines, m.inputLines("Copyright holder name", m.result.Author, "Who owns the copyright?")...)
	case stepYear:
		lines = append(lines, m.inputLines("Copyright year", m.result.Year, "Defaults to current year")...)
	}

	return strings.Join(lines, "\n") + "\n"
}

func (m model) licenseLines() []string {
	lines := []string{m.styles.Text.Render("Pick a license template")}
	if m.filter != "" {
		lines = append(lines, m.styles.Muted.Render("filter: ")+m.styles.Accent.Render(m.filter))
	}

	visible := m.filtered()
	if len(visible) == 0 {
		empty := components.NoLicenses()
		if m.filter != "" {
			empty = components.NoLicensesMatch(m.filter)
		}
		lines = append(lines, empty.Render(m.styles))
	}
	if m.notice != "" {
		lines = append(lines, m.styles.Warning.Render(m.notice))
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	for i := start; i < len(visible) && i < start+maxVisible; i++ {
		lic := visible[i]
		label := fmt.Sprintf("%-14s %s", lic.ID, lic.Name)
		if i == m.cursor {
			lines = append(lines, m.styles.Focus.Render("> "+label))
			continue
		}
		lines = append(lines, m.styles.Text.Render("  "+label))
	}

	lines = append(lines, "", m.styles.Muted.Render("↑/↓ move · type to filter · enter select · esc cancel"))
	return lines
}

func (m model) inputLines(prompt, def, hint string) []string {
	value := string(m.input)
	shown := m.styles.Text.Render(value)
	if value == "" && def != "" {
		shown = m.styles.Muted.Render(def)
	}
	return []string{
		m.styles.Text.Render(prompt),
		m.styles.Accent.Render("> ") + shown + m.styles.Focus.Render("▏"),
		"",
		m.styles.Muted.Render(hint + " · enter accept · esc cancel"),
	}
}

// Outro formats the closing line shown after the license is written.
func Outro(styleSet styles.Styles, licenseName, author string) string {
	return styleSet.Success.Render(fmt.Sprintf("✅ %s created for %s!", licenseName, author))
}
