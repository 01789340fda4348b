// Package cli provides the default command that writes a LICENSE file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/lic/internal/clock"
	"github.com/opencode-ai/lic/internal/config"
	"github.com/opencode-ai/lic/internal/gitconfig"
	"github.com/opencode-ai/lic/internal/licenses"
	"github.com/opencode-ai/lic/internal/logging"
	"github.com/opencode-ai/lic/internal/tui"
	"github.com/opencode-ai/lic/internal/tui/styles"
	"github.com/spf13/cobra"
)

const (
	fallbackLicense = "mit"
	fallbackOutput  = "LICENSE"
	// shown as the author prompt default when git has no user.name
	placeholderAuthor = "Your Name"
)

var (
	genInteractive bool
	genLicense     string
	genOutput      string
	genStdout      bool
)

// Replaced in tests.
var (
	clockFunc       = clock.Real
	identityFunc    = func(dir string) licenses.IdentitySource { return gitconfig.NewClient(gitconfig.WithDir(dir)) }
	wizardFunc      = tui.Run
	interactiveFunc = IsInteractive
	workingDirFunc  = os.Getwd
)

func init() {
	rootCmd.Flags().BoolVarP(&genInteractive, "interactive", "i", false, "pick the license and confirm values interactively")
	rootCmd.Flags().StringVarP(&genLicense, "license", "l", "", "license id, e.g. mit, apache-2.0, gpl-3.0 (default: mit)")
	rootCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file (default: LICENSE)")
	rootCmd.Flags().BoolVar(&genStdout, "stdout", false, "print the license instead of writing a file")
}

type generateOptions struct {
	LicenseID   string
	Author      string
	Year        string
	Email       string
	Project     string
	Output      string
	Stdout      bool
	Strict      bool
	Interactive bool
}

type generateResult struct {
	License string `json:"license"`
	Name    string `json:"name"`
	Author  string `json:"author"`
	Year    string `json:"year"`
	Path    string `json:"path,omitempty"`
	Bytes   int    `json:"bytes"`
	Text    string `json:"text,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := generateOptions{
		LicenseID:   genLicense,
		Author:      flagAuthor,
		Year:        flagYear,
		Email:       flagEmail,
		Project:     flagProject,
		Output:      genOutput,
		Stdout:      genStdout,
		Strict:      flagStrict,
		Interactive: genInteractive,
	}

	result, err := generate(cmd.Context(), GetConfig(), opts)
	if errors.Is(err, tui.ErrCancelled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		return WriteOutput(out, result)
	}
	if opts.Stdout {
		_, err := io.WriteString(out, result.Text)
		return err
	}
	if opts.Interactive {
		fmt.Fprintln(cmd.ErrOrStderr(), tui.Outro(themeStyles(GetConfig()), result.Name, result.Author))
		return nil
	}
	fmt.Fprintf(out, "Created %s for %s (%s) in %s.\n", result.Name, result.Author, result.Year, result.Path)
	return nil
}

// generate selects a license, resolves values and writes the rendered text.
// No file is written unless every earlier step succeeded.
func generate(ctx context.Context, cfg *config.Config, opts generateOptions) (*generateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := logging.Component("generate")

	cwd, err := workingDirFunc()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	catalog, err := licenses.LoadCatalog(cwd, cfg.Catalog.Dirs...)
	if err != nil {
		return nil, fmt.Errorf("load license catalog: %w", err)
	}

	licenseGiven := strings.TrimSpace(opts.LicenseID) != ""
	authorGiven := strings.TrimSpace(opts.Author) != ""
	yearGiven := strings.TrimSpace(opts.Year) != ""
	opts = applyConfigDefaults(opts, cfg, cwd)

	renderer := licenses.NewRenderer(
		licenses.WithClock(clockFunc()),
		licenses.WithIdentity(identityFunc(cwd)),
		licenses.WithStrict(opts.Strict),
	)
	values := renderer.Resolve(ctx, licenses.Values{
		Author:  opts.Author,
		Year:    opts.Year,
		Email:   opts.Email,
		Project: opts.Project,
	})

	var lic *licenses.License
	if opts.Interactive {
		if !interactiveFunc() {
			return nil, &PreflightError{
				Message:  "interactive mode requires a terminal",
				Hint:     "run in a TTY, or pass the license and author as flags",
				NextStep: "lic -l " + opts.LicenseID + " -a \"Your Name\"",
			}
		}
		if licenseGiven {
			if _, err := catalog.Lookup(opts.LicenseID); err != nil {
				return nil, err
			}
		}

		authorDefault := values.Author
		if authorDefault == "" {
			authorDefault = placeholderAuthor
		}
		answers, err := wizardFunc(tui.Options{
			Licenses:    catalog.List(),
			LicenseID:   opts.LicenseID,
			SkipLicense: licenseGiven,
			Author:      authorDefault,
			SkipAuthor:  authorGiven,
			Year:        values.Year,
			SkipYear:    yearGiven,
			Styles:      themeStyles(cfg),
		})
		if err != nil {
			return nil, err
		}

		lic, err = catalog.Lookup(answers.LicenseID)
		if err != nil {
			return nil, err
		}
		values.Author = answers.Author
		values.Year = answers.Year
	} else {
		lic, err = catalog.Lookup(opts.LicenseID)
		if err != nil {
			return nil, err
		}
		if values.Author == "" && usesField(lic, licenses.FieldAuthor) {
			return nil, ErrAuthorRequired
		}
	}

	text, err := renderer.RenderResolved(lic, values)
	if err != nil {
		return nil, err
	}

	result := &generateResult{
		License: lic.ID,
		Name:    lic.Name,
		Author:  values.Author,
		Year:    values.Year,
		Bytes:   len(text),
	}

	if opts.Stdout {
		result.Text = text
		return result, nil
	}

	path := opts.Output
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	if err := writeLicenseFile(path, text); err != nil {
		return nil, err
	}
	result.Path = opts.Output

	logger.Info().
		Str("license", lic.ID).
		Str("path", path).
		Int("bytes", len(text)).
		Msg("license written")

	return result, nil
}

func applyConfigDefaults(opts generateOptions, cfg *config.Config, cwd string) generateOptions {
	opts.LicenseID = firstNonEmpty(opts.LicenseID, cfg.Defaults.License, fallbackLicense)
	opts.Author = firstNonEmpty(opts.Author, cfg.Defaults.Author)
	opts.Email = firstNonEmpty(opts.Email, cfg.Defaults.Email)
	opts.Output = firstNonEmpty(opts.Output, cfg.Defaults.Output, fallbackOutput)
	opts.Project = firstNonEmpty(opts.Project, filepath.Base(cwd))
	opts.Strict = opts.Strict || cfg.Render.Strict
	return opts
}

func writeLicenseFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func usesField(lic *licenses.License, field licenses.Field) bool {
	for _, f := range lic.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

func themeStyles(cfg *config.Config) styles.Styles {
	theme, ok := styles.ThemeByName(cfg.TUI.Theme)
	if !ok {
		logger := logging.Component("cli")
		logger.Warn().Str("theme", cfg.TUI.Theme).Msg("unknown theme, using default")
	}
	return styles.BuildStyles(theme)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
