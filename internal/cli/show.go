// Package cli provides the license show command.
package cli

import (
	"io"

	"github.com/opencode-ai/lic/internal/licenses"
	"github.com/spf13/cobra"
)

var showRender bool

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRender, "render", false, "substitute placeholders using --author, --year and git defaults")
}

var showCmd = &cobra.Command{
	Use:   "show <license>",
	Short: "Print a license template",
	Long:  "Print a license template with its placeholders, or the rendered text with --render. Nothing is written to disk.",
	Example: `  lic show mit
  lic show apache-2.0 --render -a "Jane Doe"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		lic, err := catalog.Lookup(args[0])
		if err != nil {
			return err
		}

		text := lic.Body
		if showRender {
			cwd, err := workingDirFunc()
			if err != nil {
				return err
			}
			renderer := licenses.NewRenderer(
				licenses.WithClock(clockFunc()),
				licenses.WithIdentity(identityFunc(cwd)),
				licenses.WithStrict(flagStrict || GetConfig().Render.Strict),
			)
			text, err = renderer.Render(cmd.Context(), lic, licenses.Values{
				Author:  firstNonEmpty(flagAuthor, GetConfig().Defaults.Author),
				Year:    flagYear,
				Email:   firstNonEmpty(flagEmail, GetConfig().Defaults.Email),
				Project: flagProject,
			})
			if err != nil {
				return err
			}
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), struct {
				licenseEntry
				Placeholders []licenses.Placeholder `json:"placeholders,omitempty"`
				Text         string                 `json:"text"`
			}{newLicenseEntry(lic), lic.Placeholders, text})
		}

		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	},
}
