// Package cli provides the license listing command.
package cli

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/lic/internal/licenses"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available licenses",
	Long:    "List bundled licenses and any found in ./.lic/licenses, ~/.config/lic/licenses or configured catalog directories.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		entries := make([]licenseEntry, 0, catalog.Len())
		for _, lic := range catalog.List() {
			entries = append(entries, newLicenseEntry(lic))
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), entries)
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{entry.ID, entry.Name, formatFields(entry.Fields), entry.Source})
		}
		return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "FIELDS", "SOURCE"}, rows)
	},
}

type licenseEntry struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	SPDXID      string           `json:"spdx_id,omitempty"`
	Description string           `json:"description,omitempty"`
	Fields      []licenses.Field `json:"fields"`
	Source      string           `json:"source"`
}

func newLicenseEntry(lic *licenses.License) licenseEntry {
	fields := lic.Fields()
	if fields == nil {
		fields = []licenses.Field{}
	}
	return licenseEntry{
		ID:          lic.ID,
		Name:        lic.Name,
		SPDXID:      lic.SPDXID,
		Description: lic.Description,
		Fields:      fields,
		Source:      lic.Source,
	}
}

func loadCatalog() (*licenses.Catalog, error) {
	cwd, err := workingDirFunc()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	catalog, err := licenses.LoadCatalog(cwd, GetConfig().Catalog.Dirs...)
	if err != nil {
		return nil, fmt.Errorf("load license catalog: %w", err)
	}
	return catalog, nil
}

func formatFields(fields []licenses.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}
