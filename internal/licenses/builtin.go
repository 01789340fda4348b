package licenses

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// SourceBuiltin marks licenses bundled into the binary.
const SourceBuiltin = "builtin"

// LoadBuiltinLicenses returns the licenses bundled with lic.
func LoadBuiltinLicenses() ([]*License, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin licenses: %w", err)
	}

	licenses := make([]*License, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin license %s: %w", entry.Name(), err)
		}
		lic, err := parseLicense(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin license %s: %w", entry.Name(), err)
		}
		lic.Source = SourceBuiltin
		licenses = append(licenses, lic)
	}

	sort.Slice(licenses, func(i, j int) bool {
		return licenses[i].ID < licenses[j].ID
	})

	return licenses, nil
}
