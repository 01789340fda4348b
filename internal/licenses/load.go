package licenses

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadLicense reads a single license definition from disk.
func LoadLicense(path string) (*License, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("license path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read license %s: %w", path, err)
	}

	lic, err := parseLicense(data)
	if err != nil {
		return nil, fmt.Errorf("parse license %s: %w", path, err)
	}
	lic.Source = path
	return lic, nil
}

// LoadLicensesFromDir loads every .yaml/.yml license in dir. A missing
// directory yields an empty slice.
func LoadLicensesFromDir(dir string) ([]*License, error) {
	if strings.TrimSpace(dir) == "" {
		return []*License{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*License{}, nil
		}
		return nil, fmt.Errorf("read licenses dir %s: %w", dir, err)
	}

	licenses := make([]*License, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		lic, err := LoadLicense(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		licenses = append(licenses, lic)
	}

	sort.Slice(licenses, func(i, j int) bool {
		return licenses[i].ID < licenses[j].ID
	})

	return licenses, nil
}

func parseLicense(data []byte) (*License, error) {
	var lic License
	if err := yaml.Unmarshal(data, &lic); err != nil {
		return nil, err
	}

	lic.ID = normalizeID(lic.ID)
	if lic.ID == "" {
		return nil, fmt.Errorf("license id is required")
	}
	if strings.ContainsAny(lic.ID, " \t/\\") {
		return nil, fmt.Errorf("license id %q must not contain whitespace or slashes", lic.ID)
	}
	lic.Name = strings.TrimSpace(lic.Name)
	if lic.Name == "" {
		lic.Name = lic.ID
	}
	lic.SPDXID = strings.TrimSpace(lic.SPDXID)
	lic.Description = strings.TrimSpace(lic.Description)

	if strings.TrimSpace(lic.Body) == "" {
		return nil, fmt.Errorf("license body is required")
	}

	seen := make(map[string]struct{})
	for i := range lic.Placeholders {
		ph := &lic.Placeholders[i]
		if ph.Token == "" || strings.TrimSpace(ph.Token) != ph.Token {
			return nil, fmt.Errorf("placeholder %d: token must be non-empty without surrounding space", i+1)
		}
		ph.Field = Field(strings.ToLower(strings.TrimSpace(string(ph.Field))))
		if !ph.Field.Valid() {
			return nil, fmt.Errorf("placeholder %q: unknown field %q", ph.Token, ph.Field)
		}
		if _, exists := seen[ph.Token]; exists {
			return nil, fmt.Errorf("duplicate placeholder token %q", ph.Token)
		}
		seen[ph.Token] = struct{}{}
	}

	return &lic, nil
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
