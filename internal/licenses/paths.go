package licenses

import (
	"os"
	"path/filepath"
)

// SearchPaths returns license directories in precedence order, followed by
// any extra directories.
func SearchPaths(projectDir string, extraDirs ...string) []string {
	paths := make([]string, 0, 3+len(extraDirs))
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".lic", "licenses"))
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "lic", "licenses"))
	}

	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "lic", "licenses"))

	for _, dir := range extraDirs {
		if dir != "" {
			paths = append(paths, dir)
		}
	}
	return paths
}

// LoadFromSearchPaths loads licenses from the search paths with first-hit
// precedence, then fills in builtins that were not overridden.
func LoadFromSearchPaths(projectDir string, extraDirs ...string) ([]*License, error) {
	seen := make(map[string]*License)
	order := make([]string, 0)

	add := func(licenses []*License) {
		for _, lic := range licenses {
			if _, exists := seen[lic.ID]; exists {
				continue
			}
			seen[lic.ID] = lic
			order = append(order, lic.ID)
		}
	}

	for _, path := range SearchPaths(projectDir, extraDirs...) {
		licenses, err := LoadLicensesFromDir(path)
		if err != nil {
			return nil, err
		}
		add(licenses)
	}

	builtins, err := LoadBuiltinLicenses()
	if err != nil {
		return nil, err
	}
	add(builtins)

	resolved := make([]*License, 0, len(order))
	for _, id := range order {
		resolved = append(resolved, seen[id])
	}
	return resolved, nil
}
