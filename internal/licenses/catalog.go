package licenses

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownLicense is returned when an id is not in the catalog.
var ErrUnknownLicense = errors.New("unknown license")

// UnknownLicenseError carries the rejected id and the ids that would have
// been accepted.
type UnknownLicenseError struct {
	ID    string
	Valid []string
}

func (e *UnknownLicenseError) Error() string {
	return fmt.Sprintf("unknown license %q (valid: %s)", e.ID, strings.Join(e.Valid, ", "))
}

func (e *UnknownLicenseError) Unwrap() error {
	return ErrUnknownLicense
}

// Catalog is an immutable, case-insensitive index of licenses.
type Catalog struct {
	byID    map[string]*License
	ordered []*License
}

// NewCatalog indexes licenses by id. When ids collide the earlier entry wins.
func NewCatalog(licenses []*License) *Catalog {
	c := &Catalog{
		byID:    make(map[string]*License, len(licenses)),
		ordered: make([]*License, 0, len(licenses)),
	}
	for _, lic := range licenses {
		if lic == nil {
			continue
		}
		id := normalizeID(lic.ID)
		if _, exists := c.byID[id]; exists {
			continue
		}
		c.byID[id] = lic
		c.ordered = append(c.ordered, lic)
	}
	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].ID < c.ordered[j].ID
	})
	return c
}

// BuiltinCatalog returns a catalog of the bundled licenses only.
func BuiltinCatalog() (*Catalog, error) {
	licenses, err := LoadBuiltinLicenses()
	if err != nil {
		return nil, err
	}
	return NewCatalog(licenses), nil
}

// LoadCatalog builds a catalog from the search paths and builtins.
func LoadCatalog(projectDir string, extraDirs ...string) (*Catalog, error) {
	licenses, err := LoadFromSearchPaths(projectDir, extraDirs...)
	if err != nil {
		return nil, err
	}
	return NewCatalog(licenses), nil
}

// Lookup finds a license by id, ignoring case and surrounding whitespace.
func (c *Catalog) Lookup(id string) (*License, error) {
	if lic, ok := c.byID[normalizeID(id)]; ok {
		return lic, nil
	}
	return nil, &UnknownLicenseError{ID: id, Valid: c.IDs()}
}

// List returns all licenses sorted by id.
func (c *Catalog) List() []*License {
	out := make([]*License, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// IDs returns all license ids sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.ordered))
	for _, lic := range c.ordered {
		ids = append(ids, lic.ID)
	}
	return ids
}

// Len returns the number of licenses.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
