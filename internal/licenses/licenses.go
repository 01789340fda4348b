// Package licenses provides the bundled license catalog and placeholder
// rendering.
package licenses

// License is a single license template.
type License struct {
	ID           string        `yaml:"id" json:"id"`
	Name         string        `yaml:"name" json:"name"`
	SPDXID       string        `yaml:"spdx_id,omitempty" json:"spdx_id,omitempty"`
	Description  string        `yaml:"description,omitempty" json:"description,omitempty"`
	Body         string        `yaml:"body" json:"-"`
	Placeholders []Placeholder `yaml:"placeholders,omitempty" json:"placeholders,omitempty"`
	Source       string        `yaml:"-" json:"source"` // file path or "builtin"
}

// Placeholder maps a literal token in the body to the field that fills it.
type Placeholder struct {
	Token string `yaml:"token" json:"token"`
	Field Field  `yaml:"field" json:"field"`
}

// Field names a substitution value.
type Field string

const (
	FieldAuthor  Field = "author"
	FieldYear    Field = "year"
	FieldEmail   Field = "email"
	FieldProject Field = "project"
)

// Fields lists every known field in prompt order.
var Fields = []Field{FieldAuthor, FieldYear, FieldEmail, FieldProject}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	switch f {
	case FieldAuthor, FieldYear, FieldEmail, FieldProject:
		return true
	}
	return false
}

// Token returns the canonical token for the field, e.g. "{{year}}".
func (f Field) Token() string {
	return "{{" + string(f) + "}}"
}

// Values holds the substitution values for one render.
type Values struct {
	Author  string `json:"author"`
	Year    string `json:"year"`
	Email   string `json:"email,omitempty"`
	Project string `json:"project,omitempty"`
}

// Get returns the value for f.
func (v Values) Get(f Field) string {
	switch f {
	case FieldAuthor:
		return v.Author
	case FieldYear:
		return v.Year
	case FieldEmail:
		return v.Email
	case FieldProject:
		return v.Project
	}
	return ""
}

// Fields returns the distinct fields the license body actually uses, in
// Fields order.
func (l *License) Fields() []Field {
	if l == nil {
		return nil
	}
	used := make(map[Field]bool)
	for _, ph := range l.Placeholders {
		if containsToken(l.Body, ph.Token) {
			used[ph.Field] = true
		}
	}
	known, _ := canonicalTokens(l.Body)
	for _, f := range known {
		used[f] = true
	}

	fields := make([]Field, 0, len(used))
	for _, f := range Fields {
		if used[f] {
			fields = append(fields, f)
		}
	}
	return fields
}
