package styles

// ThemeTokens defines the semantic color roles for the wizard.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Accent    string
	Focus     string
	Success   string
	Warning   string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeByName returns the named theme, or DefaultTheme and false when the
// name is unknown.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return DefaultTheme, true
	}
	theme, ok := Themes[name]
	if !ok {
		return DefaultTheme, false
	}
	return theme, true
}
