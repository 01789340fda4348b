// Package config loads lic configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/lic/internal/logging"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. LIC_DEFAULTS_LICENSE.
const EnvPrefix = "LIC"

// Config is the full lic configuration.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Render   RenderConfig   `mapstructure:"render"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	TUI      TUIConfig      `mapstructure:"tui"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// DefaultsConfig holds fallbacks used when flags are omitted.
type DefaultsConfig struct {
	// License is the license id used when --license is not given.
	// Default: mit.
	License string `mapstructure:"license"`

	// Author overrides the git user.name fallback.
	Author string `mapstructure:"author"`

	// Email overrides the git user.email fallback.
	Email string `mapstructure:"email"`

	// Output is the file written when --output is not given.
	// Default: LICENSE.
	Output string `mapstructure:"output"`
}

// CatalogConfig lists extra directories of license definitions.
type CatalogConfig struct {
	Dirs []string `mapstructure:"dirs"`
}

// RenderConfig controls placeholder handling.
type RenderConfig struct {
	// Strict fails rendering when placeholders remain.
	Strict bool `mapstructure:"strict"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TUIConfig controls the interactive wizard.
type TUIConfig struct {
	Theme string `mapstructure:"theme"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			License: "mit",
			Output:  "LICENSE",
		},
		Catalog: CatalogConfig{
			Dirs: []string{},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
		TUI: TUIConfig{
			Theme: "default",
		},
	}
}

// DirFunc resolves the default config directory. Tests replace it.
var DirFunc = DefaultDir

// DefaultDir returns $XDG_CONFIG_HOME/lic or ~/.config/lic.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lic")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".config", "lic")
	}
	return filepath.Join(home, ".config", "lic")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(DirFunc(), "config.yaml")
}

// Load reads configuration. An explicit path must exist; without one the
// default location is optional. Environment variables override the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DirFunc())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		if cfg.File != "" {
			return nil, fmt.Errorf("%s: %w", cfg.File, err)
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("logging.format: must be %q or %q, got %q",
			logging.FormatConsole, logging.FormatJSON, c.Logging.Format)
	}
	if strings.TrimSpace(c.Defaults.Output) == "" {
		return fmt.Errorf("defaults.output: must not be empty")
	}
	return nil
}

func (c *Config) normalize() {
	c.Defaults.License = strings.ToLower(strings.TrimSpace(c.Defaults.License))
	c.Defaults.Author = strings.TrimSpace(c.Defaults.Author)
	c.Defaults.Email = strings.TrimSpace(c.Defaults.Email)
	c.Defaults.Output = strings.TrimSpace(c.Defaults.Output)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.TUI.Theme = strings.TrimSpace(c.TUI.Theme)

	dirs := make([]string, 0, len(c.Catalog.Dirs))
	for _, dir := range c.Catalog.Dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		dirs = append(dirs, expandHome(dir))
	}
	c.Catalog.Dirs = dirs
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("defaults.license", cfg.Defaults.License)
	v.SetDefault("defaults.author", cfg.Defaults.Author)
	v.SetDefault("defaults.email", cfg.Defaults.Email)
	v.SetDefault("defaults.output", cfg.Defaults.Output)
	v.SetDefault("catalog.dirs", cfg.Catalog.Dirs)
	v.SetDefault("render.strict", cfg.Render.Strict)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("tui.theme", cfg.TUI.Theme)
}

// Template is written by `lic config init`.
const Template = `# lic Configuration File
#
# Values here are used when the matching flag is omitted.
# Every key can also be set through the environment, e.g. LIC_DEFAULTS_AUTHOR.

defaults:
  # License id used when --license is not given.
  license: mit
  # Copyright holder. Leave empty to use git config user.name.
  author: ""
  # Contact email. Leave empty to use git config user.email.
  email: ""
  # File written when --output is not given.
  output: LICENSE

catalog:
  # Extra directories of license definitions (*.yaml), searched after
  # ./.lic/licenses, ~/.config/lic/licenses and /usr/share/lic/licenses.
  dirs: []

render:
  # Fail instead of leaving unresolved placeholders in the output.
  strict: false

logging:
  # trace, debug, info, warn, error
  level: warn
  # console or json
  format: console

tui:
  # default or high-contrast
  theme: default
`
