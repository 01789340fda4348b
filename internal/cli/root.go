// Package cli provides the lic command tree.
package cli

import (
	"github.com/opencode-ai/lic/internal/config"
	"github.com/opencode-ai/lic/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "0.1.0"

var (
	cfgFile        string
	logLevel       string
	logFormat      string
	jsonOutput     bool
	nonInteractive bool

	// shared by generate and show --render
	flagAuthor  string
	flagYear    string
	flagEmail   string
	flagProject string
	flagStrict  bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lic",
	Short: "Initialize a LICENSE file",
	Long: `lic writes a LICENSE file from a bundled license template, filling in the
copyright holder and year.

The author defaults to git config user.name and the year to the current year.
Without flags, lic writes the MIT license to ./LICENSE.`,
	Example: `  # MIT license for the git user, current year
  lic

  # Apache 2.0 for a named holder and year
  lic -l apache-2.0 -a "Jane Doe" -y 2024

  # Pick a license interactively
  lic -i

  # Preview without writing
  lic -l bsd-3-clause --stdout`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime()
	},
	RunE: runGenerate,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/lic/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "log format: console or json")
	flags.BoolVar(&jsonOutput, "json", false, "print machine-readable JSON")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt")

	flags.StringVarP(&flagAuthor, "author", "a", "", "copyright holder name (default: git config user.name)")
	flags.StringVarP(&flagYear, "year", "y", "", "copyright year (default: current year)")
	flags.StringVar(&flagEmail, "email", "", "contact email (default: git config user.email)")
	flags.StringVar(&flagProject, "project", "", "project name (default: current directory name)")
	flags.BoolVar(&flagStrict, "strict", false, "fail if any placeholder is left unresolved")
}

func initRuntime() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}

	logger := logging.Component("cli")
	logger.Debug().
		Str("config", cfg.File).
		Msg("configuration loaded")

	appConfig = cfg
	return nil
}

// initLogging applies --log-level and --log-format over cfg and configures
// the base logger.
func initLogging(cfg *config.Config) error {
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
}

// GetConfig returns the loaded configuration, or defaults before load.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}
