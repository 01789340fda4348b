// Package cli provides configuration commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencode-ai/lic/internal/config"
	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

// configCmd manages the file itself, so it must not require the file to
// exist or parse.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the lic configuration file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(config.DefaultConfig())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Write a commented default config file to $XDG_CONFIG_HOME/lic/config.yaml (or the --config path).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result := createConfigFile(configTarget(), configInitForce)

		if IsJSONOutput() {
			if err := WriteOutput(cmd.OutOrStdout(), result); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result.Status, result.Message)
		}

		if result.Status == statusFailed {
			return fmt.Errorf("config init failed")
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configTarget()
		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), map[string]any{"path": path})
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

const (
	statusDone    = "done"
	statusSkipped = "skipped"
	statusFailed  = "failed"
)

type initResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func configTarget() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func createConfigFile(path string, force bool) initResult {
	result := initResult{Path: path}

	if _, err := os.Stat(path); err == nil && !force {
		result.Status = statusSkipped
		result.Message = fmt.Sprintf("%s already exists (use --force to overwrite)", path)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		result.Status = statusFailed
		result.Message = fmt.Sprintf("create config dir: %v", err)
		return result
	}

	if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
		result.Status = statusFailed
		result.Message = fmt.Sprintf("write config: %v", err)
		return result
	}

	result.Status = statusDone
	result.Message = fmt.Sprintf("wrote %s", path)
	return result
}
