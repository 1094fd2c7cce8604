package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/releasekit/internal/config"
	clierrors "github.com/ariel-frischer/releasekit/internal/errors"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage releasekit configuration",
	Long: `Manage releasekit configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELEASEKIT_*)
  2. Project config (.releasekit/config.yml, or legacy .releasekit/config.json)
  3. User config (~/.config/releasekit/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  releasekit config show

  # Write a commented project config
  releasekit config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .releasekit/config.yml with all options documented",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectConfigPath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return clierrors.NewConfigError(
				fmt.Sprintf("%s already exists", path),
				"Use --force to overwrite it",
			)
		}
		if err := os.MkdirAll(config.ProjectConfigDir(), 0o755); err != nil {
			return clierrors.FileAccessFailed("create", "config directory", config.ProjectConfigDir(), err)
		}
		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return clierrors.FileAccessFailed("write", "config", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
}
