package cli

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/spf13/cobra"

	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/output"
)

var migrateDryRun bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and migrate pluginmeta configuration",
	Long: `Inspect and migrate pluginmeta configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (PLUGINMETA_*, e.g. PLUGINMETA_PLUGIN_VERSION)
  2. Project config (.pluginmeta.yml, or legacy .pluginmeta.json)
  3. gradle.properties (pluginName, pluginVersion, pluginSinceBuild, ...)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  pluginmeta config show

  # Convert .pluginmeta.json to .pluginmeta.yml
  pluginmeta config migrate`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert the legacy JSON config to YAML",
	Long: `Convert .pluginmeta.json to .pluginmeta.yml. The JSON file is kept as
.pluginmeta.json.bak. An existing .pluginmeta.yml is never overwritten.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigMigrate(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configMigrateCmd)

	configMigrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Show what would be migrated without writing")
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, err := yaml.Parser().Marshal(cfg.Values())
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runConfigMigrate(cmd *cobra.Command) error {
	result, err := config.MigrateProjectConfig(projectDir, migrateDryRun)
	if err != nil {
		return fmt.Errorf("migrating config: %w", err)
	}

	if result.Success {
		output.Success(cmd.OutOrStdout(), result.Message)
	} else {
		output.Skipped(cmd.OutOrStdout(), result.Message)
	}
	return nil
}
