package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/output"
)

// DefaultChangelogSource is the YAML changelog sync and check read from,
// relative to the project directory.
const DefaultChangelogSource = "CHANGELOG.yaml"

var changelogSourceFlag string

var changelogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Regenerate CHANGELOG.md from CHANGELOG.yaml",
	Long: `Regenerate the markdown changelog from the YAML source file.

This command reads CHANGELOG.yaml (or --source) and writes the file named
by the changelog config key following the Keep a Changelog format.

The generated file is idempotent - running sync multiple times produces
identical output as long as the source YAML hasn't changed.

Example:
  pluginmeta changelog sync
  pluginmeta changelog sync --source docs/changelog.yaml`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogSync(cmd)
	},
}

func init() {
	changelogCmd.AddCommand(changelogSyncCmd)

	changelogCmd.PersistentFlags().StringVar(&changelogSourceFlag, "source", DefaultChangelogSource, "YAML changelog source for sync and check")
}

func runChangelogSync(cmd *cobra.Command) error {
	yamlPath, mdPath, err := changelogSyncPaths()
	if err != nil {
		return err
	}
	return syncChangelogFiles(yamlPath, mdPath, cmd)
}

// changelogSyncPaths returns the YAML source and the markdown target.
func changelogSyncPaths() (string, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", "", err
	}

	yamlPath := cfg.Path(changelogSourceFlag)
	mdPath := cfg.Changelog
	if !changelog.IsMarkdownPath(mdPath) {
		return "", "", errors.NewConfigError(
			fmt.Sprintf("changelog %s is not a markdown file", mdPath),
			"Point the changelog config key at CHANGELOG.md to sync into it",
			"Change notes can be read from the YAML source directly; sync is not needed then",
		)
	}
	if _, err := os.Stat(yamlPath); err != nil {
		return "", "", errors.WrapWithMessage(err, errors.Configuration,
			fmt.Sprintf("cannot find changelog source: %s", yamlPath),
			"Pass --source with the path of the YAML changelog",
			fmt.Sprintf("Or create %s in the project directory", DefaultChangelogSource),
		)
	}
	return yamlPath, mdPath, nil
}

func syncChangelogFiles(yamlPath, mdPath string, cmd *cobra.Command) error {
	log, err := changelog.Load(yamlPath)
	if err != nil {
		return errors.ChangelogParseError(yamlPath, err)
	}

	content, err := changelog.RenderMarkdownString(log)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		return errors.FileNotWritable(mdPath, err)
	}

	output.Success(cmd.OutOrStdout(), fmt.Sprintf("Synced %s → %s", yamlPath, output.Path(mdPath)))
	return nil
}

