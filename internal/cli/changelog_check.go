package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/output"
)

var changelogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate CHANGELOG.md matches CHANGELOG.yaml",
	Long: `Validate that the markdown changelog is in sync with the YAML source.

This command compares the current CHANGELOG.md with what would be
generated from CHANGELOG.yaml. Returns exit code 0 if in sync,
or exit code 1 with a useful message if out of sync.

Example:
  pluginmeta changelog check`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogCheck(cmd)
	},
}

func init() {
	changelogCmd.AddCommand(changelogCheckCmd)
}

func runChangelogCheck(cmd *cobra.Command) error {
	yamlPath, mdPath, err := changelogSyncPaths()
	if err != nil {
		return err
	}
	return checkChangelogSync(yamlPath, mdPath, cmd)
}

func checkChangelogSync(yamlPath, mdPath string, cmd *cobra.Command) error {
	log, err := changelog.Load(yamlPath)
	if err != nil {
		return errors.ChangelogParseError(yamlPath, err)
	}

	expected, err := changelog.RenderMarkdownString(log)
	if err != nil {
		return fmt.Errorf("rendering expected markdown: %w", err)
	}

	actual, err := os.ReadFile(mdPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", mdPath, err)
	}

	if !bytes.Equal([]byte(expected), actual) {
		return reportSyncMismatch(mdPath, yamlPath, cmd)
	}

	output.Success(cmd.OutOrStdout(), fmt.Sprintf("%s is in sync with %s", mdPath, yamlPath))
	return nil
}

func reportSyncMismatch(mdPath, yamlPath string, cmd *cobra.Command) error {
	output.Failure(cmd.OutOrStdout(), fmt.Sprintf("%s is out of sync with %s", mdPath, yamlPath))
	fmt.Fprintf(cmd.OutOrStdout(), "\nTo fix, run:\n  pluginmeta changelog sync\n")
	return NewExitError(ExitFailure)
}
