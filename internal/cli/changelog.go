package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/errors"
)

var (
	changelogLastFlag  int
	changelogPlainFlag bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog [version]",
	Short: "View changelog entries",
	Long: `View the project changelog as parsed by pluginmeta.

By default, shows the 5 most recent entries. Use a version argument to
see all entries for a specific version, or use --last to control entry count.
Use this to check how a hand-written CHANGELOG.md is understood before
relying on it for change notes.

Examples:
  pluginmeta changelog              # Show 5 most recent entries
  pluginmeta changelog 4.6.0        # Show all entries for version 4.6.0
  pluginmeta changelog unreleased   # Show unreleased changes
  pluginmeta changelog --last 10    # Show 10 most recent entries
  pluginmeta changelog --plain      # Plain output (no colors/icons)`,
	Args: maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogView(cmd, args)
	},
}

func init() {
	changelogCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().IntVar(&changelogLastFlag, "last", 5, "Number of entries to show")
	changelogCmd.Flags().BoolVar(&changelogPlainFlag, "plain", false, "Plain text output (no colors/icons)")
}

func runChangelogView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := changelog.Load(cfg.Changelog)
	if err != nil {
		return errors.ChangelogParseError(cfg.Changelog, err)
	}

	opts := changelog.FormatOptions{
		Plain: changelogPlainFlag,
	}

	if len(args) == 1 {
		return showVersion(log, args[0], cmd, opts)
	}

	return showLastEntries(log, changelogLastFlag, cmd, opts)
}

func showVersion(log *changelog.Changelog, version string, cmd *cobra.Command, opts changelog.FormatOptions) error {
	v, err := log.GetVersion(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if stderrors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, ver := range log.ListVersions() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	return changelog.FormatVersion(v, cmd.OutOrStdout(), opts)
}

func showLastEntries(log *changelog.Changelog, n int, cmd *cobra.Command, opts changelog.FormatOptions) error {
	entries := log.GetLastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := log.GetEntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}

	return nil
}
