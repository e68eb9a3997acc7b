package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/metadata"
)

var (
	notesFormat        string
	notesHeader        bool
	notesEmptySections bool
)

var notesCmd = &cobra.Command{
	Use:   "notes [version]",
	Short: "Print the change notes for a version",
	Long: `Print the change notes for a version, rendered from the changelog.

When the version has no changelog entry the Unreleased entry is used
instead. The version defaults to the configured plugin version.

Flags override the changeNotes* config keys.

Examples:
  pluginmeta notes                           # configured version, HTML
  pluginmeta notes 4.7.0 --format markdown
  pluginmeta notes 4.7.0 --header --empty-sections
  pluginmeta notes 5.0.0-eap.1 --format plain   # Unreleased fallback`,
	Args: maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotes(cmd, args)
	},
}

func init() {
	notesCmd.GroupID = GroupMetadata
	rootCmd.AddCommand(notesCmd)

	notesCmd.Flags().StringVarP(&notesFormat, "format", "f", "", "Output format: html, markdown, plain (default: changeNotesFormat config key)")
	notesCmd.Flags().BoolVar(&notesHeader, "header", false, "Include the version header")
	notesCmd.Flags().BoolVar(&notesEmptySections, "empty-sections", false, "Include sections without entries")
}

func runNotes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := notesOptions(cmd, cfg)
	if err != nil {
		return err
	}

	version, err := versionArg(cfg, args)
	if err != nil {
		return err
	}

	c, err := changelog.Load(cfg.Changelog)
	if err != nil {
		return errors.ChangelogParseError(cfg.Changelog, err)
	}

	logger.Debug("resolving change notes",
		zap.String("version", version),
		zap.String("format", string(opts.Format)))
	out, err := changelog.Resolve(c, version, opts)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), withTrailingNewline(out))
	return nil
}

// notesOptions applies explicitly set flags over the configured options.
func notesOptions(cmd *cobra.Command, cfg *config.Configuration) (changelog.RenderOptions, error) {
	opts := cfg.RenderOptions()
	if cmd.Flags().Changed("format") {
		f, err := changelog.ParseFormat(notesFormat)
		if err != nil {
			return opts, errors.InvalidOutputFormat("--format", notesFormat, changelog.Formats())
		}
		opts.Format = f
	}
	if cmd.Flags().Changed("header") {
		opts.Header = notesHeader
	}
	if cmd.Flags().Changed("empty-sections") {
		opts.EmptySections = notesEmptySections
	}
	return opts, nil
}

// versionArg returns the version given on the command line, or the
// configured one.
func versionArg(cfg *config.Configuration, args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	v, err := metadata.ResolveVersion(cfg, logger)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", errors.MissingPluginVersion()
	}
	return v, nil
}
