package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/git"
)

// Command groups shown in help output.
const (
	GroupMetadata      = "metadata"
	GroupChangelog     = "changelog"
	GroupConfiguration = "configuration"
	GroupInfo          = "info"
)

var (
	configPath string
	projectDir string
	verbose    bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pluginmeta",
	Short: "Derive IDE plugin build metadata from a README and changelog",
	Long: `pluginmeta derives the metadata an IDE plugin build publishes with:

  - the plugin description, cut from the README between two marker lines
    and rendered to HTML
  - the change notes for the version being built, taken from the changelog
    (falling back to the Unreleased entry)
  - the release channel, read from the pre-release part of the version

Settings come from gradle.properties, .pluginmeta.yml and PLUGINMETA_*
environment variables, in increasing priority.

Source: https://github.com/poratu/pluginmeta`,
	Example: `  # Print everything the plugin manifest needs
  pluginmeta derive

  # Write a plugin.xml fragment and keep it up to date while editing
  pluginmeta watch --output xml --out build/plugin-meta.xml

  # Inspect single pieces
  pluginmeta describe
  pluginmeta notes 4.7.0 --format markdown --header
  pluginmeta channel 4.7.0-beta.2`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		git.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupMetadata, Title: "Metadata:"},
		&cobra.Group{ID: GroupChangelog, Title: "Changelog:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
		&cobra.Group{ID: GroupInfo, Title: "Info:"},
	)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default: <dir>/.pluginmeta.yml)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the stderr logger. Only warnings and errors are shown
// unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadConfig loads the layered configuration for the --dir project.
func loadConfig() (*config.Configuration, error) {
	logger.Debug("loading configuration",
		zap.String("dir", projectDir),
		zap.String("config", configPath))
	return config.LoadWithOptions(config.LoadOptions{
		Dir:               projectDir,
		ProjectConfigPath: configPath,
		Logger:            logger,
	})
}

// Execute runs the root command and returns the process exit code.
// Errors are printed to stderr before returning.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	code := exitCodeFor(err)
	if !isSilent(err) {
		errors.FprintAny(rootCmd.ErrOrStderr(), err)
	}
	return code
}
