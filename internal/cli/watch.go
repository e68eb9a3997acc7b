package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/metadata"
	"github.com/poratu/pluginmeta/internal/output"
	"github.com/poratu/pluginmeta/internal/watch"
)

var (
	watchOutput   string
	watchOut      string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rewrite derived metadata whenever its sources change",
	Long: `Derive the plugin metadata into a file, then rewrite it every time the
README, the changelog or a config file changes. Runs until interrupted.

A failed derivation (for example a missing marker while the README is
being edited) is reported and the previous file is left in place.

Examples:
  pluginmeta watch --out build/plugin-meta.yaml
  pluginmeta watch --output xml --out build/plugin-meta.xml`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	watchCmd.GroupID = GroupMetadata
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", string(metadata.OutputYAML), "Output format: yaml, env, xml")
	watchCmd.Flags().StringVar(&watchOut, "out", "", "File to keep up to date (required)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before regenerating")
}

func runWatch(cmd *cobra.Command) error {
	if watchOut == "" {
		return errors.MissingOutputFile("watch")
	}
	format, err := parseOutputFormat(watchOutput)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(watchedFiles(cfg), watch.Options{Debounce: watchDebounce, Logger: logger})
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "failed to start watching")
	}
	defer w.Close()

	regenerate := func() {
		if err := regenerateMetadata(watchOut, format); err != nil {
			errors.FprintAny(cmd.ErrOrStderr(), err)
			return
		}
		output.Success(cmd.OutOrStdout(), output.Path(watchOut)+" updated")
	}

	regenerate()
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %d files (Ctrl+C to stop)\n", len(w.Files()))

	return w.Run(ctx, func(changed []string) {
		logger.Debug("sources changed", zap.Strings("files", changed))
		regenerate()
	})
}

// regenerateMetadata reloads the configuration and rewrites out. The config
// is reloaded because gradle.properties and the project config are watched
// too.
func regenerateMetadata(out string, format metadata.OutputFormat) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := deriveMetadata(cfg)
	if err != nil {
		return err
	}
	return writeMetadataFile(out, m, format)
}

// watchedFiles lists every file that feeds the derivation.
func watchedFiles(cfg *config.Configuration) []string {
	files := []string{
		cfg.Readme,
		cfg.Changelog,
		config.GradlePropertiesPath(cfg.Dir),
		config.ProjectConfigPath(cfg.Dir),
	}
	if configPath != "" {
		files = append(files, configPath)
	}
	return files
}
