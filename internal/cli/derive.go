package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/metadata"
)

var (
	deriveOutput string
	deriveOut    string
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive all plugin metadata",
	Long: `Derive the plugin description, change notes and release channel in one
pass and print them together with the plugin name, version and build range.

Output formats:
  yaml   one document with all fields (default)
  env    PLUGIN_* variables, e.g. for $GITHUB_ENV
  xml    an <idea-plugin> fragment for plugin.xml

Examples:
  pluginmeta derive
  pluginmeta derive --output env >> "$GITHUB_ENV"
  pluginmeta derive --output xml --out build/plugin-meta.xml`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDerive(cmd)
	},
}

func init() {
	deriveCmd.GroupID = GroupMetadata
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().StringVarP(&deriveOutput, "output", "o", string(metadata.OutputYAML), "Output format: yaml, env, xml")
	deriveCmd.Flags().StringVar(&deriveOut, "out", "", "Write to file instead of stdout")
}

func runDerive(cmd *cobra.Command) error {
	format, err := parseOutputFormat(deriveOutput)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := deriveMetadata(cfg)
	if err != nil {
		return err
	}

	if deriveOut == "" {
		return metadata.Write(cmd.OutOrStdout(), m, format)
	}
	return writeMetadataFile(deriveOut, m, format)
}

func parseOutputFormat(value string) (metadata.OutputFormat, error) {
	f, err := metadata.ParseOutputFormat(value)
	if err != nil {
		return "", errors.InvalidOutputFormat("--output", value, metadata.OutputFormats())
	}
	return f, nil
}

// deriveMetadata reads the project files and runs the full derivation.
func deriveMetadata(cfg *config.Configuration) (*metadata.Metadata, error) {
	in, err := metadata.LoadInputs(cfg, logger)
	if err != nil {
		return nil, err
	}
	m, err := metadata.Derive(in)
	if err != nil {
		return nil, err
	}
	logger.Debug("derived metadata",
		zap.String("version", m.Version),
		zap.String("channel", m.Channel))
	return m, nil
}

func writeMetadataFile(path string, m *metadata.Metadata, format metadata.OutputFormat) error {
	if err := metadata.WriteFile(path, m, format); err != nil {
		return errors.FileNotWritable(path, err)
	}
	logger.Info("metadata written", zap.String("path", path))
	return nil
}
