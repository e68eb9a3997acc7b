package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poratu/pluginmeta/internal/channel"
)

var channelCmd = &cobra.Command{
	Use:   "channel [version]",
	Short: "Print the release channel for a version",
	Long: `Print the release channel for a version: the first dot-separated part
of its pre-release label, or "default" when there is none.

The version defaults to the configured plugin version.

Examples:
  pluginmeta channel 2.1.7-alpha.3   # alpha
  pluginmeta channel 1.0.0           # default
  pluginmeta channel`,
	Args: maxArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChannel(cmd, args)
	},
}

func init() {
	channelCmd.GroupID = GroupMetadata
	rootCmd.AddCommand(channelCmd)
}

func runChannel(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && args[0] != "" {
		fmt.Fprintln(cmd.OutOrStdout(), channel.Derive(args[0]))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	version, err := versionArg(cfg, nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), channel.Derive(version))
	return nil
}
