package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/poratu/pluginmeta/internal/build"
)

var (
	versionPlain bool
	versionYAML  bool
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information",
	Long:    "Display version, commit, build date, and Go version information for pluginmeta",
	Example: `  # Show version info
  pluginmeta version

  # Plain output (for scripts)
  pluginmeta version --plain`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := build.Current()
		switch {
		case versionYAML:
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(info)
		case versionPlain:
			printPlainVersion(cmd.OutOrStdout(), info)
		default:
			printPrettyVersion(cmd.OutOrStdout(), info)
		}
		return nil
	},
}

func init() {
	versionCmd.GroupID = GroupInfo
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	versionCmd.Flags().BoolVar(&versionYAML, "yaml", false, "Output as YAML")
	versionCmd.MarkFlagsMutuallyExclusive("plain", "yaml")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer, info build.Info) {
	fmt.Fprintf(w, "pluginmeta %s\n", info.Version)
	fmt.Fprintf(w, "commit: %s\n", info.Commit)
	fmt.Fprintf(w, "built: %s\n", info.BuildDate)
	fmt.Fprintf(w, "go: %s\n", info.GoVersion)
	fmt.Fprintf(w, "platform: %s\n", info.Platform)
}

// printPrettyVersion prints aligned, colored version info
func printPrettyVersion(w io.Writer, info build.Info) {
	label := color.New(color.FgYellow).SprintFunc()
	value := color.New(color.FgWhite, color.Bold).SprintFunc()

	version := info.Version
	if build.IsDevBuild() {
		version += " (development build)"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Version", version},
		{"Commit", truncateCommit(info.Commit)},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s\n", label(fmt.Sprintf("%10s", r.label)), value(r.value))
	}
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
