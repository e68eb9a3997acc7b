package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/poratu/pluginmeta/internal/description"
	"github.com/poratu/pluginmeta/internal/metadata"
)

var (
	describeReadme string
	describeStart  string
	describeEnd    string
	describeRaw    bool
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the plugin description from the README",
	Long: `Print the plugin description: the README lines strictly between the
start and end markers, rendered to HTML.

Both markers must be present, each on a line of its own, with the start
marker first. The first occurrence of each marker is used.

Examples:
  pluginmeta describe                         # HTML from README.md
  pluginmeta describe --raw                   # Markdown as written
  pluginmeta describe --readme docs/ABOUT.md
  pluginmeta describe --start '<!-- about -->' --end '<!-- /about -->'`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDescribe(cmd)
	},
}

func init() {
	describeCmd.GroupID = GroupMetadata
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVar(&describeReadme, "readme", "", "Description source (default: readme config key)")
	describeCmd.Flags().StringVar(&describeStart, "start", "", "Start marker line (default: descriptionStart config key)")
	describeCmd.Flags().StringVar(&describeEnd, "end", "", "End marker line (default: descriptionEnd config key)")
	describeCmd.Flags().BoolVar(&describeRaw, "raw", false, "Print the markdown section without HTML conversion")
}

func runDescribe(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Readme
	if describeReadme != "" {
		path = describeReadme
	}
	markers := cfg.Markers()
	if describeStart != "" {
		markers.Start = describeStart
	}
	if describeEnd != "" {
		markers.End = describeEnd
	}

	logger.Debug("extracting description", zap.String("readme", path))
	doc, err := metadata.ReadReadme(path)
	if err != nil {
		return err
	}

	extract := description.Extract
	if describeRaw {
		extract = description.Section
	}
	out, err := extract(doc, markers)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), withTrailingNewline(out))
	return nil
}

// withTrailingNewline terminates non-empty s with a newline.
func withTrailingNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
