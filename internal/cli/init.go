package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/output"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented .pluginmeta.yml",
	Long: `Create .pluginmeta.yml in the project directory with every setting at
its default value, commented.

gradle.properties keeps working without a project config; create one to
change file locations, markers or change notes rendering.`,
	Example: `  pluginmeta init
  pluginmeta init --force   # overwrite an existing file`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	initCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command) error {
	path, err := config.WriteTemplate(projectDir, initForce)
	if stderrors.Is(err, config.ErrConfigExists) {
		return errors.NewArgumentError(err.Error(), "Use --force to overwrite it")
	}
	if err != nil {
		return errors.FileNotWritable(path, err)
	}

	output.Success(cmd.OutOrStdout(), "Created "+output.Path(path))
	return nil
}
