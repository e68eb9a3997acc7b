package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poratu/pluginmeta/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project for problems before a build",
	Long: `Check that the project has everything derive needs: a resolvable plugin
version, a description section in the README, a parseable changelog with an
entry for the version, and a current config file.

Exits with status 2 when any check fails. Warnings do not fail.`,
	Example: `  pluginmeta doctor
  pluginmeta doctor --dir plugins/smart-tomcat`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd)
	},
}

func init() {
	doctorCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := health.RunHealthChecks(cfg, logger)
	health.WriteReport(cmd.OutOrStdout(), report)

	if !report.Passed {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSome checks failed; derive would fail too.")
		return NewExitError(ExitConfigError)
	}
	return nil
}
