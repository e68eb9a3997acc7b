package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const testReadme = `# Smart Tomcat

<!-- Plugin description -->
Run **Tomcat** from the IDE.
<!-- Plugin description end -->

## Install
`

const testChangelog = `# Changelog

## [Unreleased]

### Added
- Tomcat 11 support

## [4.6.0] - 2025-11-02

### Fixed
- Debugger port reuse
`

const testProperties = `pluginGroup = com.poratu.idea.plugins.tomcat
pluginName = Smart Tomcat
pluginVersion = 4.6.0
pluginSinceBuild = 231

! Gradle
org.gradle.configuration-cache = true
org.gradle.caching = true
`

// writeTestProject creates a project directory with a README, changelog and
// gradle.properties. overrides replace or add files; an empty value removes
// the file.
func writeTestProject(t *testing.T, overrides map[string]string) string {
	t.Helper()

	files := map[string]string{
		"README.md":         testReadme,
		"CHANGELOG.md":      testChangelog,
		"gradle.properties": testProperties,
	}
	for name, content := range overrides {
		files[name] = content
	}

	dir := t.TempDir()
	for name, content := range files {
		if content == "" {
			continue
		}
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// resetFlags restores every flag in the command tree to its default, since
// the flag variables are package-level and survive between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// setContext sets ctx on the whole tree. Cobra only hands the root context
// to a subcommand that has none yet.
func setContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, sub := range cmd.Commands() {
		setContext(sub, ctx)
	}
}

// runCLI executes the root command with args and returns stdout, stderr and
// the exit code. It mutates global command state, so callers must not run in
// parallel.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	return runCLIContext(context.Background(), t, args...)
}

func runCLIContext(ctx context.Context, t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	setContext(rootCmd, ctx)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	code := Execute()
	return stdout.String(), stderr.String(), code
}
