package errors

import (
	"fmt"
	"strings"
)

// Common error messages for pluginmeta.
// These templates ensure consistent, actionable error messages.

// DescriptionMarkersNotFound creates an error for a document that lacks one or
// both description markers.
func DescriptionMarkersNotFound(start, end string, missing ...string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("plugin description section not found: %s ... %s (missing: %s)",
			start, end, strings.Join(missing, ", ")),
		"Add both marker lines to the README, each on its own line:",
		"  "+start,
		"  "+end,
		"Or point --start/--end (descriptionStart/descriptionEnd) at the markers you use",
	)
}

// DescriptionMarkersOutOfOrder creates an error when the end marker precedes
// the start marker.
func DescriptionMarkersOutOfOrder(start, end string, startLine, endLine int) *CLIError {
	return NewConfigError(
		fmt.Sprintf("plugin description end marker (line %d) comes before start marker (line %d)", endLine, startLine),
		fmt.Sprintf("Move %q above %q", start, end),
	)
}

// NoChangelogEntry creates an error when neither the requested version nor
// an unreleased entry exists in the changelog.
func NoChangelogEntry(version string, available []string) *CLIError {
	avail := "none"
	if len(available) > 0 {
		avail = strings.Join(available, ", ")
	}
	return NewConfigError(
		fmt.Sprintf("no changelog entry for version %q and no unreleased entry to fall back to (available: %s)", version, avail),
		fmt.Sprintf("Add a section for %s to the changelog", version),
		"Or add an [Unreleased] section",
	)
}

// ChangelogParseError creates an error for an unreadable or invalid changelog.
func ChangelogParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to load changelog: %s", path),
		"Check the changelog against the Keep a Changelog format (https://keepachangelog.com/en/1.1.0/)",
		"Run 'pluginmeta changelog' to see how the file is parsed",
	)
}

// ReadmeNotReadable creates an error for a missing or unreadable README.
func ReadmeNotReadable(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to read plugin description source: %s", path),
		"Check the readme path (--readme or the 'readme' config key)",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to load configuration: %s", path),
		"Check the file for syntax errors",
		"Environment overrides use the PLUGINMETA_ prefix (e.g. PLUGINMETA_PLUGIN_VERSION)",
	)
}

// InvalidOutputFormat creates an error for an unknown --format/--output value.
func InvalidOutputFormat(flag, value string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid %s: %q", flag, value),
		"Valid values: "+strings.Join(valid, ", "),
	)
}

// MissingOutputFile creates an error for commands that need --out.
func MissingOutputFile(command string) *CLIError {
	return NewArgumentErrorWithUsage(
		"an output file is required",
		fmt.Sprintf("pluginmeta %s --out <file>", command),
		"Watch mode rewrites a file on every change; stdout is not supported",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}

// MissingPluginVersion creates an error when no plugin version is configured.
func MissingPluginVersion() *CLIError {
	return NewConfigError(
		"plugin version is not set",
		"Set pluginVersion in gradle.properties or .pluginmeta.yml",
		"Or export PLUGINMETA_PLUGIN_VERSION",
		"Or enable versionFromGit and tag the release commit",
	)
}
