package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/poratu/pluginmeta/internal/description"
)

// GetDefaultConfigTemplate returns a fully commented project config template
// written by 'pluginmeta init'.
func GetDefaultConfigTemplate() string {
	return `# pluginmeta configuration
# Values here override gradle.properties; PLUGINMETA_* environment variables override both.

# Plugin identity (usually read from gradle.properties)
# pluginName: ""
# pluginVersion: ""                   # e.g. 2.1.7-alpha.3 publishes to the "alpha" channel
# pluginSinceBuild: ""
# pluginUntilBuild: ""
versionFromGit: false                 # Use the tag on HEAD when pluginVersion is unset

# Sources
readme: README.md                     # Holds the plugin description between the markers
changelog: CHANGELOG.md               # Keep a Changelog markdown, or .yaml/.yml

# Description markers (each must be a whole line in the readme)
descriptionStart: "<!-- Plugin description -->"
descriptionEnd: "<!-- Plugin description end -->"

# Change notes
changeNotesHeader: false              # Include the "[version] - date" line
changeNotesEmptySections: false       # Keep sections with no entries
changeNotesFormat: html               # html | markdown | plain
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"pluginName":       "",
		"pluginVersion":    "",
		"pluginSinceBuild": "",
		"pluginUntilBuild": "",
		"versionFromGit":   false,
		"readme":           "README.md",
		"changelog":        "CHANGELOG.md",
		"descriptionStart": description.DefaultStartMarker,
		"descriptionEnd":   description.DefaultEndMarker,
		// The manifest shows notes under the plugin version already, so the
		// header line and empty sections are left out by default.
		"changeNotesHeader":        false,
		"changeNotesEmptySections": false,
		"changeNotesFormat":        "html",
	}
}

// Keys returns every configuration key, sorted.
func Keys() []string {
	defaults := GetDefaults()
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrConfigExists is returned by WriteTemplate when the project config
// already exists and force is not set.
var ErrConfigExists = errors.New("project config already exists")

// WriteTemplate writes the commented default config to dir and returns its path.
func WriteTemplate(dir string, force bool) (string, error) {
	path := ProjectConfigPath(dir)
	if fileExists(path) && !force {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644); err != nil {
		return path, fmt.Errorf("writing config template: %w", err)
	}
	return path, nil
}
