// Package build provides version and build information for pluginmeta.
// It has no dependencies on other internal packages.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// Info is the build information shown by 'pluginmeta version'.
type Info struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	BuildDate string `yaml:"build_date"`
	GoVersion string `yaml:"go_version"`
	Platform  string `yaml:"platform"`
}

// Current returns the build information of the running binary.
func Current() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
