// Package channel derives the marketplace release channel from a plugin version.
//
// Versions follow SemVer with an optional pre-release label, e.g. 2.1.7-alpha.3.
// The first dot-separated component of the label selects the channel; builds
// without a label go to the default channel.
package channel

import "strings"

// Default is the channel for stable releases.
const Default = "default"

// Derive returns the release channel for version. It never fails: inputs
// without a usable pre-release label map to Default.
//
//	Derive("2.1.7-alpha.3") == "alpha"
//	Derive("1.0.0")         == "default"
//	Derive("1.0.0-")        == "default"
//	Derive("1.0.0-rc-1.2")  == "rc-1"
func Derive(version string) string {
	_, prerelease, found := strings.Cut(version, "-")
	if !found || prerelease == "" {
		return Default
	}
	label, _, _ := strings.Cut(prerelease, ".")
	if label == "" {
		return Default
	}
	return label
}
