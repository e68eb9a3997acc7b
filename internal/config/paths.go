package config

import "path/filepath"

const (
	projectConfigFile       = ".pluginmeta.yml"
	legacyProjectConfigFile = ".pluginmeta.json"
	gradlePropertiesFile    = "gradle.properties"
)

// ProjectConfigPath returns the path to the project config file in dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, projectConfigFile)
}

// LegacyProjectConfigPath returns the path to the legacy JSON project config.
func LegacyProjectConfigPath(dir string) string {
	return filepath.Join(dir, legacyProjectConfigFile)
}

// GradlePropertiesPath returns the path to gradle.properties in dir.
func GradlePropertiesPath(dir string) string {
	return filepath.Join(dir, gradlePropertiesFile)
}
