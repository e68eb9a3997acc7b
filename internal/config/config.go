// Package config loads pluginmeta settings using koanf.
//
// Layers, lowest priority first: built-in defaults, gradle.properties in the
// project directory, the project config file (.pluginmeta.yml, or the legacy
// .pluginmeta.json), and PLUGINMETA_* environment variables. Key names match
// the Gradle property names (pluginVersion, pluginSinceBuild, ...) so a
// project can keep using gradle.properties as its single source of truth.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/description"
	"github.com/poratu/pluginmeta/internal/errors"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "PLUGINMETA_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceGradle  ConfigSource = "gradle"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration holds everything needed to derive plugin metadata.
type Configuration struct {
	PluginName       string `koanf:"pluginName"`
	PluginVersion    string `koanf:"pluginVersion"`
	PluginSinceBuild string `koanf:"pluginSinceBuild"`
	PluginUntilBuild string `koanf:"pluginUntilBuild"`

	// Readme and Changelog are resolved against Dir after loading.
	Readme    string `koanf:"readme" validate:"required"`
	Changelog string `koanf:"changelog" validate:"required"`

	DescriptionStart string `koanf:"descriptionStart" validate:"required"`
	DescriptionEnd   string `koanf:"descriptionEnd" validate:"required,nefield=DescriptionStart"`

	ChangeNotesHeader        bool   `koanf:"changeNotesHeader"`
	ChangeNotesEmptySections bool   `koanf:"changeNotesEmptySections"`
	ChangeNotesFormat        string `koanf:"changeNotesFormat" validate:"oneof=html markdown plain"`

	// VersionFromGit reads the plugin version from the tag on HEAD when
	// pluginVersion is not set anywhere.
	VersionFromGit bool `koanf:"versionFromGit"`

	// Dir is the project directory every relative path is resolved against.
	Dir string `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// Dir is the project directory (default: current directory).
	Dir string
	// ProjectConfigPath overrides the project config path (default: <Dir>/.pluginmeta.yml).
	ProjectConfigPath string
	// Logger receives deprecation warnings and layer tracing (default: no-op).
	Logger *zap.Logger
}

// Load loads configuration for the project in dir.
func Load(dir string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{Dir: dir})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	k := koanf.New(".")

	loadDefaults(k)

	if err := loadGradleProperties(k, dir, log); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, dir, opts.ProjectConfigPath, log); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, dir)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadGradleProperties reads gradle.properties when present. Only the keys
// pluginmeta knows are picked up; the rest of the file is ignored.
func loadGradleProperties(k *koanf.Koanf, dir string, log *zap.Logger) error {
	path := GradlePropertiesPath(dir)
	if !fileExists(path) {
		return nil
	}

	props := koanf.New(".")
	if err := props.Load(file.Provider(path), Properties()); err != nil {
		return errors.ConfigParseError(path, err)
	}

	for _, key := range Keys() {
		if props.Exists(key) {
			k.Set(key, props.Get(key))
		}
	}
	log.Debug("loaded config layer", zap.String("source", string(SourceGradle)), zap.String("path", path))
	return nil
}

// loadProjectConfig loads the project config (YAML preferred, legacy JSON
// supported). A legacy file next to a YAML one is ignored with a warning.
func loadProjectConfig(k *koanf.Koanf, dir, customPath string, log *zap.Logger) error {
	yamlPath := ProjectConfigPath(dir)
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath(dir)

	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	switch {
	case yamlExists:
		if err := ValidateProjectFile(yamlPath); err != nil {
			return errors.ConfigParseError(yamlPath, err)
		}
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return errors.ConfigParseError(yamlPath, err)
		}
		if legacyExists {
			log.Warn("legacy JSON config ignored",
				zap.String("legacy", legacyPath),
				zap.String("using", yamlPath))
		}
		log.Debug("loaded config layer", zap.String("source", string(SourceProject)), zap.String("path", yamlPath))
	case customPath != "":
		return errors.ConfigParseError(customPath, os.ErrNotExist)
	case legacyExists:
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return errors.ConfigParseError(legacyPath, err)
		}
		log.Warn("using deprecated JSON config; run 'pluginmeta config migrate' to convert it",
			zap.String("path", legacyPath))
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and resolves paths against dir.
func finalizeConfig(k *koanf.Koanf, dir string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.ConfigParseError("config", err)
	}

	cfg.ChangeNotesFormat = strings.ToLower(strings.TrimSpace(cfg.ChangeNotesFormat))
	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, errors.Wrap(err, errors.Configuration, remediationFor(err)...)
	}

	cfg.Dir = dir
	cfg.Readme = cfg.Path(cfg.Readme)
	cfg.Changelog = cfg.Path(cfg.Changelog)

	return &cfg, nil
}

// Path resolves p against the project directory unless it is absolute.
func (c *Configuration) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Markers returns the description marker pair.
func (c *Configuration) Markers() description.Markers {
	return description.Markers{Start: c.DescriptionStart, End: c.DescriptionEnd}
}

// RenderOptions returns the change notes rendering options.
func (c *Configuration) RenderOptions() changelog.RenderOptions {
	return changelog.RenderOptions{
		Header:        c.ChangeNotesHeader,
		EmptySections: c.ChangeNotesEmptySections,
		Format:        changelog.Format(c.ChangeNotesFormat),
	}
}

// Values returns the effective configuration keyed by config key, with
// paths as resolved.
func (c *Configuration) Values() map[string]interface{} {
	return map[string]interface{}{
		"pluginName":               c.PluginName,
		"pluginVersion":            c.PluginVersion,
		"pluginSinceBuild":         c.PluginSinceBuild,
		"pluginUntilBuild":         c.PluginUntilBuild,
		"versionFromGit":           c.VersionFromGit,
		"readme":                   c.Readme,
		"changelog":                c.Changelog,
		"descriptionStart":         c.DescriptionStart,
		"descriptionEnd":           c.DescriptionEnd,
		"changeNotesHeader":        c.ChangeNotesHeader,
		"changeNotesEmptySections": c.ChangeNotesEmptySections,
		"changeNotesFormat":        c.ChangeNotesFormat,
	}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: PLUGINMETA_PLUGIN_SINCE_BUILD -> pluginSinceBuild
func envTransform(s string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i > 0 && b.Len() > 0 {
			r := []rune(p)
			r[0] = unicode.ToUpper(r[0])
			p = string(r)
		}
		b.WriteString(p)
	}
	return b.String()
}
