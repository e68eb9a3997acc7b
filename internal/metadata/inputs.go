package metadata

import (
	stderrors "errors"
	"os"

	"go.uber.org/zap"

	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/description"
	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/git"
)

// LoadInputs reads the files named by cfg and gathers the Inputs for Derive.
// When versionFromGit is set and no version is configured, the tag on HEAD
// supplies it.
func LoadInputs(cfg *config.Configuration, log *zap.Logger) (Inputs, error) {
	if log == nil {
		log = zap.NewNop()
	}

	version, err := ResolveVersion(cfg, log)
	if err != nil {
		return Inputs{}, err
	}

	readme, err := ReadReadme(cfg.Readme)
	if err != nil {
		return Inputs{}, err
	}

	log.Debug("loading changelog", zap.String("path", cfg.Changelog))
	c, err := changelog.Load(cfg.Changelog)
	if err != nil {
		return Inputs{}, errors.ChangelogParseError(cfg.Changelog, err)
	}

	return Inputs{
		Name:       cfg.PluginName,
		Version:    version,
		SinceBuild: cfg.PluginSinceBuild,
		UntilBuild: cfg.PluginUntilBuild,
		Readme:     readme,
		Markers:    cfg.Markers(),
		Changelog:  c,
		Notes:      cfg.RenderOptions(),
	}, nil
}

// ResolveVersion returns the configured plugin version, falling back to the
// tag on HEAD when versionFromGit is enabled. An empty result is not an error
// here; Derive reports it.
func ResolveVersion(cfg *config.Configuration, log *zap.Logger) (string, error) {
	if cfg.PluginVersion != "" || !cfg.VersionFromGit {
		return cfg.PluginVersion, nil
	}

	v, err := git.VersionFromTag(cfg.Dir)
	switch {
	case stderrors.Is(err, git.ErrNoTag):
		log.Warn("versionFromGit is enabled but no tag points at HEAD")
		return "", nil
	case err != nil:
		return "", errors.WrapWithMessage(err, errors.Configuration,
			"failed to read plugin version from git",
			"Disable versionFromGit or set pluginVersion explicitly")
	}

	log.Debug("plugin version from git tag", zap.String("version", v))
	return v, nil
}

// ReadReadme reads the description source document.
func ReadReadme(path string) (description.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ReadmeNotReadable(path, err)
	}
	return description.NewDocument(string(data)), nil
}
