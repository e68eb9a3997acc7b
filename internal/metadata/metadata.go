// Package metadata assembles the values an IDE plugin manifest needs from
// the plugin's README, changelog and version string.
package metadata

import (
	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/channel"
	"github.com/poratu/pluginmeta/internal/description"
	"github.com/poratu/pluginmeta/internal/errors"
)

// Metadata is the derived build metadata for one plugin build.
type Metadata struct {
	Name        string `yaml:"name,omitempty"`
	Version     string `yaml:"version"`
	SinceBuild  string `yaml:"since_build,omitempty"`
	UntilBuild  string `yaml:"until_build,omitempty"`
	Channel     string `yaml:"channel"`
	Description string `yaml:"description"`
	ChangeNotes string `yaml:"change_notes"`
}

// Inputs is everything Derive reads. Nothing is looked up implicitly.
type Inputs struct {
	Name       string
	Version    string
	SinceBuild string
	UntilBuild string

	// Readme is the document holding the description section.
	Readme  description.Document
	Markers description.Markers

	Changelog *changelog.Changelog
	Notes     changelog.RenderOptions
}

// Derive runs the description extraction, change notes resolution and
// channel derivation for in. Any Configuration error from those steps is
// returned unchanged.
func Derive(in Inputs) (*Metadata, error) {
	if in.Version == "" {
		return nil, errors.MissingPluginVersion()
	}

	desc, err := description.Extract(in.Readme, in.Markers)
	if err != nil {
		return nil, err
	}

	notes, err := changelog.Resolve(in.Changelog, in.Version, in.Notes)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Name:        in.Name,
		Version:     in.Version,
		SinceBuild:  in.SinceBuild,
		UntilBuild:  in.UntilBuild,
		Channel:     channel.Derive(in.Version),
		Description: desc,
		ChangeNotes: notes,
	}, nil
}
