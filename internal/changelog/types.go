package changelog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnreleasedVersion identifies the entry collecting changes not yet released.
const UnreleasedVersion = "unreleased"

// Changelog represents a parsed changelog. Versions are ordered as they
// appear in the source, newest first.
type Changelog struct {
	Project string `yaml:"project,omitempty"`
	// Repository is the base URL used for comparison links in CHANGELOG.md.
	Repository string    `yaml:"repository,omitempty"`
	Versions   []Version `yaml:"versions"`
}

// Version represents a single version entry in the changelog.
// The Version field is a bare semantic version (e.g., "0.6.0") or the
// special identifier "unreleased". Date is YYYY-MM-DD when present.
type Version struct {
	Version  string   `yaml:"version"`
	Date     string   `yaml:"date,omitempty"`
	Sections Sections `yaml:"changes"`
}

// Section is a named group of change entries, e.g. "Added" or "Fixed".
// Name is empty for entries listed directly under a version heading.
type Section struct {
	Name  string
	Items []string
}

// Sections is an ordered list of sections. In YAML it is written as a
// mapping from section name to entries; key order is preserved.
type Sections []Section

// Entry represents a flattened view of a single changelog entry.
// This is used for querying and displaying individual entries,
// where the version and section context is needed alongside the text.
type Entry struct {
	Text    string `yaml:"text"`
	Section string `yaml:"section"`
	Version string `yaml:"version"`
}

// UnmarshalYAML decodes a mapping of section name to entries, keeping the
// order of the keys. A section with a null value or [] has no items.
func (s *Sections) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: changes must be a mapping of section name to entries", node.Line)
	}

	out := make(Sections, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var items []string
		if value.Tag != "!!null" {
			if err := value.Decode(&items); err != nil {
				return fmt.Errorf("line %d: section %q: %w", value.Line, key.Value, err)
			}
		}
		out = append(out, Section{Name: key.Value, Items: items})
	}

	*s = out
	return nil
}

// MarshalYAML encodes the sections back into an ordered mapping.
func (s Sections) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, sec := range s {
		var value yaml.Node
		items := sec.Items
		if items == nil {
			items = []string{}
		}
		if err := value.Encode(items); err != nil {
			return nil, fmt.Errorf("encoding section %q: %w", sec.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sec.Name},
			&value,
		)
	}
	return node, nil
}

// IsEmpty returns true if no section has any entries.
func (s Sections) IsEmpty() bool {
	return s.Count() == 0
}

// Count returns the total number of entries across all sections.
func (s Sections) Count() int {
	n := 0
	for _, sec := range s {
		n += len(sec.Items)
	}
	return n
}

// IsUnreleased returns true if this version represents unreleased changes.
func (v Version) IsUnreleased() bool {
	return strings.EqualFold(v.Version, UnreleasedVersion)
}

// Entries returns a flattened list of all entries in this version,
// in section order.
func (v Version) Entries() []Entry {
	entries := make([]Entry, 0, v.Sections.Count())
	for _, sec := range v.Sections {
		for _, text := range sec.Items {
			entries = append(entries, Entry{Text: text, Section: sec.Name, Version: v.Version})
		}
	}
	return entries
}
