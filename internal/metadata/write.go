package metadata

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how Metadata is written.
type OutputFormat string

const (
	OutputYAML OutputFormat = "yaml"
	OutputEnv  OutputFormat = "env"
	OutputXML  OutputFormat = "xml"
)

// OutputFormats lists the valid output formats.
func OutputFormats() []string {
	return []string{string(OutputYAML), string(OutputEnv), string(OutputXML)}
}

// ParseOutputFormat converts a flag value into an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputYAML, OutputEnv, OutputXML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(OutputFormats(), ", "))
	}
}

// Write writes m to w in the given format.
func Write(w io.Writer, m *Metadata, format OutputFormat) error {
	switch format {
	case OutputYAML:
		return WriteYAML(w, m)
	case OutputEnv:
		return WriteEnv(w, m)
	case OutputXML:
		return WritePluginXML(w, m)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile writes m to path using a temp file and rename, so readers never
// see a partial file.
func WriteFile(path string, m *Metadata, format OutputFormat) error {
	var b strings.Builder
	if err := Write(&b, m, format); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// WriteYAML writes m as a YAML document. Multi-line values use block style.
func WriteYAML(w io.Writer, m *Metadata) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding metadata YAML: %w", err)
	}
	return enc.Close()
}

// Env returns m as PLUGIN_* variables.
func Env(m *Metadata) map[string]string {
	return map[string]string{
		"PLUGIN_NAME":         m.Name,
		"PLUGIN_VERSION":      m.Version,
		"PLUGIN_SINCE_BUILD":  m.SinceBuild,
		"PLUGIN_UNTIL_BUILD":  m.UntilBuild,
		"PLUGIN_CHANNEL":      m.Channel,
		"PLUGIN_DESCRIPTION":  m.Description,
		"PLUGIN_CHANGE_NOTES": m.ChangeNotes,
	}
}

// WriteEnv writes m as a dotenv file, sorted by key, suitable for CI
// environment files. Newlines in values are escaped.
func WriteEnv(w io.Writer, m *Metadata) error {
	s, err := godotenv.Marshal(Env(m))
	if err != nil {
		return fmt.Errorf("encoding metadata env: %w", err)
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}

type pluginXML struct {
	XMLName     xml.Name     `xml:"idea-plugin"`
	Name        string       `xml:"name,omitempty"`
	Version     string       `xml:"version"`
	IdeaVersion *ideaVersion `xml:"idea-version,omitempty"`
	Description *cdata       `xml:"description,omitempty"`
	ChangeNotes *cdata       `xml:"change-notes,omitempty"`
}

type ideaVersion struct {
	SinceBuild string `xml:"since-build,attr,omitempty"`
	UntilBuild string `xml:"until-build,attr,omitempty"`
}

type cdata struct {
	Text string `xml:",cdata"`
}

func optionalCDATA(s string) *cdata {
	if s == "" {
		return nil
	}
	return &cdata{Text: s}
}

// WritePluginXML writes the <idea-plugin> fragment that gets patched into
// the plugin manifest. Empty description and change notes are omitted.
func WritePluginXML(w io.Writer, m *Metadata) error {
	doc := pluginXML{
		Name:        m.Name,
		Version:     m.Version,
		Description: optionalCDATA(m.Description),
		ChangeNotes: optionalCDATA(m.ChangeNotes),
	}
	if m.SinceBuild != "" || m.UntilBuild != "" {
		doc.IdeaVersion = &ideaVersion{SinceBuild: m.SinceBuild, UntilBuild: m.UntilBuild}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding plugin.xml fragment: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
