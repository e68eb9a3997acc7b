package metadata

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/description"
	clierrors "github.com/poratu/pluginmeta/internal/errors"
)

const readme = `# Smart Tomcat

[![Version](https://img.shields.io/jetbrains/plugin/v/9492.svg)](https://plugins.jetbrains.com/plugin/9492)

<!-- Plugin description -->
Run **Tomcat** from the IDE.
<!-- Plugin description end -->

## Install
`

const changelogMarkdown = `# Changelog

## [Unreleased]

### Added
- Tomcat 11 support

## [4.6.0] - 2025-11-02

### Fixed
- Debugger port reuse

### Removed
`

func testInputs(t *testing.T, version string) Inputs {
	t.Helper()
	c, err := changelog.LoadMarkdown(strings.NewReader(changelogMarkdown))
	require.NoError(t, err)

	return Inputs{
		Name:       "Smart Tomcat",
		Version:    version,
		SinceBuild: "231",
		UntilBuild: "243.*",
		Readme:     description.NewDocument(readme),
		Markers:    description.DefaultMarkers(),
		Changelog:  c,
		Notes:      changelog.RenderOptions{Format: changelog.FormatHTML},
	}
}

func TestDerive(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		version     string
		wantChannel string
		wantNotes   string
	}{
		"released version": {
			version:     "4.6.0",
			wantChannel: "default",
			wantNotes:   "<h3>Fixed</h3>\n<ul>\n<li>Debugger port reuse</li>\n</ul>\n",
		},
		"pre-release falls back to unreleased": {
			version:     "4.7.0-beta.1",
			wantChannel: "beta",
			wantNotes:   "<h3>Added</h3>\n<ul>\n<li>Tomcat 11 support</li>\n</ul>\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m, err := Derive(testInputs(t, tt.version))
			require.NoError(t, err)

			assert.Equal(t, "Smart Tomcat", m.Name)
			assert.Equal(t, tt.version, m.Version)
			assert.Equal(t, "231", m.SinceBuild)
			assert.Equal(t, "243.*", m.UntilBuild)
			assert.Equal(t, tt.wantChannel, m.Channel)
			assert.Equal(t, "<p>Run <strong>Tomcat</strong> from the IDE.</p>\n", m.Description)
			assert.Equal(t, tt.wantNotes, m.ChangeNotes)
		})
	}
}

func TestDeriveErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate     func(in *Inputs)
		errContain string
	}{
		"no version": {
			mutate:     func(in *Inputs) { in.Version = "" },
			errContain: "plugin version is not set",
		},
		"missing markers": {
			mutate:     func(in *Inputs) { in.Readme = description.NewDocument("# no markers\n") },
			errContain: "plugin description section not found",
		},
		"no changelog entry": {
			mutate:     func(in *Inputs) { in.Changelog = &changelog.Changelog{} },
			errContain: "no changelog entry",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			in := testInputs(t, "1.0.0")
			tt.mutate(&in)

			m, err := Derive(in)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, clierrors.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func sampleMetadata() *Metadata {
	return &Metadata{
		Name:        "Smart Tomcat",
		Version:     "2.1.7-alpha.3",
		SinceBuild:  "231",
		UntilBuild:  "243.*",
		Channel:     "alpha",
		Description: "<p>Run Tomcat.</p>\n<p>Second ]]> paragraph.</p>\n",
		ChangeNotes: "<ul>\n<li>Fix</li>\n</ul>\n",
	}
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleMetadata()))

	var back Metadata
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *sampleMetadata(), back)
	assert.Contains(t, buf.String(), "description: |")
}

func TestWriteEnv(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteEnv(&buf, sampleMetadata()))

	assert.True(t, strings.HasPrefix(buf.String(), "PLUGIN_CHANGE_NOTES="), "keys are sorted")

	back, err := godotenv.Unmarshal(buf.String())
	require.NoError(t, err)
	assert.Equal(t, Env(sampleMetadata()), back)
}

func TestWritePluginXML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WritePluginXML(&buf, sampleMetadata()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<idea-plugin>\n  <name>Smart Tomcat</name>\n  <version>2.1.7-alpha.3</version>\n"))
	assert.Contains(t, out, `<idea-version since-build="231" until-build="243.*"></idea-version>`)
	assert.Contains(t, out, "<change-notes><![CDATA[<ul>")

	var back pluginXML
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sampleMetadata().Description, back.Description.Text, "CDATA terminators survive")
	assert.Equal(t, sampleMetadata().ChangeNotes, back.ChangeNotes.Text)
}

func TestWritePluginXMLOmitsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WritePluginXML(&buf, &Metadata{Version: "1.0.0", Channel: "default"}))

	assert.Equal(t, "<idea-plugin>\n  <version>1.0.0</version>\n</idea-plugin>\n", buf.String())
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseOutputFormat("XML")
	require.NoError(t, err)
	assert.Equal(t, OutputXML, f)

	_, err = ParseOutputFormat("toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml, env, xml")

	assert.Error(t, Write(&bytes.Buffer{}, sampleMetadata(), "toml"))
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "build", "metadata.env")
	require.NoError(t, WriteFile(path, sampleMetadata(), OutputEnv))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha", env["PLUGIN_CHANNEL"])
	assert.NoFileExists(t, path+".tmp")
}

func writeProject(t *testing.T, properties string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"README.md":         readme,
		"CHANGELOG.md":      changelogMarkdown,
		"gradle.properties": properties,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadInputs(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, "pluginName = Smart Tomcat\npluginVersion = 4.6.0\npluginSinceBuild = 231\n")
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	in, err := LoadInputs(cfg, nil)
	require.NoError(t, err)

	m, err := Derive(in)
	require.NoError(t, err)
	assert.Equal(t, "4.6.0", m.Version)
	assert.Equal(t, "231", m.SinceBuild)
	assert.Contains(t, m.ChangeNotes, "Debugger port reuse")
}

func TestLoadInputsErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		remove     string
		errContain string
	}{
		"missing readme": {
			remove:     "README.md",
			errContain: "failed to read plugin description source",
		},
		"missing changelog": {
			remove:     "CHANGELOG.md",
			errContain: "failed to load changelog",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := writeProject(t, "pluginVersion = 1.0.0\n")
			require.NoError(t, os.Remove(filepath.Join(dir, tt.remove)))

			cfg, err := config.Load(dir)
			require.NoError(t, err)

			_, err = LoadInputs(cfg, nil)
			require.Error(t, err)
			assert.True(t, clierrors.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestLoadInputsVersionFromGit(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, "versionFromGit = true\n")

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	sig := &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()}
	hash, err := wt.Commit("release", &git.CommitOptions{Author: sig})
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	in, err := LoadInputs(cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, in.Version, "untagged HEAD leaves the version unset")

	_, err = repo.CreateTag("v4.7.0-eap.1", hash, nil)
	require.NoError(t, err)

	in, err = LoadInputs(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "4.7.0-eap.1", in.Version)

	m, err := Derive(in)
	require.NoError(t, err)
	assert.Equal(t, "eap", m.Channel)
}
