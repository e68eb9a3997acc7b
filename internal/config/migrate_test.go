package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateProjectConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		json        string
		yaml        string
		dryRun      bool
		wantSuccess bool
		wantMessage string
	}{
		"migrates": {
			json:        `{"pluginVersion": "1.0.0", "changeNotesHeader": true}`,
			wantSuccess: true,
			wantMessage: "Migrated",
		},
		"dry run": {
			json:        `{"pluginVersion": "1.0.0"}`,
			dryRun:      true,
			wantSuccess: true,
			wantMessage: "Would migrate",
		},
		"yaml exists": {
			json:        `{"pluginVersion": "1.0.0"}`,
			yaml:        "pluginVersion: 2.0.0\n",
			wantMessage: "already exists",
		},
		"no json": {
			wantMessage: "No JSON config found",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if tt.json != "" {
				writeFile(t, dir, ".pluginmeta.json", tt.json)
			}
			if tt.yaml != "" {
				writeFile(t, dir, ".pluginmeta.yml", tt.yaml)
			}

			result, err := MigrateProjectConfig(dir, tt.dryRun)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Contains(t, result.Message, tt.wantMessage)
		})
	}
}

func TestMigrateProjectConfigRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".pluginmeta.json", `{"pluginVersion": "1.0.0-rc.1", "changeNotesFormat": "plain"}`)

	_, err := MigrateProjectConfig(dir, false)
	require.NoError(t, err)

	assert.FileExists(t, LegacyProjectConfigPath(dir)+".bak")
	assert.NoFileExists(t, LegacyProjectConfigPath(dir))

	data, err := os.ReadFile(ProjectConfigPath(dir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Migrated from .pluginmeta.json")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0-rc.1", cfg.PluginVersion)
	assert.Equal(t, "plain", cfg.ChangeNotesFormat)
}

func TestMigrateProjectConfigInvalidJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".pluginmeta.json", "{")

	_, err := MigrateProjectConfig(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON config")
}
