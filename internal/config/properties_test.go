package config

import (
	"testing"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gradleProperties = `# IntelliJ Platform Artifacts Repositories
pluginGroup = com.poratu.idea.plugins.tomcat
pluginName = Smart Tomcat
pluginVersion = 4.7.0-beta.2

platformType = IC
platformBundledPlugins = com.intellij.java

! Gradle
org.gradle.jvmargs = -Xmx2048m
org.gradle.configuration-cache = true
org.gradle.caching = true
kotlin.stdlib.default.dependency = false
`

func TestPropertiesUnmarshal(t *testing.T) {
	t.Parallel()

	got, err := Properties().Unmarshal([]byte(gradleProperties))
	require.NoError(t, err)

	assert.Equal(t, "Smart Tomcat", got["pluginName"])
	assert.Equal(t, "4.7.0-beta.2", got["pluginVersion"])
	assert.Equal(t, "com.intellij.java", got["platformBundledPlugins"])

	org, ok := got["org"].(map[string]interface{})
	require.True(t, ok, "dotted keys are nested")
	gradle, ok := org["gradle"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "-Xmx2048m", gradle["jvmargs"])
	assert.Equal(t, "true", gradle["configuration-cache"])
}

func TestPropertiesUnmarshalValues(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		key   string
		want  string
	}{
		"dollar kept literally": {
			input: "pluginName = Smart$Tomcat\n",
			key:   "pluginName",
			want:  "Smart$Tomcat",
		},
		"reference kept literally": {
			input: "pluginVersion = ${baseVersion}-eap.1\n",
			key:   "pluginVersion",
			want:  "${baseVersion}-eap.1",
		},
		"colon separator": {
			input: "pluginSinceBuild: 241\n",
			key:   "pluginSinceBuild",
			want:  "241",
		},
		"whitespace separator": {
			input: "pluginUntilBuild 251.*\n",
			key:   "pluginUntilBuild",
			want:  "251.*",
		},
		"bang comment skipped": {
			input: "! pluginName = Commented\npluginName = Smart Tomcat\n",
			key:   "pluginName",
			want:  "Smart Tomcat",
		},
		"line continuation": {
			input: "pluginName = Smart \\\n    Tomcat\n",
			key:   "pluginName",
			want:  "Smart Tomcat",
		},
		"trailing blanks trimmed": {
			input: "pluginVersion = 4.6.0   \n",
			key:   "pluginVersion",
			want:  "4.6.0",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Properties().Unmarshal([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got[tt.key])
		})
	}
}

func TestLoadGradleTemplateProperties(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "gradle.properties", gradleProperties+"pluginSinceBuild = 241\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Smart Tomcat", cfg.PluginName)
	assert.Equal(t, "4.7.0-beta.2", cfg.PluginVersion)
	assert.Equal(t, "241", cfg.PluginSinceBuild)
}

func TestPropertiesWithKoanf(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "gradle.properties", gradleProperties)

	k := koanf.New(".")
	require.NoError(t, k.Load(file.Provider(path), Properties()))

	assert.Equal(t, "IC", k.String("platformType"))
	assert.True(t, k.Bool("org.gradle.caching"))
}

func TestPropertiesMarshal(t *testing.T) {
	t.Parallel()

	out, err := Properties().Marshal(map[string]interface{}{
		"pluginVersion": "1.0.0",
		"org": map[string]interface{}{
			"gradle": map[string]interface{}{"caching": true},
		},
	})
	require.NoError(t, err)

	back, err := Properties().Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", back["pluginVersion"])
	assert.Equal(t, "true", back["org"].(map[string]interface{})["gradle"].(map[string]interface{})["caching"])
}

func TestPropertiesUnmarshalError(t *testing.T) {
	t.Parallel()

	_, err := Properties().Unmarshal([]byte("pluginName = \\uZZZZ\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing properties")
}
