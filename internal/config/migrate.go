package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
)

// MigrationResult describes the outcome of a migration operation
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	Message    string
}

// MigrateProjectConfig converts the legacy .pluginmeta.json in dir to
// .pluginmeta.yml and renames the JSON file to .bak.
//
// Nothing is written in dry-run mode, and an existing YAML file is never
// overwritten.
func MigrateProjectConfig(dir string, dryRun bool) (*MigrationResult, error) {
	jsonPath := LegacyProjectConfigPath(dir)
	yamlPath := ProjectConfigPath(dir)
	result := &MigrationResult{SourcePath: jsonPath, TargetPath: yamlPath, DryRun: dryRun}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
			return result, nil
		}
		return nil, fmt.Errorf("reading JSON config: %w", err)
	}

	values, err := json.Parser().Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON config: %w", err)
	}

	if fileExists(yamlPath) {
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would migrate %s → %s", jsonPath, yamlPath)
		return result, nil
	}

	out, err := yaml.Parser().Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("converting to YAML: %w", err)
	}

	header := "# pluginmeta configuration\n# Migrated from " + legacyProjectConfigFile + "\n\n"
	if err := os.WriteFile(yamlPath, append([]byte(header), out...), 0o644); err != nil {
		return nil, fmt.Errorf("writing YAML config: %w", err)
	}

	if err := os.Rename(jsonPath, jsonPath+".bak"); err != nil {
		return nil, fmt.Errorf("backing up legacy config: %w", err)
	}

	result.Success = true
	result.Message = fmt.Sprintf("Migrated %s → %s", jsonPath, yamlPath)
	return result, nil
}
