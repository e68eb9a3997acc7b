// Package health checks that a plugin project has everything pluginmeta
// needs, returning structured reports used by the 'pluginmeta doctor' command.
package health

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/poratu/pluginmeta/internal/changelog"
	"github.com/poratu/pluginmeta/internal/config"
	"github.com/poratu/pluginmeta/internal/description"
	"github.com/poratu/pluginmeta/internal/git"
	"github.com/poratu/pluginmeta/internal/metadata"
	"github.com/poratu/pluginmeta/internal/output"
)

// Check names.
const (
	CheckVersion     = "Plugin version"
	CheckDescription = "Description"
	CheckChangelog   = "Changelog"
	CheckChangeNotes = "Change notes"
	CheckGit         = "Git repository"
	CheckConfigFile  = "Project config"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Warning marks a passed check that still deserves attention.
	Warning bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks checks the project cfg describes and returns a report.
// Every check runs even when an earlier one fails.
func RunHealthChecks(cfg *config.Configuration, log *zap.Logger) *HealthReport {
	if log == nil {
		log = zap.NewNop()
	}
	report := &HealthReport{Passed: true}

	report.add(CheckProjectConfig(cfg.Dir))
	if cfg.VersionFromGit {
		report.add(CheckGitRepository(cfg.Dir))
	}

	versionCheck, version := CheckPluginVersion(cfg, log)
	report.add(versionCheck)
	report.add(CheckDescriptionSection(cfg.Readme, cfg.Markers()))

	changelogCheck, c := CheckChangelogFile(cfg.Changelog)
	report.add(changelogCheck)
	if version != "" && c != nil {
		report.add(CheckChangeNotesEntry(c, version))
	}

	return report
}

// CheckProjectConfig warns about a legacy JSON config.
func CheckProjectConfig(dir string) CheckResult {
	yamlPath := config.ProjectConfigPath(dir)
	legacyPath := config.LegacyProjectConfigPath(dir)

	_, yamlErr := os.Stat(yamlPath)
	_, legacyErr := os.Stat(legacyPath)

	switch {
	case legacyErr == nil && yamlErr == nil:
		return CheckResult{
			Name:    CheckConfigFile,
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("%s is ignored because %s exists; delete it", legacyPath, yamlPath),
		}
	case legacyErr == nil:
		return CheckResult{
			Name:    CheckConfigFile,
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("%s is deprecated; run 'pluginmeta config migrate'", legacyPath),
		}
	case yamlErr == nil:
		return CheckResult{Name: CheckConfigFile, Passed: true, Message: yamlPath}
	default:
		return CheckResult{Name: CheckConfigFile, Passed: true, Message: "none (gradle.properties and defaults only)"}
	}
}

// CheckGitRepository checks that versionFromGit has a repository to read.
func CheckGitRepository(dir string) CheckResult {
	if !git.IsRepository(dir) {
		return CheckResult{
			Name:    CheckGit,
			Passed:  false,
			Message: fmt.Sprintf("versionFromGit is enabled but %s is not in a git repository", dir),
		}
	}
	return CheckResult{Name: CheckGit, Passed: true, Message: "found"}
}

// CheckPluginVersion checks that a plugin version can be resolved and
// returns it.
func CheckPluginVersion(cfg *config.Configuration, log *zap.Logger) (CheckResult, string) {
	version, err := metadata.ResolveVersion(cfg, log)
	if err != nil {
		return CheckResult{Name: CheckVersion, Passed: false, Message: err.Error()}, ""
	}
	if version == "" {
		msg := "not set (pluginVersion in gradle.properties, .pluginmeta.yml or PLUGINMETA_PLUGIN_VERSION)"
		if cfg.VersionFromGit {
			msg = "not set and no tag points at HEAD"
		}
		return CheckResult{Name: CheckVersion, Passed: false, Message: msg}, ""
	}
	return CheckResult{Name: CheckVersion, Passed: true, Message: version}, version
}

// CheckDescriptionSection checks that the README has a well-formed
// description section that renders.
func CheckDescriptionSection(readme string, markers description.Markers) CheckResult {
	doc, err := metadata.ReadReadme(readme)
	if err != nil {
		return CheckResult{Name: CheckDescription, Passed: false, Message: err.Error()}
	}
	section, err := description.Section(doc, markers)
	if err != nil {
		return CheckResult{Name: CheckDescription, Passed: false, Message: err.Error()}
	}
	if strings.TrimSpace(section) == "" {
		return CheckResult{
			Name:    CheckDescription,
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("section in %s is empty", readme),
		}
	}
	if _, err := description.Extract(doc, markers); err != nil {
		return CheckResult{Name: CheckDescription, Passed: false, Message: err.Error()}
	}
	return CheckResult{Name: CheckDescription, Passed: true, Message: "found in " + readme}
}

// CheckChangelogFile checks that the changelog parses and returns it.
func CheckChangelogFile(path string) (CheckResult, *changelog.Changelog) {
	c, err := changelog.Load(path)
	if changelog.IsValidationError(err) {
		return CheckResult{Name: CheckChangelog, Passed: false, Message: fmt.Sprintf("invalid entry in %s: %v", path, err)}, nil
	}
	if err != nil {
		return CheckResult{Name: CheckChangelog, Passed: false, Message: err.Error()}, nil
	}
	return CheckResult{
		Name:    CheckChangelog,
		Passed:  true,
		Message: fmt.Sprintf("%d versions, %d entries in %s", len(c.Versions), c.GetEntryCount(), path),
	}, c
}

// CheckChangeNotesEntry checks that c has change notes for version. Falling
// back to the unreleased entry passes with a warning.
func CheckChangeNotesEntry(c *changelog.Changelog, version string) CheckResult {
	v, fallback, err := c.Lookup(version)
	if err != nil {
		return CheckResult{Name: CheckChangeNotes, Passed: false, Message: err.Error()}
	}
	if fallback {
		return CheckResult{
			Name:    CheckChangeNotes,
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("no entry for %s; the Unreleased entry is used", version),
		}
	}
	if v.Sections.Count() == 0 {
		return CheckResult{
			Name:    CheckChangeNotes,
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("entry for %s has no items", version),
		}
	}
	return CheckResult{Name: CheckChangeNotes, Passed: true, Message: "entry for " + version}
}

// WriteReport writes one status line per check to w.
func WriteReport(w io.Writer, report *HealthReport) {
	for _, check := range report.Checks {
		line := fmt.Sprintf("%s: %s", check.Name, check.Message)
		switch {
		case !check.Passed:
			output.Failure(w, line)
		case check.Warning:
			output.Warning(w, line)
		default:
			output.Success(w, line)
		}
	}
}
