package changelog

import (
	"fmt"
	"strings"

	"github.com/poratu/pluginmeta/internal/errors"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// GetVersion retrieves a version by exact identifier.
// Returns VersionNotFoundError if the version doesn't exist.
func (c *Changelog) GetVersion(version string) (*Version, error) {
	if c != nil {
		for i := range c.Versions {
			if c.Versions[i].Version == version {
				return &c.Versions[i], nil
			}
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: c.ListVersions(),
	}
}

// GetUnreleased retrieves the unreleased changes from the changelog.
// Returns nil if there are no unreleased changes.
func (c *Changelog) GetUnreleased() *Version {
	if c == nil {
		return nil
	}
	for i := range c.Versions {
		if c.Versions[i].IsUnreleased() {
			return &c.Versions[i]
		}
	}
	return nil
}

// Lookup returns the entry for version, or the unreleased entry when the
// version is absent. The boolean reports whether the unreleased entry was used.
// If neither exists the error is a Configuration error.
func (c *Changelog) Lookup(version string) (*Version, bool, error) {
	if v, err := c.GetVersion(version); err == nil {
		return v, false, nil
	}
	if u := c.GetUnreleased(); u != nil {
		return u, true, nil
	}
	return nil, false, errors.NoChangelogEntry(version, c.ListVersions())
}

// ListVersions returns a list of all version identifiers in the changelog.
// Versions are returned in the order they appear (newest first).
func (c *Changelog) ListVersions() []string {
	if c == nil {
		return nil
	}
	versions := make([]string, len(c.Versions))
	for i, v := range c.Versions {
		versions[i] = v.Version
	}
	return versions
}

// GetLastN retrieves the N most recent entries across all versions.
// If N is greater than the total number of entries, all entries are returned.
func (c *Changelog) GetLastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	entries := c.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// AllEntries returns all entries from all versions, newest first.
func (c *Changelog) AllEntries() []Entry {
	var entries []Entry
	for _, v := range c.Versions {
		entries = append(entries, v.Entries()...)
	}
	return entries
}

// GetEntryCount returns the total number of entries across all versions.
func (c *Changelog) GetEntryCount() int {
	count := 0
	for _, v := range c.Versions {
		count += v.Sections.Count()
	}
	return count
}
