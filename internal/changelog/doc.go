// Package changelog loads a project changelog and renders the change notes
// for a single plugin version.
//
// This package implements:
//   - CHANGELOG.yaml and Keep a Changelog CHANGELOG.md parsing and validation
//   - Version lookup with fallback to the unreleased entry
//   - Change notes rendering as HTML, markdown or plain text
//   - Full Keep a Changelog markdown generation from the YAML source
//   - Colored terminal output for the changelog command
package changelog
