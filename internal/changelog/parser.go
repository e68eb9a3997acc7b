package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError represents a changelog validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Load reads and validates a changelog file. Files ending in .md or
// .markdown are parsed as Keep a Changelog markdown, anything else as YAML.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	if IsMarkdownPath(path) {
		return LoadMarkdown(f)
	}
	return LoadFromReader(f)
}

// IsMarkdownPath reports whether path names a markdown changelog.
func IsMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// LoadFromReader reads and validates a CHANGELOG.yaml from an io.Reader.
func LoadFromReader(r io.Reader) (*Changelog, error) {
	var changelog Changelog

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&changelog); err != nil {
		if errors.Is(err, io.EOF) {
			return &changelog, nil
		}
		return nil, fmt.Errorf("parsing changelog YAML: %w", err)
	}

	if err := Validate(&changelog); err != nil {
		return nil, err
	}

	return &changelog, nil
}

// Validate checks that a Changelog struct satisfies all schema constraints.
// Returns nil if valid, or a ValidationError with details if invalid.
func Validate(c *Changelog) error {
	unreleasedCount := 0
	seenVersions := make(map[string]bool)

	for i := range c.Versions {
		v := &c.Versions[i]
		if err := validateVersion(v, i); err != nil {
			return err
		}

		if seenVersions[v.Version] {
			return &ValidationError{
				Field:   fmt.Sprintf("versions[%d].version", i),
				Message: fmt.Sprintf("duplicate version %q", v.Version),
			}
		}
		seenVersions[v.Version] = true

		if v.IsUnreleased() {
			unreleasedCount++
		}
	}

	if unreleasedCount > 1 {
		return &ValidationError{
			Field:   "versions",
			Message: "only one 'unreleased' version is allowed",
		}
	}

	return nil
}

// validateVersion checks constraints for a single version entry.
func validateVersion(v *Version, index int) error {
	if v.Version == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("versions[%d].version", index),
			Message: "required field is empty",
		}
	}

	if !v.IsUnreleased() && !semverPattern.MatchString(v.Version) {
		return &ValidationError{
			Field:   fmt.Sprintf("versions[%d].version", index),
			Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", v.Version),
		}
	}

	if v.Date != "" && !datePattern.MatchString(v.Date) {
		return &ValidationError{
			Field:   fmt.Sprintf("versions[%d].date", index),
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", v.Date),
		}
	}

	return validateSections(v.Sections, index)
}

// validateSections checks that every entry is non-blank.
func validateSections(sections Sections, versionIndex int) error {
	for _, sec := range sections {
		for i, entry := range sec.Items {
			if strings.TrimSpace(entry) == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("versions[%d].changes.%s[%d]", versionIndex, sec.Name, i),
					Message: "change entry cannot be empty",
				}
			}
		}
	}
	return nil
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
