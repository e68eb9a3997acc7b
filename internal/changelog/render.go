package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/poratu/pluginmeta/internal/markup"
)

// Format selects the change notes output format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatPlain    Format = "plain"
)

// Formats lists the valid change notes formats.
func Formats() []string {
	return []string{string(FormatHTML), string(FormatMarkdown), string(FormatPlain)}
}

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatMarkdown, FormatPlain:
		return f, nil
	default:
		return "", fmt.Errorf("unknown change notes format %q (valid: %s)", s, strings.Join(Formats(), ", "))
	}
}

// RenderOptions controls how a single version is rendered.
type RenderOptions struct {
	// Header emits the version header line.
	Header bool
	// EmptySections emits sections that have no entries.
	EmptySections bool
	// Format defaults to HTML when empty.
	Format Format
}

// Resolve renders the change notes for version, falling back to the
// unreleased entry when the version is not in the changelog.
//
// A Configuration error is returned when neither entry exists. An entry that
// renders to nothing (all sections empty and filtered out, no header)
// returns "" with a nil error.
func Resolve(c *Changelog, version string, opts RenderOptions) (string, error) {
	v, _, err := c.Lookup(version)
	if err != nil {
		return "", err
	}
	return RenderVersionString(v, opts)
}

// RenderVersionString renders a single version to a string.
func RenderVersionString(v *Version, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderVersion(v, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderVersion writes a single version in the requested format.
func RenderVersion(v *Version, w io.Writer, opts RenderOptions) error {
	switch opts.Format {
	case FormatMarkdown:
		return writeVersion(v, w, opts, markdownStyle)
	case FormatPlain:
		return writeVersion(v, w, opts, plainStyle)
	case FormatHTML, "":
		var b strings.Builder
		if err := writeVersion(v, &b, opts, markdownStyle); err != nil {
			return err
		}
		html, err := markup.ToHTML(b.String())
		if err != nil {
			return fmt.Errorf("rendering version %s: %w", v.Version, err)
		}
		_, err = io.WriteString(w, html)
		return err
	default:
		return fmt.Errorf("unknown change notes format %q", opts.Format)
	}
}

// textStyle decides how headers are spelled in a text format.
type textStyle struct {
	version func(v *Version) string
	section func(name string) string
}

var markdownStyle = textStyle{
	version: func(v *Version) string { return "## " + formatVersionHeader(v) },
	section: func(name string) string { return "### " + name },
}

var plainStyle = textStyle{
	version: func(v *Version) string {
		if v.IsUnreleased() {
			return "Unreleased"
		}
		if v.Date == "" {
			return v.Version
		}
		return v.Version + " - " + v.Date
	},
	section: func(name string) string { return name },
}

// writeVersion writes the optional header and the sections of v,
// separating blocks with a blank line.
func writeVersion(v *Version, w io.Writer, opts RenderOptions, style textStyle) error {
	first := true
	block := func(s string) error {
		if !first {
			s = "\n" + s
		}
		first = false
		_, err := io.WriteString(w, s)
		return err
	}

	if opts.Header {
		if err := block(style.version(v) + "\n"); err != nil {
			return err
		}
	}

	for _, sec := range v.Sections {
		if len(sec.Items) == 0 && !opts.EmptySections {
			continue
		}

		var b strings.Builder
		if sec.Name != "" {
			b.WriteString(style.section(capitalizeFirst(sec.Name)) + "\n")
		}
		for _, item := range sec.Items {
			b.WriteString("- " + item + "\n")
		}
		if b.Len() == 0 {
			continue
		}
		if err := block(b.String()); err != nil {
			return err
		}
	}

	return nil
}

// formatVersionHeader formats the version header line without the "##".
func formatVersionHeader(v *Version) string {
	if v.IsUnreleased() {
		return "[Unreleased]"
	}
	if v.Date == "" {
		return fmt.Sprintf("[%s]", v.Version)
	}
	return fmt.Sprintf("[%s] - %s", v.Version, v.Date)
}

// RenderMarkdown generates a Keep a Changelog formatted markdown document
// from the given Changelog struct. The output follows the Keep a Changelog
// specification (https://keepachangelog.com/en/1.1.0/).
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if err := renderHeader(c, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	opts := RenderOptions{Header: true, Format: FormatMarkdown}
	for i := range c.Versions {
		v := &c.Versions[i]
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeVersion(v, w, opts, markdownStyle); err != nil {
			return fmt.Errorf("rendering version %s: %w", v.Version, err)
		}
	}

	if err := renderFooterLinks(c, w); err != nil {
		return fmt.Errorf("rendering footer links: %w", err)
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderHeader writes the standard Keep a Changelog header.
func renderHeader(c *Changelog, w io.Writer) error {
	subject := "this project"
	if c.Project != "" {
		subject = c.Project
	}
	header := `# Changelog

All notable changes to ` + subject + ` will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

`
	_, err := io.WriteString(w, header)
	return err
}

// renderFooterLinks writes the version comparison links at the end of the file.
func renderFooterLinks(c *Changelog, w io.Writer) error {
	if len(c.Versions) == 0 || c.Repository == "" {
		return nil
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	repoURL := strings.TrimSuffix(c.Repository, "/")
	for i, v := range c.Versions {
		link := formatVersionLink(v, c.Versions, i, repoURL)
		if link == "" {
			continue
		}
		if _, err := io.WriteString(w, link+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// formatVersionLink creates a single version comparison link.
func formatVersionLink(v Version, versions []Version, index int, repoURL string) string {
	if v.IsUnreleased() {
		if index+1 < len(versions) {
			prevVersion := versions[index+1].Version
			return fmt.Sprintf("[Unreleased]: %s/compare/v%s...HEAD", repoURL, prevVersion)
		}
		return ""
	}

	if index+1 < len(versions) {
		prevVersion := versions[index+1].Version
		return fmt.Sprintf("[%s]: %s/compare/v%s...v%s", v.Version, repoURL, prevVersion, v.Version)
	}
	return fmt.Sprintf("[%s]: %s/releases/tag/v%s", v.Version, repoURL, v.Version)
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
