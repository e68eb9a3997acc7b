package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SectionStyle defines the color and icon for a changelog section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps well-known Keep a Changelog sections to terminal styling.
var sectionStyles = map[string]SectionStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

var defaultSectionStyle = SectionStyle{Color: color.New(color.FgCyan), Icon: "•"}

func styleFor(section string) SectionStyle {
	if s, ok := sectionStyles[strings.ToLower(section)]; ok {
		return s
	}
	return defaultSectionStyle
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes changelog entries to the writer with terminal styling.
// Entries are grouped by version with color-coded section headers.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	for i, group := range groupEntries(entries, func(e Entry) string { return e.Version }) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeVersionHeader(group.key, "", w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.key, err)
		}
		for _, sec := range groupEntries(group.entries, func(e Entry) string { return e.Section }) {
			if err := writeSection(sec.key, sec.entries, w, opts, width); err != nil {
				return fmt.Errorf("formatting version %s: %w", group.key, err)
			}
		}
	}

	return nil
}

// FormatVersion writes a single version's entries to the writer.
func FormatVersion(v *Version, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeVersionHeader(v.Version, v.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, sec := range v.Sections {
		if len(sec.Items) == 0 {
			continue
		}
		entries := make([]Entry, len(sec.Items))
		for i, text := range sec.Items {
			entries[i] = Entry{Text: text, Section: sec.Name, Version: v.Version}
		}
		if err := writeSection(sec.Name, entries, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// entryGroup holds consecutive entries sharing a key.
type entryGroup struct {
	key     string
	entries []Entry
}

// groupEntries groups consecutive entries by key, preserving order.
func groupEntries(entries []Entry, key func(Entry) string) []entryGroup {
	var groups []entryGroup
	for _, e := range entries {
		k := key(e)
		if len(groups) == 0 || groups[len(groups)-1].key != k {
			groups = append(groups, entryGroup{key: k})
		}
		last := &groups[len(groups)-1]
		last.entries = append(last.entries, e)
	}
	return groups
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	var header string
	switch {
	case strings.EqualFold(version, UnreleasedVersion):
		header = "Unreleased"
	case date != "":
		header = fmt.Sprintf("v%s (%s)", version, date)
	default:
		header = fmt.Sprintf("v%s", version)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeSection writes a single section with its entries.
func writeSection(name string, entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	style := styleFor(name)

	if name != "" {
		if err := writeSectionHeader(name, style, w, opts); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeSectionHeader writes the section header line.
func writeSectionHeader(name string, style SectionStyle, w io.Writer, opts FormatOptions) error {
	displayName := capitalizeFirst(name)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", displayName)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(displayName))
	return err
}

// writeEntry writes a single changelog entry with optional wrapping.
func writeEntry(entry Entry, style SectionStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := entry.Text

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
