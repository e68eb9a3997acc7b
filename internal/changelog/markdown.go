package changelog

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/poratu/pluginmeta/internal/markup"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// versionHeadingPattern matches "[1.2.0] - 2026-01-15", "1.2.0" and "[Unreleased]".
var versionHeadingPattern = regexp.MustCompile(`^\[?([^\]\s]+)\]?(?:\s+-\s+(\S+))?$`)

// LoadMarkdown reads and validates a Keep a Changelog formatted CHANGELOG.md.
//
// Level-2 headings start a version, level-3 headings start a section and
// bullet list items become entries. A list directly under a version heading
// lands in an unnamed section. Prose paragraphs and link reference
// definitions are ignored.
func LoadMarkdown(r io.Reader) (*Changelog, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog markdown: %w", err)
	}

	c, err := parseMarkdown(src)
	if err != nil {
		return nil, fmt.Errorf("parsing changelog markdown: %w", err)
	}

	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseMarkdown(src []byte) (*Changelog, error) {
	root := markup.New().Parser().Parse(text.NewReader(src))
	c := &Changelog{}

	var current *Version
	var section *Section

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := blockText(node, src)
			switch node.Level {
			case 2:
				v, err := parseVersionHeading(title)
				if err != nil {
					return nil, err
				}
				c.Versions = append(c.Versions, v)
				current = &c.Versions[len(c.Versions)-1]
				section = nil
			case 3:
				if current == nil {
					continue
				}
				current.Sections = append(current.Sections, Section{Name: title})
				section = &current.Sections[len(current.Sections)-1]
			}
		case *ast.List:
			if current == nil {
				continue
			}
			if section == nil {
				current.Sections = append(current.Sections, Section{})
				section = &current.Sections[len(current.Sections)-1]
			}
			section.Items = append(section.Items, listItems(node, src, "")...)
		}
	}

	return c, nil
}

// parseVersionHeading splits a version heading into version and date.
func parseVersionHeading(title string) (Version, error) {
	m := versionHeadingPattern.FindStringSubmatch(title)
	if m == nil {
		return Version{}, &ValidationError{
			Field:   "## " + title,
			Message: "version heading must look like [X.Y.Z] - YYYY-MM-DD or [Unreleased]",
		}
	}

	v := Version{Version: m[1], Date: m[2]}
	if v.IsUnreleased() {
		v.Version = UnreleasedVersion
	}
	return v, nil
}

// listItems flattens a list into entries. Nested lists are kept in the
// parent entry as indented markdown bullets.
func listItems(list *ast.List, src []byte, indent string) []string {
	var items []string
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var parts []string
		var nested []string
		for child := li.FirstChild(); child != nil; child = child.NextSibling() {
			if sub, ok := child.(*ast.List); ok {
				for _, s := range listItems(sub, src, indent+"  ") {
					nested = append(nested, indent+"  - "+s)
				}
				continue
			}
			if t := blockText(child, src); t != "" {
				parts = append(parts, t)
			}
		}

		item := strings.Join(parts, " ")
		if len(nested) > 0 {
			item += "\n" + strings.Join(nested, "\n")
		}
		items = append(items, item)
	}
	return items
}

// blockText returns the raw source of a block's lines, each trimmed and
// joined with a single space.
func blockText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if t := strings.TrimSpace(string(seg.Value(src))); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
