// Package description extracts the plugin description section from a README
// and renders it to HTML for the plugin manifest.
//
// The section is delimited by two marker lines which must each appear on a
// line of their own:
//
//	<!-- Plugin description -->
//	This text ends up in the manifest.
//	<!-- Plugin description end -->
package description

import (
	"strings"

	"github.com/poratu/pluginmeta/internal/errors"
	"github.com/poratu/pluginmeta/internal/markup"
)

const (
	// DefaultStartMarker opens the description section.
	DefaultStartMarker = "<!-- Plugin description -->"
	// DefaultEndMarker closes the description section.
	DefaultEndMarker = "<!-- Plugin description end -->"
)

// Markers is the pair of sentinel lines delimiting the section.
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers returns the conventional marker pair.
func DefaultMarkers() Markers {
	return Markers{Start: DefaultStartMarker, End: DefaultEndMarker}
}

// Document is a README split into lines.
type Document []string

// NewDocument splits text on \n, \r\n and \r.
func NewDocument(text string) Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return Document(strings.Split(text, "\n"))
}

// Section returns the markdown strictly between the first start marker and
// the first end marker, joined with newlines.
// Returns a Configuration error if a marker is missing or out of order.
func Section(doc Document, m Markers) (string, error) {
	start, end := indexOf(doc, m.Start), indexOf(doc, m.End)

	var missing []string
	if start < 0 {
		missing = append(missing, m.Start)
	}
	if end < 0 {
		missing = append(missing, m.End)
	}
	if len(missing) > 0 {
		return "", errors.DescriptionMarkersNotFound(m.Start, m.End, missing...)
	}
	if end <= start {
		return "", errors.DescriptionMarkersOutOfOrder(m.Start, m.End, start+1, end+1)
	}

	return strings.Join(doc[start+1:end], "\n"), nil
}

// Extract returns the HTML rendering of the description section.
// Adjacent markers yield an empty string and a nil error.
func Extract(doc Document, m Markers) (string, error) {
	section, err := Section(doc, m)
	if err != nil {
		return "", err
	}
	return markup.ToHTML(section)
}

func indexOf(doc Document, line string) int {
	for i, l := range doc {
		if l == line {
			return i
		}
	}
	return -1
}
