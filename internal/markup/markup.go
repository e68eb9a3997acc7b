// Package markup converts markdown to the HTML embedded in plugin manifests.
package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is configured once; goldmark.Markdown is safe for concurrent use.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// Plugin READMEs routinely carry inline HTML (badges, <br>, <kbd>).
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// New returns the goldmark instance used for HTML conversion, so callers that
// need the AST parse with the same extensions.
func New() goldmark.Markdown {
	return md
}

// ToHTML renders GitHub-flavoured markdown to HTML.
// Empty or whitespace-only input yields an empty string.
func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown to HTML: %w", err)
	}
	return buf.String(), nil
}
