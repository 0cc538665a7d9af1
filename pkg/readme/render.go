package readme

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/matzehuels/libra/pkg/registry"
)

// GFM already bundles autolinking (linkify), tables, strikethrough and
// task lists. Raw HTML passes through and is removed by Sanitize.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// Render converts Markdown to HTML. The output is not sanitized.
func Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// ToHTML produces sanitized HTML from a README in the given format.
// Markdown is rendered first; HTML is only sanitized.
func ToHTML(text string, format registry.ReadmeFormat) (string, error) {
	if text == "" {
		return "", nil
	}
	if format == registry.FormatHTML {
		return Sanitize(text), nil
	}
	out, err := Render(text)
	if err != nil {
		return "", err
	}
	return Sanitize(out), nil
}
