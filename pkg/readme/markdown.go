package readme

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"

	"github.com/matzehuels/libra/pkg/registry"
)

var htmlConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// ToMarkdown converts an HTML README to Markdown for terminal display.
// The input is sanitized first.
func ToMarkdown(html string) (string, error) {
	out, err := htmlConverter.ConvertString(Sanitize(html))
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return strings.TrimSpace(out) + "\n", nil
}

// ToText returns a README as Markdown regardless of its source format.
func ToText(text string, format registry.ReadmeFormat) (string, error) {
	if format == registry.FormatHTML {
		return ToMarkdown(text)
	}
	return text, nil
}

// Heading is one entry of a README outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Headings lists the h1-h6 headings of an HTML document in order.
func Headings(html string) ([]Heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		out = append(out, Heading{
			Level: int(goquery.NodeName(s)[1] - '0'),
			Text:  text,
		})
	})
	return out, nil
}
