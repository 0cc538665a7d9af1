package readme

import (
	"github.com/microcosm-cc/bluemonday"
)

var allowedElements = []string{
	// text
	"p", "br", "strong", "b", "em", "i", "u", "s", "del", "ins",
	// code
	"code", "pre",
	// headings
	"h1", "h2", "h3", "h4", "h5", "h6",
	// lists and quotes
	"ul", "ol", "li", "blockquote",
	// links and media
	"a", "img", "hr",
	// tables
	"table", "thead", "tbody", "tr", "th", "td",
	// containers
	"span", "div", "section", "article",
}

var allowedAttrs = []string{
	"href", "title", "target", "rel", "src", "alt",
	"width", "height", "class", "start", "border",
	"align", "colspan", "rowspan",
}

// policy is safe for concurrent use once built.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedElements...)
	p.AllowAttrs(allowedAttrs...).Globally()
	p.AllowStandardURLs()
	return p
}

// Sanitize strips everything outside the README allow-list. Disallowed
// tags are removed but their text content is kept, except for script and
// style bodies. URLs are limited to http, https, mailto and relative links.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
