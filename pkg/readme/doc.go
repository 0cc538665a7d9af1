// Package readme renders and sanitizes package README documents.
//
// READMEs come from untrusted package authors. npm and JSR READMEs are
// Markdown, crates.io READMEs are pre-rendered HTML. Both end up as HTML
// that is always passed through [Sanitize] before it is served.
//
//	html, err := readme.ToHTML(text, registry.FormatMarkdown)
//
// For terminals, [ToMarkdown] turns HTML READMEs back into Markdown and
// [Headings] lists the document outline.
package readme
