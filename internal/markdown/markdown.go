// Package markdown renders the long-form copy of project records.
package markdown

import (
	"bytes"
	"html/template"

	"musyoka.dev/internal/oops"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in the source is dropped; html.WithUnsafe is not set.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Linkify,
		extension.Strikethrough,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// Render converts markdown source to HTML
func Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", oops.New(err, "failed to render markdown")
	}
	return template.HTML(buf.String()), nil
}

// MustRender is Render for template funcs; on error it falls back to the
// escaped source.
func MustRender(source string) template.HTML {
	out, err := Render(source)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return out
}
