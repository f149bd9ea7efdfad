// Package images renders Markdown images as lazy-loading HTML, promoting
// standalone images to figures with captions.
package images

import (
	"html"
	"strings"
)

// Renderer emits HTML for Markdown images. It implements
// interfaces.ImageRenderer.
type Renderer struct{}

// New constructs an image Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render emits the HTML for one image. Block images become a <figure> with a
// <figcaption> when the alt text is non-empty; inline images stay plain
// <img> elements. Every image gets loading="lazy"; the title attribute is
// omitted when empty.
func (r *Renderer) Render(alt, src, title string, block bool) string {
	if !block {
		return imgTag(src, alt, title)
	}

	var b strings.Builder
	b.WriteString("<figure>\n")
	b.WriteString(imgTag(src, alt, title))
	b.WriteByte('\n')
	if alt != "" {
		b.WriteString("<figcaption>" + html.EscapeString(alt) + "</figcaption>\n")
	}
	b.WriteString("</figure>\n")
	return b.String()
}

func imgTag(src, alt, title string) string {
	var b strings.Builder
	b.WriteString(`<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(alt) + `"`)
	if title != "" {
		b.WriteString(` title="` + html.EscapeString(title) + `"`)
	}
	b.WriteString(` loading="lazy" />`)
	return b.String()
}
