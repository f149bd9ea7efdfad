package interfaces

// Highlighter converts a fenced code block into class-annotated HTML markup.
// Implementations must be total: unknown or empty language tags degrade to
// plain escaped output, never to an error.
type Highlighter interface {
	Highlight(lang, code string) string
}

// ImageRenderer emits the HTML for a Markdown image. The block form wraps the
// image in a captioned figure; the inline form emits a bare lazy-loaded
// element. Implementations are pure functions of their inputs.
type ImageRenderer interface {
	Render(alt, src, title string, block bool) string
}

// HeadingRecord captures one heading discovered during Markdown conversion,
// in document order.
type HeadingRecord struct {
	// Level is the heading depth, 1 through 6.
	Level int
	// Text is the plain-text content of the heading.
	Text string
	// Slug is the deduplicated id assigned to the heading.
	Slug string
}
