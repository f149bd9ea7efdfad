// Package kiln renders Markdown documents with fenced directive support,
// syntax-highlighted code blocks, CJK-aware heading anchors, and table of
// contents generation.
package kiln

import (
	"github.com/hakula139/kiln/internal/directive"
	"github.com/hakula139/kiln/internal/highlight"
	"github.com/hakula139/kiln/internal/images"
	"github.com/hakula139/kiln/internal/logging"
	"github.com/hakula139/kiln/internal/markdown"
	"github.com/hakula139/kiln/internal/toc"
	"github.com/hakula139/kiln/pkg/interfaces"
)

// Heading is one collected document heading, in source order.
type Heading = interfaces.HeadingRecord

// TocNode is one entry in the table of contents forest.
type TocNode = toc.Node

// Result carries the rendered HTML for a document together with the
// headings collected during the render.
type Result struct {
	HTML     string
	Headings []Heading
}

// Engine renders documents. It is stateless across documents and safe for
// concurrent use; per-document state lives in internal render sessions.
type Engine struct {
	markdown *markdown.Engine
	logger   interfaces.Logger
}

type engineOptions struct {
	highlighter interfaces.Highlighter
	images      interfaces.ImageRenderer
	provider    interfaces.LoggerProvider
}

// Option customizes engine construction.
type Option func(*engineOptions)

// WithHighlighter replaces the default chroma-backed code highlighter.
func WithHighlighter(h interfaces.Highlighter) Option {
	return func(o *engineOptions) {
		o.highlighter = h
	}
}

// WithImageRenderer replaces the default figure-promoting image renderer.
func WithImageRenderer(r interfaces.ImageRenderer) Option {
	return func(o *engineOptions) {
		o.images = r
	}
}

// WithLoggerProvider wires a logger provider; without one the engine stays
// silent.
func WithLoggerProvider(p interfaces.LoggerProvider) Option {
	return func(o *engineOptions) {
		o.provider = p
	}
}

// New constructs an Engine with defaults for every concern not overridden by
// an option.
func New(opts ...Option) *Engine {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.MarkdownLogger(o.provider)
	if o.highlighter == nil {
		o.highlighter = highlight.New(logger)
	}
	if o.images == nil {
		o.images = images.New()
	}

	return &Engine{
		markdown: markdown.NewEngine(markdown.EngineOptions{
			Highlighter: o.highlighter,
			Images:      o.images,
			Logger:      logger,
		}),
		logger: logger,
	}
}

// ParseDocument renders one document body to HTML. Directive fences are
// parsed first; the text runs between them go through the Markdown engine
// within a single session, so heading anchors deduplicate across directive
// boundaries.
func (e *Engine) ParseDocument(source string) Result {
	session := e.markdown.NewSession()
	blocks := directive.Parse(source)
	html := directive.Render(blocks, session.Render)
	return Result{
		HTML:     html,
		Headings: session.Headings(),
	}
}

// BuildToc assembles the table of contents forest for a heading list.
func (e *Engine) BuildToc(headings []Heading) []*TocNode {
	return toc.Build(headings)
}

// RenderToc renders a heading list as nested HTML lists inside a nav
// element. An empty list renders to an empty string.
func (e *Engine) RenderToc(headings []Heading) string {
	return toc.RenderHTML(toc.Build(headings))
}
