package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/hakula139/kiln/internal/logging"
	"github.com/hakula139/kiln/pkg/interfaces"
)

// Engine wraps a configured goldmark instance. The engine itself is
// stateless; per-document state (the slug registry and collected headings)
// lives in a Session.
type Engine struct {
	md     goldmark.Markdown
	logger interfaces.Logger
}

// EngineOptions configures the Markdown engine. Highlighter and Images are
// optional; when nil, goldmark's default rendering is used for the
// corresponding node kinds.
type EngineOptions struct {
	Highlighter interfaces.Highlighter
	Images      interfaces.ImageRenderer
	Logger      interfaces.Logger
}

// NewEngine constructs the goldmark engine with GFM extensions, auto heading
// ids backed by the session's slug registry, heading attribute support, and
// custom renderers for code blocks and images.
func NewEngine(opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	custom := &nodeRenderer{
		highlighter: opts.Highlighter,
		images:      opts.Images,
	}
	md.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(custom, 100),
	))

	return &Engine{md: md, logger: logger}
}

// Session carries per-document render state. All text runs of a single
// document must go through the same session so heading anchors deduplicate
// across directive boundaries. Sessions are not safe for concurrent use;
// create one per document instead.
type Session struct {
	engine   *Engine
	ctx      parser.Context
	headings []interfaces.HeadingRecord
}

// NewSession starts a fresh render session with an empty slug registry.
func (e *Engine) NewSession() *Session {
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	return &Session{engine: e, ctx: ctx}
}

// Render converts one Markdown fragment to HTML, recording every heading it
// encounters. Fragments rendered later in the same session see the anchors
// claimed by earlier fragments.
func (s *Session) Render(markdown string) string {
	source := []byte(markdown)
	reader := text.NewReader(source)
	doc := s.engine.md.Parser().Parse(reader, parser.WithContext(s.ctx))

	s.collectHeadings(doc, source)

	var buf bytes.Buffer
	if err := s.engine.md.Renderer().Render(&buf, source, doc); err != nil {
		s.engine.logger.Error("markdown render failed", "error", err)
		return ""
	}
	return buf.String()
}

// Headings returns the headings collected so far, in document order.
func (s *Session) Headings() []interfaces.HeadingRecord {
	return s.headings
}

func (s *Session) collectHeadings(doc ast.Node, source []byte) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		slug := ""
		if id, found := heading.AttributeString("id"); found {
			switch v := id.(type) {
			case []byte:
				slug = string(v)
			case string:
				slug = v
			}
		}
		s.headings = append(s.headings, interfaces.HeadingRecord{
			Level: heading.Level,
			Text:  nodeText(heading, source),
			Slug:  slug,
		})
		return ast.WalkContinue, nil
	})
}

// nodeText extracts the plain text content of a node, skipping markup.
func nodeText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// nodeRenderer overrides goldmark's defaults for code blocks and images when
// a highlighter or image renderer is configured.
type nodeRenderer struct {
	highlighter interfaces.Highlighter
	images      interfaces.ImageRenderer
}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	if r.highlighter != nil {
		reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
		reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	}
	if r.images != nil {
		reg.Register(ast.KindParagraph, r.renderParagraph)
		reg.Register(ast.KindImage, r.renderImage)
	}
}

func (r *nodeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(source))
	_, _ = w.WriteString(r.highlighter.Highlight(lang, blockLines(n, source)))
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(r.highlighter.Highlight("", blockLines(node, source)))
	return ast.WalkContinue, nil
}

// renderParagraph special-cases a paragraph whose only child is an image:
// it becomes a block-level figure instead of an inline <img> inside <p>.
func (r *nodeRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if img, ok := soleImage(node); ok {
		if entering {
			_, _ = w.WriteString(r.images.Render(
				nodeText(img, source),
				string(img.Destination),
				string(img.Title),
				true,
			))
		}
		return ast.WalkSkipChildren, nil
	}
	if entering {
		_, _ = w.WriteString("<p>")
	} else {
		_, _ = w.WriteString("</p>\n")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	_, _ = w.WriteString(r.images.Render(
		nodeText(n, source),
		string(n.Destination),
		string(n.Title),
		false,
	))
	return ast.WalkSkipChildren, nil
}

func soleImage(node ast.Node) (*ast.Image, bool) {
	if node.ChildCount() != 1 {
		return nil, false
	}
	img, ok := node.FirstChild().(*ast.Image)
	return img, ok
}

func blockLines(node ast.Node, source []byte) string {
	var b bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
