// Package highlight renders code blocks as class-based HTML with line
// numbers, leaving colors to the site stylesheet.
package highlight

import (
	"html"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/hakula139/kiln/internal/logging"
	"github.com/hakula139/kiln/pkg/interfaces"
)

// Highlighter tokenizes code with chroma and emits span-per-token HTML
// inside a line-numbered table. It implements interfaces.Highlighter.
type Highlighter struct {
	logger interfaces.Logger
}

// New constructs a Highlighter. A nil logger disables diagnostics.
func New(logger interfaces.Logger) *Highlighter {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Highlighter{logger: logger}
}

// Highlight wraps code in a <div class="highlight"> table with a line-number
// column. The <code> element carries class="language-..." and data-lang
// attributes. Empty language tags normalize to "plaintext"; unrecognized
// tags keep their lowercased token and fall back to plain text tokens.
func (h *Highlighter) Highlight(lang, code string) string {
	lexer, effectiveLang := h.findLexer(lang)

	var spans strings.Builder
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		h.logger.Warn("tokenise failed, emitting plain code", "lang", lang, "error", err)
		spans.WriteString(html.EscapeString(code))
	} else {
		for token := iterator(); token != chroma.EOF; token = iterator() {
			class := tokenClass(token.Type)
			if class == "" {
				spans.WriteString(html.EscapeString(token.Value))
				continue
			}
			spans.WriteString(`<span class="` + class + `">` +
				html.EscapeString(token.Value) + "</span>")
		}
	}

	escapedLang := html.EscapeString(effectiveLang)

	var b strings.Builder
	b.WriteString("<div class=\"highlight\">\n<table>\n<tr>\n")

	b.WriteString(`<td class="line-numbers"><pre>`)
	for i := 1; i <= lineCount(code); i++ {
		if i > 1 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteString("</pre></td>\n")

	b.WriteString(`<td class="code"><pre><code class="language-` + escapedLang +
		`" data-lang="` + escapedLang + `">` + spans.String() + "</code></pre></td>\n")

	b.WriteString("</tr>\n</table>\n</div>\n")
	return b.String()
}

// findLexer resolves a fence language token to a chroma lexer and a
// canonical label. Labels derive from the lexer name (lowercased, spaces
// replaced with hyphens) so aliases like "rs" and "Rust" agree.
func (h *Highlighter) findLexer(lang string) (chroma.Lexer, string) {
	if lang == "" {
		return lexers.Fallback, "plaintext"
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		h.logger.Warn("unrecognized language, falling back to plain text", "lang", lang)
		return lexers.Fallback, strings.ToLower(lang)
	}
	return lexer, canonicalLang(lexer.Config().Name)
}

func canonicalLang(name string) string {
	if name == "plaintext" || name == "Plain Text" {
		return "plaintext"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// tokenClass resolves a chroma token type to its short CSS class, walking up
// the type hierarchy until a class is found.
func tokenClass(t chroma.TokenType) string {
	for t != 0 {
		if class, ok := chroma.StandardTypes[t]; ok && class != "" {
			return class
		}
		t = t.Parent()
	}
	return ""
}

func lineCount(code string) int {
	if code == "" {
		return 1
	}
	n := strings.Count(code, "\n")
	if !strings.HasSuffix(code, "\n") {
		n++
	}
	return n
}
