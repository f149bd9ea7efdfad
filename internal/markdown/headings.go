package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
)

// Slugify derives a URL-safe anchor from heading text. ASCII letters are
// lowercased, digits pass through, and CJK characters (Han, Hiragana,
// Katakana, Hangul) are preserved so non-Latin headings keep readable
// anchors. Every other run of characters collapses into a single hyphen.
func Slugify(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r - 'A' + 'a')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case isPreservedScript(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	if b.Len() == 0 {
		return "heading"
	}
	return b.String()
}

func isPreservedScript(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// headingIDs implements goldmark's parser.IDs on top of a per-document slug
// registry. The first heading with a given slug gets the bare slug; later
// collisions get "-1", "-2" and so on. The registry lives for the whole
// document, so headings inside directive bodies dedup against headings in
// surrounding text runs.
type headingIDs struct {
	counts map[string]int
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{counts: map[string]int{}}
}

func (ids *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := Slugify(string(value))
	n := ids.counts[base]
	ids.counts[base] = n + 1
	if n == 0 {
		return []byte(base)
	}
	return []byte(base + "-" + strconv.Itoa(n))
}

// Put is a no-op: explicit ids supplied via heading attributes are taken as
// authored and do not participate in deduplication.
func (ids *headingIDs) Put(value []byte) {}
