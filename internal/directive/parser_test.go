package directive

import (
	"strings"
	"testing"
)

// directives filters the top-level directive nodes out of a block list.
func directives(blocks []Block) []*Directive {
	var out []*Directive
	for _, b := range blocks {
		if d, ok := b.(*Directive); ok {
			out = append(out, d)
		}
	}
	return out
}

func textOf(tb testing.TB, blocks []Block) string {
	tb.Helper()
	var b strings.Builder
	for _, blk := range blocks {
		if t, ok := blk.(Text); ok {
			b.WriteString(t.Raw)
		}
	}
	return b.String()
}

func TestParseSimpleDirective(t *testing.T) {
	blocks := Parse("::: callout\nHello world\n:::\n")

	dirs := directives(blocks)
	if len(dirs) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(dirs))
	}
	if dirs[0].Name != "callout" {
		t.Fatalf("expected name callout, got %q", dirs[0].Name)
	}
	if got := textOf(t, dirs[0].Children); got != "Hello world" {
		t.Fatalf("expected body %q, got %q", "Hello world", got)
	}
}

func TestParseEmptyBody(t *testing.T) {
	blocks := Parse("::: callout\n:::\n")

	dirs := directives(blocks)
	if len(dirs) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(dirs))
	}
	if len(dirs[0].Children) != 0 {
		t.Fatalf("expected no children, got %#v", dirs[0].Children)
	}
}

func TestParseMultipleSequential(t *testing.T) {
	input := "::: callout\nFirst\n:::\n\n::: callout {type=warning}\nSecond\n:::\n"
	dirs := directives(Parse(input))

	if len(dirs) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(dirs))
	}
	if got := textOf(t, dirs[0].Children); got != "First" {
		t.Fatalf("first body mismatch: %q", got)
	}
	if got := textOf(t, dirs[1].Children); got != "Second" {
		t.Fatalf("second body mismatch: %q", got)
	}
}

func TestParseNested(t *testing.T) {
	input := ":::: callout {type=warning}\n::: callout\nInner\n:::\nOuter\n::::\n"
	dirs := directives(Parse(input))

	if len(dirs) != 1 {
		t.Fatalf("expected 1 top-level directive, got %d", len(dirs))
	}
	outer := dirs[0]
	if outer.FenceLength != 4 {
		t.Fatalf("expected outer fence length 4, got %d", outer.FenceLength)
	}

	inner := directives(outer.Children)
	if len(inner) != 1 {
		t.Fatalf("expected 1 nested directive, got %d", len(inner))
	}
	if got := textOf(t, inner[0].Children); got != "Inner" {
		t.Fatalf("inner body mismatch: %q", got)
	}
	if got := textOf(t, outer.Children); !strings.Contains(got, "Outer") {
		t.Fatalf("outer body should keep text after the inner block, got %q", got)
	}
}

func TestParseNestedSiblings(t *testing.T) {
	input := "::::: wrapper\n::: a\nFirst\n:::\n::: b\nSecond\n:::\n:::::\n"
	dirs := directives(Parse(input))

	if len(dirs) != 1 {
		t.Fatalf("expected 1 top-level directive, got %d", len(dirs))
	}
	inner := directives(dirs[0].Children)
	if len(inner) != 2 {
		t.Fatalf("expected 2 nested siblings, got %d", len(inner))
	}
	if inner[0].Name != "a" || inner[1].Name != "b" {
		t.Fatalf("sibling names mismatch: %q, %q", inner[0].Name, inner[1].Name)
	}
}

func TestParseLongerClosingFenceClosesTopFrameOnly(t *testing.T) {
	// `::::` closes the topmost frame (inner-a), never a deeper one.
	input := ":::: outer\n::: inner-a\n::: inner-b\n:::\n::::\n"
	dirs := directives(Parse(input))

	// outer is force-closed at EOF and stays top-level.
	if len(dirs) != 1 {
		t.Fatalf("expected 1 top-level directive, got %d", len(dirs))
	}
	outer := dirs[0]
	if outer.Name != "outer" {
		t.Fatalf("expected outer, got %q", outer.Name)
	}
	level2 := directives(outer.Children)
	if len(level2) != 1 || level2[0].Name != "inner-a" {
		t.Fatalf("expected inner-a under outer, got %#v", level2)
	}
	level3 := directives(level2[0].Children)
	if len(level3) != 1 || level3[0].Name != "inner-b" {
		t.Fatalf("expected inner-b under inner-a, got %#v", level3)
	}
}

func TestParseShortClosingFenceOpensNewFrame(t *testing.T) {
	// A bare ::: cannot close a frame opened with :::: — it opens an
	// anonymous directive of length 3 instead.
	input := ":::: a\nBody\n:::\n"
	dirs := directives(Parse(input))

	if len(dirs) != 1 || dirs[0].Name != "a" {
		t.Fatalf("expected directive a at top level, got %#v", dirs)
	}
	nested := directives(dirs[0].Children)
	if len(nested) != 1 {
		t.Fatalf("expected the short fence to open a nested frame, got %d", len(nested))
	}
	if nested[0].Name != "" || nested[0].FenceLength != 3 {
		t.Fatalf("expected anonymous length-3 directive, got %#v", nested[0])
	}
}

func TestParseUnclosedDirectiveKeepsBody(t *testing.T) {
	blocks := Parse("::: callout\nNo closing fence\n")

	dirs := directives(blocks)
	if len(dirs) != 1 {
		t.Fatalf("expected the unclosed directive to be force-closed, got %d", len(dirs))
	}
	if got := strings.TrimSpace(textOf(t, dirs[0].Children)); got != "No closing fence" {
		t.Fatalf("body mismatch: %q", got)
	}
}

func TestParseBalancedFencesLeaveNoResidue(t *testing.T) {
	input := "::: a\n::: nope\n:::\n:::\n::: b\n:::\n"
	dirs := directives(Parse(input))
	if len(dirs) != 2 {
		t.Fatalf("expected 2 top-level directives, got %d", len(dirs))
	}
}

func TestParseColonsInsideCodeBlockIgnored(t *testing.T) {
	input := "```\n::: callout\nThis is code, not a directive\n:::\n```\n"
	blocks := Parse(input)

	if len(directives(blocks)) != 0 {
		t.Fatalf("directive fences inside code blocks should be ignored")
	}
	if got := textOf(t, blocks); !strings.Contains(got, "::: callout") {
		t.Fatalf("code block content should pass through verbatim, got %q", got)
	}
}

func TestParseTildeCodeFenceIgnoresDirectives(t *testing.T) {
	input := "~~~\n::: callout\nNot a directive\n:::\n~~~\n"
	if len(directives(Parse(input))) != 0 {
		t.Fatalf("directives inside tilde fences should be ignored")
	}
}

func TestParseMismatchedCodeFenceCharsNotClosed(t *testing.T) {
	// ~~~ cannot close a ``` fence, so the directive stays suppressed.
	input := "```\n::: callout\nBody\n:::\n~~~\n"
	if len(directives(Parse(input))) != 0 {
		t.Fatalf("~~~ should not close a backtick fence")
	}
}

func TestParseCodeFenceInsideDirective(t *testing.T) {
	input := "::: callout\n```\n::: warning\nnot a directive\n:::\n```\n:::\n"
	dirs := directives(Parse(input))

	if len(dirs) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(dirs))
	}
	body := textOf(t, dirs[0].Children)
	if !strings.Contains(body, "```") || !strings.Contains(body, "::: warning") {
		t.Fatalf("code fence should survive inside directive body, got %q", body)
	}
}

func TestParseBacktickInInfoStringNotAFence(t *testing.T) {
	input := "```foo`bar\n::: callout\nBody\n:::\n"
	dirs := directives(Parse(input))
	if len(dirs) != 1 {
		t.Fatalf("invalid backtick fence should not suppress directives, got %d", len(dirs))
	}
}

func TestParseIndentedCodeFenceIgnoresDirectives(t *testing.T) {
	input := "   ```\n::: callout\nBody\n:::\n   ```\n"
	if len(directives(Parse(input))) != 0 {
		t.Fatalf("directives inside indented code fences should be ignored")
	}
}

func TestParseTrailingWhitespaceOnFences(t *testing.T) {
	dirs := directives(Parse("::: callout   \nBody\n:::   \n"))
	if len(dirs) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(dirs))
	}
	if got := textOf(t, dirs[0].Children); got != "Body" {
		t.Fatalf("body mismatch: %q", got)
	}
}

func TestParseCRLFLineEndings(t *testing.T) {
	dirs := directives(Parse("::: callout\r\nHello\r\n:::\r\n"))
	if len(dirs) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(dirs))
	}
}

func TestParseNoDirectives(t *testing.T) {
	blocks := Parse("Just some regular markdown.\n\nNo directives here.\n")
	if len(directives(blocks)) != 0 {
		t.Fatalf("expected no directives")
	}
	if got := textOf(t, blocks); !strings.Contains(got, "regular markdown") {
		t.Fatalf("plain text should survive as a text run, got %q", got)
	}
}

func TestParseEOFWithoutTrailingNewline(t *testing.T) {
	dirs := directives(Parse("::: callout\nBody\n:::"))
	if len(dirs) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(dirs))
	}
	if got := textOf(t, dirs[0].Children); got != "Body" {
		t.Fatalf("body mismatch: %q", got)
	}
}
