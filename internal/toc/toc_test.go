package toc

import (
	"strings"
	"testing"

	"github.com/hakula139/kiln/pkg/interfaces"
)

func heading(level int, text string) interfaces.HeadingRecord {
	return interfaces.HeadingRecord{Level: level, Text: text, Slug: strings.ToLower(text)}
}

func TestBuildEmpty(t *testing.T) {
	if got := Build(nil); len(got) != 0 {
		t.Fatalf("expected empty forest, got %#v", got)
	}
}

func TestBuildFlat(t *testing.T) {
	roots := Build([]interfaces.HeadingRecord{
		heading(2, "One"),
		heading(2, "Two"),
		heading(2, "Three"),
	})
	if len(roots) != 3 {
		t.Fatalf("equal levels should all be roots, got %d", len(roots))
	}
}

func TestBuildNesting(t *testing.T) {
	roots := Build([]interfaces.HeadingRecord{
		heading(1, "Top"),
		heading(2, "Sub"),
		heading(3, "Deep"),
		heading(2, "Sub2"),
	})
	if len(roots) != 1 {
		t.Fatalf("expected a single root, got %d", len(roots))
	}
	top := roots[0]
	if len(top.Children) != 2 {
		t.Fatalf("expected 2 children under the root, got %d", len(top.Children))
	}
	if len(top.Children[0].Children) != 1 || top.Children[0].Children[0].Text != "Deep" {
		t.Fatalf("h3 should nest under the first h2, got %#v", top.Children[0])
	}
}

func TestBuildSecondTopLevelStartsNewTree(t *testing.T) {
	// Levels 1,2,2,3,1 produce exactly two roots; the second h1 closes
	// everything before it.
	roots := Build([]interfaces.HeadingRecord{
		heading(1, "A"),
		heading(2, "B"),
		heading(2, "C"),
		heading(3, "D"),
		heading(1, "E"),
	})
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[1].Text != "E" || len(roots[1].Children) != 0 {
		t.Fatalf("second root mismatch: %#v", roots[1])
	}
	first := roots[0]
	if len(first.Children) != 2 {
		t.Fatalf("first root should keep both h2 children, got %d", len(first.Children))
	}
	if len(first.Children[1].Children) != 1 || first.Children[1].Children[0].Text != "D" {
		t.Fatalf("h3 should nest under the closest h2, got %#v", first.Children[1])
	}
}

func TestBuildSkippedLevels(t *testing.T) {
	// No synthetic nodes: a document starting at h3 gets an h3 root.
	roots := Build([]interfaces.HeadingRecord{
		heading(3, "Deep"),
		heading(2, "Shallow"),
	})
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Level != 3 || roots[1].Level != 2 {
		t.Fatalf("levels should be preserved as-is, got %#v", roots)
	}
}

func TestRenderHTML(t *testing.T) {
	roots := Build([]interfaces.HeadingRecord{
		heading(2, "Intro"),
		heading(3, "Detail"),
	})
	got := RenderHTML(roots)

	if !strings.HasPrefix(got, `<nav class="toc">`) {
		t.Fatalf("expected nav wrapper, got %q", got)
	}
	if !strings.Contains(got, `<a href="#intro">Intro</a>`) {
		t.Fatalf("link mismatch: %q", got)
	}
	inner := strings.Index(got, `href="#detail"`)
	outer := strings.Index(got, `href="#intro"`)
	if inner < outer {
		t.Fatalf("nested entries should come after their parents, got %q", got)
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	got := RenderHTML([]*Node{{Level: 2, Text: "<b>bold</b>", Slug: "bold"}})
	if strings.Contains(got, "<b>") {
		t.Fatalf("heading text must be escaped, got %q", got)
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	if got := RenderHTML(nil); got != "" {
		t.Fatalf("empty forest should render nothing, got %q", got)
	}
}
