// Package toc builds a table-of-contents forest from the flat heading list
// collected during rendering.
package toc

import (
	"html"
	"strings"

	"github.com/hakula139/kiln/pkg/interfaces"
)

// Node is one entry in the table of contents. Children hold the headings
// nested under this one.
type Node struct {
	Level    int
	Text     string
	Slug     string
	Children []*Node
}

// Build assembles the heading forest. Each heading becomes a child of the
// nearest preceding heading with a smaller level, or a root when none
// exists. No synthetic nodes are invented for skipped levels, so a document
// starting at h3 simply gets an h3 root.
func Build(headings []interfaces.HeadingRecord) []*Node {
	var (
		roots []*Node
		stack []*Node
	)
	for _, h := range headings {
		node := &Node{Level: h.Level, Text: h.Text, Slug: h.Slug}

		for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}

// RenderHTML renders the forest as a nav element with nested lists. An empty
// forest renders to an empty string.
func RenderHTML(roots []*Node) string {
	if len(roots) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<nav class="toc">` + "\n")
	renderList(&b, roots)
	b.WriteString("</nav>\n")
	return b.String()
}

func renderList(b *strings.Builder, nodes []*Node) {
	b.WriteString("<ul>\n")
	for _, node := range nodes {
		b.WriteString(`<li><a href="#` + html.EscapeString(node.Slug) + `">` +
			html.EscapeString(node.Text) + "</a>")
		if len(node.Children) > 0 {
			b.WriteString("\n")
			renderList(b, node.Children)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
