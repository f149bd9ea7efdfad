package directive

import (
	"html"
	"strings"
)

// MarkdownFunc converts a Markdown fragment into HTML. The directive renderer
// treats it as a total function; heading collection happens inside the
// supplied implementation.
type MarkdownFunc func(markdown string) string

// calloutTitles maps recognized callout types to their default titles.
var calloutTitles = map[string]string{
	"abstract": "Abstract",
	"bug":      "Bug",
	"danger":   "Danger",
	"example":  "Example",
	"failure":  "Failure",
	"info":     "Info",
	"note":     "Note",
	"question": "Question",
	"quote":    "Quote",
	"success":  "Success",
	"tip":      "Tip",
	"warning":  "Warning",
}

// Render walks blocks depth-first, post-order: children are rendered before
// their parent wraps them. Text runs go through render verbatim.
func Render(blocks []Block, render MarkdownFunc) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(renderBlock(block, render))
	}
	return b.String()
}

func renderBlock(block Block, render MarkdownFunc) string {
	switch n := block.(type) {
	case Text:
		return render(n.Raw)
	case *Directive:
		body := Render(n.Children, render)
		switch {
		case n.Name == "callout":
			return renderCallout(n.Attrs, body)
		case n.Name != "":
			// Unknown directive: the name becomes the container class and the
			// body must round-trip without loss even though styling is absent.
			return "<div class=\"" + html.EscapeString(n.Name) + "\">" + body + "</div>\n"
		default:
			return renderDiv(n.Attrs, body)
		}
	}
	return ""
}

// renderCallout emits a collapsible <details> container for a callout
// directive. The type defaults to "note"; unrecognized types keep their class
// as given and fall back to the capitalized type string for the title.
func renderCallout(attrs AttributeSet, body string) string {
	typ, _ := attrs.Get("type")
	if typ == "" {
		typ = "note"
	}
	title, known := calloutTitles[strings.ToLower(typ)]
	if known {
		typ = strings.ToLower(typ)
	} else {
		title = capitalize(typ)
	}
	if custom, ok := attrs.Get("title"); ok && custom != "" {
		title = custom
	}

	openAttr := " open"
	if v, ok := attrs.Get("open"); ok && v == "false" {
		openAttr = ""
	}

	var b strings.Builder
	b.WriteString("<details")
	if attrs.ID != "" {
		b.WriteString(` id="` + html.EscapeString(attrs.ID) + `"`)
	}
	b.WriteString(` class="callout ` + html.EscapeString(typ))
	for _, class := range attrs.Classes {
		b.WriteString(" " + html.EscapeString(class))
	}
	b.WriteString(`"` + openAttr + ">\n")
	b.WriteString(`<summary class="callout-title">` + html.EscapeString(title) + "</summary>\n")
	b.WriteString(`<div class="callout-body">` + body + "</div>\n")
	b.WriteString("</details>\n")
	return b.String()
}

// renderDiv emits the generic container for anonymous fenced divs. A
// directive with no name and no attributes still gets a container; the body
// is never silently dropped.
func renderDiv(attrs AttributeSet, body string) string {
	var b strings.Builder
	b.WriteString("<div")
	if attrs.ID != "" {
		b.WriteString(` id="` + html.EscapeString(attrs.ID) + `"`)
	}
	if len(attrs.Classes) > 0 {
		escaped := make([]string, len(attrs.Classes))
		for i, class := range attrs.Classes {
			escaped[i] = html.EscapeString(class)
		}
		b.WriteString(` class="` + strings.Join(escaped, " ") + `"`)
	}
	b.WriteString(">" + body + "</div>\n")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
