package directive

import "strings"

// fenceFrame tracks one open directive fence. Frames form an explicit stack,
// innermost on top, so pathological nesting depth never grows the call stack.
type fenceFrame struct {
	length int
	block  *Directive
}

// codeFence tracks an open fenced code block. While set, directive-fence
// recognition is suspended and every line is copied verbatim.
type codeFence struct {
	marker byte
	length int
}

// Parse scans text line by line and returns the document's top-level blocks.
// It never fails: malformed input degrades to a best-effort tree. Directives
// left unclosed at end of input are force-closed innermost-first, keeping
// their accumulated content as their body.
func Parse(text string) []Block {
	var (
		root   []Block
		frames []*fenceFrame
		code   *codeFence
		buf    []string
	)

	appendBlock := func(b Block) {
		if len(frames) > 0 {
			top := frames[len(frames)-1]
			top.block.Children = append(top.block.Children, b)
			return
		}
		root = append(root, b)
	}

	flush := func() {
		if len(buf) == 0 {
			return
		}
		raw := strings.Join(buf, "\n")
		buf = buf[:0]
		if strings.TrimSpace(raw) == "" {
			return
		}
		appendBlock(Text{Raw: raw})
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSuffix(rawLine, "\r")

		if code != nil {
			if isClosingCodeFence(line, code.marker, code.length) {
				code = nil
			}
			buf = append(buf, rawLine)
			continue
		}

		if marker, length, ok := detectOpeningCodeFence(line); ok {
			code = &codeFence{marker: marker, length: length}
			buf = append(buf, rawLine)
			continue
		}

		if count := countLeadingColons(line); count >= 3 {
			header := strings.TrimSpace(line[count:])

			// Closers never carry header content, and the closing length is
			// compared only against the immediate top frame.
			if header == "" && len(frames) > 0 && count >= frames[len(frames)-1].length {
				flush()
				top := frames[len(frames)-1]
				frames = frames[:len(frames)-1]
				appendBlock(top.block)
				continue
			}

			flush()
			name, attrs := parseHeader(header)
			frames = append(frames, &fenceFrame{
				length: count,
				block:  &Directive{Name: name, Attrs: attrs, FenceLength: count},
			})
			continue
		}

		buf = append(buf, rawLine)
	}

	flush()
	for len(frames) > 0 {
		top := frames[len(frames)-1]
		frames = frames[:len(frames)-1]
		appendBlock(top.block)
	}

	return root
}

// countLeadingColons returns the number of leading ':' characters. Only
// column-0 fences count; directives are top-level constructs.
func countLeadingColons(line string) int {
	count := 0
	for count < len(line) && line[count] == ':' {
		count++
	}
	return count
}

// detectOpeningCodeFence recognizes an opening code fence of three-or-more
// backticks or tildes, allowing up to 3 spaces of indentation. Per
// CommonMark, backtick fence info strings must not contain backticks.
func detectOpeningCodeFence(line string) (byte, int, bool) {
	rest, ok := stripFenceIndent(line)
	if !ok || rest == "" {
		return 0, 0, false
	}

	marker := rest[0]
	if marker != '`' && marker != '~' {
		return 0, 0, false
	}

	count := 0
	for count < len(rest) && rest[count] == marker {
		count++
	}
	if count < 3 {
		return 0, 0, false
	}
	if marker == '`' && strings.Contains(rest[count:], "`") {
		return 0, 0, false
	}
	return marker, count, true
}

// isClosingCodeFence reports whether line closes a code fence opened with
// marker repeated minCount times.
func isClosingCodeFence(line string, marker byte, minCount int) bool {
	rest, ok := stripFenceIndent(line)
	if !ok {
		return false
	}
	count := 0
	for count < len(rest) && rest[count] == marker {
		count++
	}
	return count >= minCount && strings.TrimSpace(rest[count:]) == ""
}

// stripFenceIndent removes up to 3 spaces of leading indentation. Four or
// more spaces mean an indented code block, not a fence.
func stripFenceIndent(line string) (string, bool) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 {
		return "", false
	}
	return line[indent:], true
}
