package directive

import "strings"

// parseHeader parses the content following a directive's opening colons into
// an optional name and an attribute set.
//
// Supported forms:
//
//	callout                          bare name
//	callout {#id .cls key=value}     name plus Pandoc attribute group
//	{#id .cls}                       anonymous fenced div
//	callout key=value                legacy brace-less attributes
//
// Tokens that match none of the recognized shapes are ignored so future
// syntax extensions degrade to a no-op instead of breaking the parse.
func parseHeader(raw string) (string, AttributeSet) {
	raw = strings.TrimSpace(raw)

	var name string
	if raw != "" && raw[0] != '{' {
		if end := strings.IndexFunc(raw, isSpace); end >= 0 {
			name, raw = raw[:end], strings.TrimSpace(raw[end:])
		} else {
			name, raw = raw, ""
		}
		// A lone token in attribute shape is an attribute, not a name.
		if strings.ContainsAny(name, "=") || strings.HasPrefix(name, "#") || strings.HasPrefix(name, ".") {
			raw = strings.TrimSpace(name + " " + raw)
			name = ""
		}
	}

	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}

	var attrs AttributeSet
	for _, token := range splitTokens(raw) {
		parseToken(token, &attrs)
	}
	return name, attrs
}

// parseToken classifies one whitespace-delimited token. Malformed tokens
// (unbalanced quotes, stray '=') are dropped and parsing continues.
func parseToken(token string, attrs *AttributeSet) {
	switch {
	case strings.HasPrefix(token, "#"):
		// First #id wins; later ones are silently dropped.
		if id := token[1:]; id != "" && attrs.ID == "" {
			attrs.ID = id
		}
	case strings.HasPrefix(token, "."):
		if class := token[1:]; class != "" {
			attrs.Classes = append(attrs.Classes, class)
		}
	case strings.Contains(token, "="):
		eq := strings.Index(token, "=")
		key, value := token[:eq], token[eq+1:]
		if key == "" {
			return
		}
		if strings.HasPrefix(value, `"`) {
			if len(value) < 2 || !strings.HasSuffix(value, `"`) {
				return
			}
			value = value[1 : len(value)-1]
		}
		attrs.Set(key, value)
	}
}

// splitTokens splits on whitespace while keeping double-quoted values (which
// may contain spaces) inside a single token.
func splitTokens(s string) []string {
	var (
		tokens []string
		start  = -1
		quoted bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoted:
			if c == '"' {
				quoted = false
			}
		case c == ' ' || c == '\t':
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
			if c == '"' {
				quoted = true
			}
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
