// Package directive implements the `:::`-fenced block grammar layered on top
// of Markdown: a code-fence-aware stack parser that produces a block tree, the
// Pandoc-style attribute mini-grammar attached to opening fences, and the
// renderer that wraps directive bodies in their HTML containers.
package directive

// Block is a node in the parsed document tree. The two implementations are
// Text, a verbatim run of Markdown source, and *Directive, a fenced block
// with children of its own.
type Block interface {
	block()
}

// Text is a raw span of Markdown source lines, handed to the external
// Markdown converter untouched.
type Text struct {
	Raw string
}

func (Text) block() {}

// Directive is a `:::`-fenced block carrying an optional name, Pandoc-style
// attributes, and an ordered sequence of child blocks.
type Directive struct {
	// Name is the directive name, empty for anonymous fenced divs.
	Name  string
	Attrs AttributeSet
	// Children hold the parsed body, in document order.
	Children []Block
	// FenceLength is the number of colons on the opening fence, >= 3.
	FenceLength int
}

func (*Directive) block() {}

// Pair is a single key/value attribute.
type Pair struct {
	Key   string
	Value string
}

// AttributeSet holds the attributes parsed from a directive header: an
// optional id, append-only ordered classes, and key/value pairs in insertion
// order with last-write-wins semantics on duplicate keys.
type AttributeSet struct {
	ID      string
	Classes []string
	Pairs   []Pair
}

// Set records a key/value pair. A duplicate key keeps its original position
// and takes the new value.
func (a *AttributeSet) Set(key, value string) {
	for i := range a.Pairs {
		if a.Pairs[i].Key == key {
			a.Pairs[i].Value = value
			return
		}
	}
	a.Pairs = append(a.Pairs, Pair{Key: key, Value: value})
}

// Get returns the value recorded for key and whether it was present.
func (a AttributeSet) Get(key string) (string, bool) {
	for _, p := range a.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// IsZero reports whether no id, class, or pair was parsed.
func (a AttributeSet) IsZero() bool {
	return a.ID == "" && len(a.Classes) == 0 && len(a.Pairs) == 0
}
