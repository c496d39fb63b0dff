package rpn

import (
	"sort"
	"strings"
)

// Param pairs a parameter name with its expected type. The name is
// documentation only; the type drives validation.
type Param struct {
	Name string
	Type Kind
}

// A Call carries the per-invocation state a native body may use: the token
// that named the word, the unparsed remainder of the input line, and the
// opaque context registered with the definition. Bodies must not retain
// the Call past their own return.
type Call struct {
	Word    string
	Context interface{}

	rest *string
}

// ScanTo consumes the remaining line up to and including the first
// occurrence of delim, returning the consumed text without the delimiter.
// When delim is absent the whole remainder is consumed and ok is false.
func (c *Call) ScanTo(delim byte) (text string, ok bool) {
	if c.rest == nil {
		return "", false
	}
	if i := strings.IndexByte(*c.rest, delim); i >= 0 {
		text, *c.rest = (*c.rest)[:i], (*c.rest)[i+1:]
		return text, true
	}
	text, *c.rest = *c.rest, ""
	return text, false
}

// nextToken consumes the next space-delimited token from the remaining
// line; ok is false once the line is exhausted.
func (c *Call) nextToken() (string, bool) {
	for c.rest != nil && *c.rest != "" {
		var word string
		word, *c.rest = splitWord(*c.rest)
		if word != "" {
			return word, true
		}
	}
	return "", false
}

// NativeFn is the executable body of a native word. Bodies receive the
// interpreter and call explicitly rather than capturing them, so a
// definition is never tied to the session that created it.
type NativeFn func(it *Interp, c *Call) error

// WordDefinition describes one dictionary entry: a native word (Eval set)
// or a user definition (Body set, replayed token by token).
type WordDefinition struct {
	Name        string
	Description string

	// Params is the ordered overload set: the first signature the live
	// stack fully satisfies wins. Parameters within a signature are
	// declared in push order, so the last parameter is the top of the
	// stack. An empty set, or an empty signature, accepts any stack.
	Params [][]Param

	Eval    NativeFn
	Context interface{}

	Body []string
}

// Dictionary maps word names to definitions. Lookup is by exact name;
// redefining a name silently replaces the previous entry.
type Dictionary struct {
	words map[string]*WordDefinition
}

func (d *Dictionary) Define(def WordDefinition) *WordDefinition {
	if d.words == nil {
		d.words = make(map[string]*WordDefinition)
	}
	w := def
	d.words[w.Name] = &w
	return &w
}

func (d *Dictionary) Lookup(name string) *WordDefinition {
	return d.words[name]
}

func (d *Dictionary) Exists(name string) bool {
	_, defined := d.words[name]
	return defined
}

// Names returns all defined names in sorted order.
func (d *Dictionary) Names() []string {
	names := make([]string, 0, len(d.words))
	for name := range d.words {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
