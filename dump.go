package rpn

import (
	"fmt"
	"io"
	"strings"
)

// stackDumper renders the stack for the .S word: depth header, then every
// element bottom first, labeled with its distance from the top.
type stackDumper struct {
	stack *Stack
	out   io.Writer
}

func (d stackDumper) dump() {
	fmt.Fprintf(d.out, "--%20d--\n", d.stack.Depth())
	for n := d.stack.Depth(); n >= 1; n-- {
		v, _ := d.stack.Peek(n)
		fmt.Fprintf(d.out, "[%02d] %s\n", n, v.Tagged())
	}
	fmt.Fprintf(d.out, "------------------------\n")
}

// wordDumper lists dictionary entries for the WORDS word.
type wordDumper struct {
	dict *Dictionary
	out  io.Writer
}

func (d wordDumper) dump() {
	for _, name := range d.dict.Names() {
		w := d.dict.Lookup(name)
		if sigs := describeParams(w.Params); sigs != "" {
			fmt.Fprintf(d.out, "%-12s %s %s\n", name, w.Description, sigs)
		} else {
			fmt.Fprintf(d.out, "%-12s %s\n", name, w.Description)
		}
	}
}

// describeParams renders an overload set as "(x number, y number) |
// (v1 vec3, v2 vec3)"; an empty or zero-arity set renders empty.
func describeParams(sigs [][]Param) string {
	var alts []string
	for _, params := range sigs {
		if len(params) == 0 {
			continue
		}
		decls := make([]string, len(params))
		for i, p := range params {
			decls[i] = fmt.Sprintf("%s %v", p.Name, p.Type)
		}
		alts = append(alts, "("+strings.Join(decls, ", ")+")")
	}
	return strings.Join(alts, " | ")
}
