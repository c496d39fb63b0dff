package rpn

import "strings"

// scanLoopBody collects tokens from the remaining line until the NEXT
// matching this FOR, honoring nesting.
func scanLoopBody(c *Call) ([]string, bool) {
	var body []string
	depth := 0
	for {
		tok, ok := c.nextToken()
		if !ok {
			return nil, false
		}
		switch tok {
		case "FOR":
			depth++
		case "NEXT":
			if depth == 0 {
				return body, true
			}
			depth--
		}
		body = append(body, tok)
	}
}

func loopFor(it *Interp, c *Call) error {
	last, _ := it.Stack.Pop()
	first, _ := it.Stack.Pop()
	body, ok := scanLoopBody(c)
	if !ok {
		return parseErrorf("FOR: terminating NEXT not found")
	}
	line := strings.Join(body, " ")
	for i := first.AsInteger(); i <= last.AsInteger(); i++ {
		it.loops = append(it.loops, i)
		err := it.parseLine(line)
		it.loops = it.loops[:len(it.loops)-1]
		if err != nil {
			return err
		}
	}
	return nil
}

func loopIndex(it *Interp, c *Call) error {
	if len(it.loops) == 0 {
		return evalErrorf("%s: no enclosing loop", c.Word)
	}
	it.Stack.Push(Int(it.loops[len(it.loops)-1]))
	return nil
}

func (it *Interp) installControlWords() {
	it.runtime.Define(WordDefinition{
		Name:        "FOR",
		Description: "Counted loop over the words through NEXT ( first last -- )",
		Params:      twoNumbers("first", "last"),
		Eval:        loopFor,
	})
	it.runtime.Define(WordDefinition{
		Name:        "NEXT",
		Description: "End of a FOR loop body ( -- )",
		Eval: func(it *Interp, c *Call) error {
			return evalErrorf("NEXT: no enclosing FOR")
		},
	})
	loop := WordDefinition{
		Name:        "I",
		Description: "Push the innermost loop index ( -- i )",
		Eval:        loopIndex,
	}
	it.alias(loop, "i")

	it.runtime.Define(WordDefinition{
		Name:        "WORDS",
		Description: "List the dictionary ( -- )",
		Eval: func(it *Interp, c *Call) error {
			wordDumper{&it.runtime, it.out}.dump()
			return nil
		},
	})
}
