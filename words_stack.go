package rpn

// nOperand builds a word popping an integer count N off the top, then
// applying op to the remaining stack. Positions are counted after the
// pop, 1-based from the new top.
func nOperand(name, desc string, op func(st *Stack, n int) error) WordDefinition {
	return WordDefinition{
		Name:        name,
		Description: desc,
		Params:      [][]Param{{{Name: "n", Type: KindInteger}}},
		Eval: func(it *Interp, c *Call) error {
			n, _ := it.Stack.Pop()
			return op(&it.Stack, int(n.Int()))
		},
	}
}

// alias re-registers a definition under additional spellings.
func (it *Interp) alias(def WordDefinition, names ...string) {
	it.runtime.Define(def)
	for _, name := range names {
		dup := def
		dup.Name = name
		it.runtime.Define(dup)
	}
}

func anyParams(names ...string) [][]Param {
	params := make([]Param, len(names))
	for i, name := range names {
		params[i] = Param{Name: name, Type: KindAny}
	}
	return [][]Param{params}
}

func (it *Interp) installStackWords() {
	it.runtime.Define(WordDefinition{
		Name:        "CLEAR",
		Description: "Empty the stack ( ... -- )",
		Eval: func(it *Interp, c *Call) error {
			it.Stack.Clear()
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "DEPTH",
		Description: "Push the element count ( -- n )",
		Eval: func(it *Interp, c *Call) error {
			it.Stack.Push(Int(int64(it.Stack.Depth())))
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "DUP",
		Description: "Duplicate the top element ( a -- a a )",
		Params:      anyParams("a"),
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Peek(1)
			it.Stack.Push(v)
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "DROP",
		Description: "Discard the top element ( a -- )",
		Params:      anyParams("a"),
		Eval: func(it *Interp, c *Call) error {
			_, err := it.Stack.Pop()
			return err
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "SWAP",
		Description: "Exchange the top two elements ( a b -- b a )",
		Params:      anyParams("a", "b"),
		Eval: func(it *Interp, c *Call) error {
			return it.Stack.Swap()
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "OVER",
		Description: "Copy the second element to the top ( a b -- a b a )",
		Params:      anyParams("a", "b"),
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Peek(2)
			it.Stack.Push(v)
			return nil
		},
	})

	rollu := WordDefinition{
		Name:        "ROLLU",
		Description: "Rotate the whole stack, bottom to top ( a ... z -- ... z a )",
		Eval: func(it *Interp, c *Call) error {
			it.Stack.RotateUp()
			return nil
		},
	}
	it.alias(rollu, "ROLL-")
	rolld := WordDefinition{
		Name:        "ROLLD",
		Description: "Rotate the whole stack, top to bottom ( ... y z -- z ... y )",
		Eval: func(it *Interp, c *Call) error {
			it.Stack.RotateDown()
			return nil
		},
	}
	it.alias(rolld, "ROLL+")

	it.runtime.Define(WordDefinition{
		Name:        "ROTU",
		Description: "Rotate the top three elements upward ( a b c -- b c a )",
		Params:      anyParams("a", "b", "c"),
		Eval: func(it *Interp, c *Call) error {
			return it.Stack.RollUp(3)
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "ROTD",
		Description: "Rotate the top three elements downward ( a b c -- c a b )",
		Params:      anyParams("a", "b", "c"),
		Eval: func(it *Interp, c *Call) error {
			return it.Stack.RollDown(3)
		},
	})

	it.alias(nOperand("ROLLUN", "Move the element at position n to the top ( n -- )",
		func(st *Stack, n int) error { return st.RollUp(n) }), "ROLLUn")
	it.alias(nOperand("ROLLDN", "Move the top element to position n ( n -- )",
		func(st *Stack, n int) error { return st.RollDown(n) }), "ROLLDn")
	it.runtime.Define(nOperand("PICK", "Copy the element at position n to the top ( n -- elem )",
		func(st *Stack, n int) error { return st.Pick(n) }))
	it.alias(nOperand("NIPN", "Remove the element at position n ( n -- )",
		func(st *Stack, n int) error { return st.NipN(n) }), "NIPn")
	it.alias(nOperand("TUCKN", "Copy the top element below position n ( n -- )",
		func(st *Stack, n int) error { return st.TuckN(n) }), "TUCKn")
	it.alias(nOperand("DROPN", "Discard the top n elements ( n -- )",
		func(st *Stack, n int) error { return st.DropN(n) }), "DROPn")
	it.alias(nOperand("DUPN", "Duplicate the top n elements in order ( n -- )",
		func(st *Stack, n int) error { return st.DupN(n) }), "DUPn")
	it.alias(nOperand("REVERSEN", "Reverse the top n elements ( n -- )",
		func(st *Stack, n int) error { return st.ReverseN(n) }), "REVERSEn")

	it.runtime.Define(WordDefinition{
		Name:        "REVERSE",
		Description: "Reverse the whole stack ( a ... z -- z ... a )",
		Eval: func(it *Interp, c *Call) error {
			it.Stack.Reverse()
			return nil
		},
	})

	it.runtime.Define(WordDefinition{
		Name:        ".S",
		Description: "Print the stack, bottom first ( -- )",
		Eval: func(it *Interp, c *Call) error {
			stackDumper{&it.Stack, it.out}.dump()
			return nil
		},
	})
}
