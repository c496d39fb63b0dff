package rpn

// comparison builds one of the ordering words, overloaded over numbers
// and strings. The deeper operand is the left-hand side.
func comparison(name string, num func(a, b float64) bool, str func(a, b string) bool) WordDefinition {
	return WordDefinition{
		Name:        name,
		Description: "Ordering comparison ( a b -- a" + name + "b )",
		Params: [][]Param{
			{numParam("x"), numParam("y")},
			{{Name: "s1", Type: KindString}, {Name: "s2", Type: KindString}},
		},
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			if a.Kind() == KindString {
				it.Stack.Push(Bool(str(a.Str(), b.Str())))
			} else {
				it.Stack.Push(Bool(num(a.AsDouble(), b.AsDouble())))
			}
			return nil
		},
	}
}

func (it *Interp) installLogicWords() {
	it.runtime.Define(WordDefinition{
		Name:        "==",
		Description: "Equality; values of different types are never equal ( a b -- a==b )",
		Params:      anyParams("a", "b"),
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			it.Stack.Push(Bool(a.Equal(b)))
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "!=",
		Description: "Inequality ( a b -- a!=b )",
		Params:      anyParams("a", "b"),
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			it.Stack.Push(Bool(!a.Equal(b)))
			return nil
		},
	})

	it.runtime.Define(comparison("<",
		func(a, b float64) bool { return a < b },
		func(a, b string) bool { return a < b }))
	it.runtime.Define(comparison("<=",
		func(a, b float64) bool { return a <= b },
		func(a, b string) bool { return a <= b }))
	it.runtime.Define(comparison(">",
		func(a, b float64) bool { return a > b },
		func(a, b string) bool { return a > b }))
	it.runtime.Define(comparison(">=",
		func(a, b float64) bool { return a >= b },
		func(a, b string) bool { return a >= b }))

	it.runtime.Define(WordDefinition{
		Name:        "NOT",
		Description: "Logical complement ( b -- !b )",
		Params:      [][]Param{{{Name: "b", Type: KindBoolean}}},
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			it.Stack.Push(Bool(!v.Bool()))
			return nil
		},
	})

	it.runtime.Define(boolOrBits("AND", "Conjunction; bitwise on integers ( a b -- a&b )",
		func(a, b bool) bool { return a && b },
		func(a, b int64) int64 { return a & b }))
	it.runtime.Define(boolOrBits("OR", "Disjunction; bitwise on integers ( a b -- a|b )",
		func(a, b bool) bool { return a || b },
		func(a, b int64) int64 { return a | b }))
	it.runtime.Define(boolOrBits("XOR", "Exclusive or; bitwise on integers ( a b -- a^b )",
		func(a, b bool) bool { return a != b },
		func(a, b int64) int64 { return a ^ b }))

	it.runtime.Define(WordDefinition{
		Name:        "IFTE",
		Description: "Select by condition ( cond then else -- then|else )",
		Params: [][]Param{{
			{Name: "cond", Type: KindBoolean},
			{Name: "then", Type: KindAny},
			{Name: "else", Type: KindAny},
		}},
		Eval: func(it *Interp, c *Call) error {
			alt, _ := it.Stack.Pop()
			then, _ := it.Stack.Pop()
			cond, _ := it.Stack.Pop()
			if cond.Bool() {
				it.Stack.Push(then)
			} else {
				it.Stack.Push(alt)
			}
			return nil
		},
	})
}

// boolOrBits builds a word overloaded over boolean pairs (logical) and
// integer pairs (bitwise); mixing the two is a type error.
func boolOrBits(name, desc string, bop func(a, b bool) bool, iop func(a, b int64) int64) WordDefinition {
	return WordDefinition{
		Name:        name,
		Description: desc,
		Params: [][]Param{
			{{Name: "a", Type: KindBoolean}, {Name: "b", Type: KindBoolean}},
			{{Name: "x", Type: KindInteger}, {Name: "y", Type: KindInteger}},
		},
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			if a.Kind() == KindBoolean {
				it.Stack.Push(Bool(bop(a.Bool(), b.Bool())))
			} else {
				it.Stack.Push(Int(iop(a.Int(), b.Int())))
			}
			return nil
		},
	}
}
