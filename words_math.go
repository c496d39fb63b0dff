package rpn

import "math"

func numParam(name string) Param { return Param{Name: name, Type: KindNumber} }
func vecParam(name string) Param { return Param{Name: name, Type: KindVec3} }

func oneNumber(name string) [][]Param { return [][]Param{{numParam(name)}} }

func twoNumbers(a, b string) [][]Param {
	return [][]Param{{numParam(a), numParam(b)}}
}

// unaryDouble builds a word popping one number and pushing fn of it as a
// double.
func unaryDouble(name, desc string, fn func(float64) float64) WordDefinition {
	return WordDefinition{
		Name:        name,
		Description: desc,
		Params:      oneNumber("x"),
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			it.Stack.Push(Dbl(fn(v.AsDouble())))
			return nil
		},
	}
}

// binaryDouble builds a word popping two numbers and pushing fn(a, b) as
// a double, a being the deeper operand.
func binaryDouble(name, desc string, fn func(a, b float64) float64) WordDefinition {
	return WordDefinition{
		Name:        name,
		Description: desc,
		Params:      twoNumbers("x", "y"),
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			it.Stack.Push(Dbl(fn(a.AsDouble(), b.AsDouble())))
			return nil
		},
	}
}

// constant builds a zero-arity word pushing a fixed value.
func constant(name, desc string, v Value) WordDefinition {
	return WordDefinition{
		Name:        name,
		Description: desc,
		Eval: func(it *Interp, c *Call) error {
			it.Stack.Push(v)
			return nil
		},
	}
}

// arith pops two operands and pushes the result of the integer op when
// both are integers, the double op otherwise. Vector overloads are
// handled before calling down here.
func arith(it *Interp, iop func(a, b int64) int64, fop func(a, b float64) float64) {
	b, _ := it.Stack.Pop()
	a, _ := it.Stack.Pop()
	if a.Kind() == KindInteger && b.Kind() == KindInteger {
		it.Stack.Push(Int(iop(a.Int(), b.Int())))
		return
	}
	it.Stack.Push(Dbl(fop(a.AsDouble(), b.AsDouble())))
}

func (it *Interp) installMathWords() {
	it.runtime.Define(WordDefinition{
		Name:        "+",
		Description: "Addition ( x y -- x+y )",
		Params: [][]Param{
			{numParam("x"), numParam("y")},
			{vecParam("v1"), vecParam("v2")},
		},
		Eval: func(it *Interp, c *Call) error {
			if v, _ := it.Stack.Peek(1); v.Kind() == KindVec3 {
				b, _ := it.Stack.Pop()
				a, _ := it.Stack.Pop()
				it.Stack.Push(Vec(a.Vec().Add(b.Vec())))
				return nil
			}
			arith(it, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "-",
		Description: "Subtraction ( x y -- x-y )",
		Params: [][]Param{
			{numParam("x"), numParam("y")},
			{vecParam("v1"), vecParam("v2")},
		},
		Eval: func(it *Interp, c *Call) error {
			if v, _ := it.Stack.Peek(1); v.Kind() == KindVec3 {
				b, _ := it.Stack.Pop()
				a, _ := it.Stack.Pop()
				it.Stack.Push(Vec(a.Vec().Sub(b.Vec())))
				return nil
			}
			arith(it, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "*",
		Description: "Multiplication ( x y -- x*y )",
		Params:      twoNumbers("x", "y"),
		Eval: func(it *Interp, c *Call) error {
			arith(it, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "/",
		Description: "Division ( x y -- x/y )",
		Params:      twoNumbers("x", "y"),
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			it.Stack.Push(Dbl(a.AsDouble() / b.AsDouble()))
			return nil
		},
	})

	it.runtime.Define(WordDefinition{
		Name:        "ABS",
		Description: "Absolute value, or vector magnitude ( x -- |x| )",
		Params: [][]Param{
			{numParam("x")},
			{vecParam("v")},
		},
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			switch v.Kind() {
			case KindInteger:
				i := v.Int()
				if i < 0 {
					i = -i
				}
				it.Stack.Push(Int(i))
			case KindVec3:
				it.Stack.Push(Dbl(v.Vec().Mag()))
			default:
				it.Stack.Push(Dbl(math.Abs(v.Float())))
			}
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "SQ",
		Description: "Square ( x -- x*x )",
		Params:      oneNumber("x"),
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			if v.Kind() == KindInteger {
				it.Stack.Push(Int(v.Int() * v.Int()))
			} else {
				it.Stack.Push(Dbl(v.Float() * v.Float()))
			}
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "NEG",
		Description: "Bitwise complement of an integer, negation of a double ( x -- x' )",
		Params:      oneNumber("x"),
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			if v.Kind() == KindInteger {
				it.Stack.Push(Int(^v.Int()))
			} else {
				it.Stack.Push(Dbl(-v.Float()))
			}
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "CHS",
		Description: "Change sign ( x -- -x )",
		Params:      oneNumber("x"),
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			if v.Kind() == KindInteger {
				it.Stack.Push(Int(-v.Int()))
			} else {
				it.Stack.Push(Dbl(-v.Float()))
			}
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "MIN",
		Description: "Lesser of two numbers ( a b -- min )",
		Params:      twoNumbers("a", "b"),
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			if b.AsDouble() < a.AsDouble() {
				it.Stack.Push(b)
			} else {
				it.Stack.Push(a)
			}
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "MAX",
		Description: "Greater of two numbers ( a b -- max )",
		Params:      twoNumbers("a", "b"),
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			if b.AsDouble() > a.AsDouble() {
				it.Stack.Push(b)
			} else {
				it.Stack.Push(a)
			}
			return nil
		},
	})

	it.runtime.Define(unaryDouble("SQRT", "Square root ( x -- sqrt(x) )", math.Sqrt))
	it.runtime.Define(unaryDouble("INV", "Reciprocal ( x -- 1/x )", func(x float64) float64 { return 1 / x }))
	it.runtime.Define(unaryDouble("EXP", "Natural exponential ( x -- e^x )", math.Exp))
	it.runtime.Define(unaryDouble("LN", "Natural logarithm ( x -- ln(x) )", math.Log))
	it.runtime.Define(unaryDouble("LN2", "Base-2 logarithm ( x -- log2(x) )", math.Log2))
	it.runtime.Define(unaryDouble("LOG", "Base-10 logarithm ( x -- log10(x) )", math.Log10))
	it.runtime.Define(unaryDouble("SIN", "Sine, radians ( x -- sin(x) )", math.Sin))
	it.runtime.Define(unaryDouble("COS", "Cosine, radians ( x -- cos(x) )", math.Cos))
	it.runtime.Define(unaryDouble("TAN", "Tangent, radians ( x -- tan(x) )", math.Tan))
	it.runtime.Define(unaryDouble("ASIN", "Arc sine ( x -- asin(x) )", math.Asin))
	it.runtime.Define(unaryDouble("ACOS", "Arc cosine ( x -- acos(x) )", math.Acos))
	it.runtime.Define(unaryDouble("ATAN", "Arc tangent ( x -- atan(x) )", math.Atan))
	it.runtime.Define(unaryDouble("CEIL", "Round up ( x -- ceil(x) )", math.Ceil))
	it.runtime.Define(unaryDouble("FLOOR", "Round down ( x -- floor(x) )", math.Floor))
	it.runtime.Define(unaryDouble("ROUND", "Round to nearest ( x -- round(x) )", math.Round))

	it.runtime.Define(binaryDouble("POW", "Exponentiation ( x y -- x^y )", math.Pow))
	it.runtime.Define(binaryDouble("HYPOT", "Euclidean distance ( x y -- sqrt(x*x+y*y) )", math.Hypot))
	it.runtime.Define(WordDefinition{
		Name:        "ATAN2",
		Description: "Two-argument arc tangent ( y x -- atan2(y,x) )",
		Params:      twoNumbers("y", "x"),
		Eval: func(it *Interp, c *Call) error {
			x, _ := it.Stack.Pop()
			y, _ := it.Stack.Pop()
			it.Stack.Push(Dbl(math.Atan2(y.AsDouble(), x.AsDouble())))
			return nil
		},
	})

	it.runtime.Define(WordDefinition{
		Name:        "RAND",
		Description: "Random non-negative integer ( -- n )",
		Eval: func(it *Interp, c *Call) error {
			it.Stack.Push(Int(it.rand.Int63()))
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "RAND48",
		Description: "Random double in [0,1) ( -- x )",
		Eval: func(it *Interp, c *Call) error {
			it.Stack.Push(Dbl(it.rand.Float64()))
			return nil
		},
	})

	it.runtime.Define(constant("k_PI", "The circle constant ( -- pi )", Dbl(math.Pi)))
	it.runtime.Define(constant("PI", "The circle constant ( -- pi )", Dbl(math.Pi)))
	it.runtime.Define(constant("k_E", "Euler's number ( -- e )", Dbl(math.E)))
}
