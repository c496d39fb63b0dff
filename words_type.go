package rpn

import (
	"math"
	"strconv"

	"github.com/expr-lang/expr"
)

func strParam(name string) Param { return Param{Name: name, Type: KindString} }

// axisSetter builds one of the partial-vector constructors: the axes it
// doesn't name stay unset.
func axisSetter(name, desc string, set func(v *Vec3, f float64)) WordDefinition {
	return WordDefinition{
		Name:        name,
		Description: desc,
		Params:      oneNumber("x"),
		Eval: func(it *Interp, c *Call) error {
			f, _ := it.Stack.Pop()
			v := UnsetVec3()
			set(&v, f.AsDouble())
			it.Stack.Push(Vec(v))
			return nil
		},
	}
}

func (it *Interp) installTypeWords() {
	it.runtime.Define(WordDefinition{
		Name:        "CONCAT",
		Description: "String concatenation ( a b -- ab )",
		Params: [][]Param{
			{strParam("s1"), {Name: "a2", Type: KindAny}},
			{{Name: "a1", Type: KindAny}, strParam("s2")},
		},
		Eval: func(it *Interp, c *Call) error {
			b, _ := it.Stack.Pop()
			a, _ := it.Stack.Pop()
			it.Stack.Push(Str(a.String() + b.String()))
			return nil
		},
	})

	toStr := WordDefinition{
		Name:        "->STR",
		Description: "Render any value as a string ( a -- str )",
		Params:      anyParams("a"),
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			it.Stack.Push(Str(v.String()))
			return nil
		},
	}
	it.alias(toStr, "->STRING")

	it.runtime.Define(WordDefinition{
		Name:        "STR->",
		Description: "Parse a string into the value it spells ( str -- a )",
		Params:      [][]Param{{strParam("s")}},
		Eval: func(it *Interp, c *Call) error {
			s, _ := it.Stack.Pop()
			v, err := parseString(s.Str())
			if err != nil {
				return err
			}
			it.Stack.Push(v)
			return nil
		},
	})

	it.runtime.Define(WordDefinition{
		Name:        "->INT",
		Description: "Convert to integer, truncating ( a -- n )",
		Params: [][]Param{
			{numParam("x")},
			{strParam("s")},
			{{Name: "b", Type: KindBoolean}},
		},
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			switch v.Kind() {
			case KindString:
				i, err := strconv.ParseInt(v.Str(), 0, 64)
				if err != nil {
					return evalErrorf("->INT: cannot parse '%s'", v.Str())
				}
				it.Stack.Push(Int(i))
			case KindBoolean:
				if v.Bool() {
					it.Stack.Push(Int(1))
				} else {
					it.Stack.Push(Int(0))
				}
			default:
				it.Stack.Push(Int(v.AsInteger()))
			}
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "->FLOAT",
		Description: "Convert to double ( a -- x )",
		Params: [][]Param{
			{numParam("x")},
			{strParam("s")},
		},
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			if v.Kind() == KindString {
				f, err := strconv.ParseFloat(v.Str(), 64)
				if err != nil {
					return evalErrorf("->FLOAT: cannot parse '%s'", v.Str())
				}
				it.Stack.Push(Dbl(f))
				return nil
			}
			it.Stack.Push(Dbl(v.AsDouble()))
			return nil
		},
	})

	it.runtime.Define(WordDefinition{
		Name:        "->VEC3",
		Description: "Build a vector from three numbers ( x y z -- v )",
		Params:      [][]Param{{numParam("x"), numParam("y"), numParam("z")}},
		Eval: func(it *Interp, c *Call) error {
			z, _ := it.Stack.Pop()
			y, _ := it.Stack.Pop()
			x, _ := it.Stack.Pop()
			it.Stack.Push(Vec(Vec3{X: x.AsDouble(), Y: y.AsDouble(), Z: z.AsDouble()}))
			return nil
		},
	})

	explode := WordDefinition{
		Name:        "VEC3->",
		Description: "Split a vector into its components ( v -- x y z )",
		Params:      [][]Param{{vecParam("v")}},
		Eval: func(it *Interp, c *Call) error {
			v, _ := it.Stack.Pop()
			it.Stack.Push(Dbl(v.Vec().X))
			it.Stack.Push(Dbl(v.Vec().Y))
			it.Stack.Push(Dbl(v.Vec().Z))
			return nil
		},
	}
	it.alias(explode, "{}->")

	it.alias(axisSetter("->{X}", "Build a vector with only X set ( x -- v )",
		func(v *Vec3, f float64) { v.X = f }), "->VEC3x")
	it.alias(axisSetter("->{Y}", "Build a vector with only Y set ( y -- v )",
		func(v *Vec3, f float64) { v.Y = f }), "->VEC3y")
	it.alias(axisSetter("->{Z}", "Build a vector with only Z set ( z -- v )",
		func(v *Vec3, f float64) { v.Z = f }), "->VEC3z")

	it.runtime.Define(WordDefinition{
		Name:        "STO",
		Description: "Store a number under a name ( val name -- )",
		Params:      [][]Param{{numParam("val"), strParam("name")}},
		Eval: func(it *Interp, c *Call) error {
			name, _ := it.Stack.Pop()
			val, _ := it.Stack.Pop()
			it.vars[name.Str()] = val
			return nil
		},
	})
	it.runtime.Define(WordDefinition{
		Name:        "RCL",
		Description: "Recall a stored value ( name -- val )",
		Params:      [][]Param{{strParam("name")}},
		Eval: func(it *Interp, c *Call) error {
			name, _ := it.Stack.Pop()
			val, ok := it.vars[name.Str()]
			if !ok {
				return evalErrorf("RCL: no variable '%s'", name.Str())
			}
			it.Stack.Push(val)
			return nil
		},
	})

	it.runtime.Define(WordDefinition{
		Name:        "EVAL",
		Description: "Evaluate an infix expression over the stored variables ( expr -- result )",
		Params:      [][]Param{{strParam("expr")}},
		Eval:        evalExpression,
	})
}

func parseString(s string) (Value, error) {
	switch s {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return Int(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Dbl(f), nil
	}
	return Value{}, evalErrorf("STR->: cannot parse '%s'", s)
}

func evalExpression(it *Interp, c *Call) error {
	src, _ := it.Stack.Pop()
	env := make(map[string]interface{}, len(it.vars)+2)
	for name, val := range it.vars {
		switch val.Kind() {
		case KindInteger:
			env[name] = val.Int()
		case KindDouble:
			env[name] = val.Float()
		case KindBoolean:
			env[name] = val.Bool()
		case KindString:
			env[name] = val.Str()
		case KindVec3:
			env[name] = val.Vec()
		}
	}
	env["pi"] = math.Pi
	env["e"] = math.E

	res, err := expr.Eval(src.Str(), env)
	if err != nil {
		return evalErrorf("EVAL: %v", err)
	}
	switch r := res.(type) {
	case int:
		it.Stack.Push(Int(int64(r)))
	case int64:
		it.Stack.Push(Int(r))
	case float64:
		it.Stack.Push(Dbl(r))
	case bool:
		it.Stack.Push(Bool(r))
	case string:
		it.Stack.Push(Str(r))
	case Vec3:
		it.Stack.Push(Vec(r))
	default:
		return evalErrorf("EVAL: unsupported result type %T", res)
	}
	return nil
}
