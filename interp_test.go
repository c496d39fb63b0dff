package rpn

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmill/rpn/internal/panicerr"
)

type rpnTest struct {
	name   string
	lines  []string
	out    *strings.Builder
	checks []func(t *testing.T, it *Interp, errs []error)
}

func parseTest(name string, lines ...string) rpnTest {
	return rpnTest{name: name, lines: lines, out: &strings.Builder{}}
}

func (tc rpnTest) check(fn func(t *testing.T, it *Interp, errs []error)) rpnTest {
	tc.checks = append(tc.checks, fn)
	return tc
}

func (tc rpnTest) expectOK() rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		for i, err := range errs {
			assert.NoError(t, err, "line %d", i)
		}
		assert.Equal(t, "ok", it.Status())
	})
}

func (tc rpnTest) expectError(class error, status string) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		err := errs[len(errs)-1]
		require.Error(t, err)
		assert.ErrorIs(t, err, class)
		assert.Equal(t, status, it.Status())
	})
}

func (tc rpnTest) expectDepth(n int) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		assert.Equal(t, n, it.Stack.Depth())
	})
}

func (tc rpnTest) expectInteger(pos int, want int64) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		got, err := it.Stack.PeekInteger(pos)
		require.NoError(t, err, "position %d", pos)
		assert.Equal(t, want, got, "position %d", pos)
	})
}

func (tc rpnTest) expectIntegers(topFirst ...int64) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		require.Equal(t, len(topFirst), it.Stack.Depth())
		for i, want := range topFirst {
			got, err := it.Stack.PeekInteger(i + 1)
			require.NoError(t, err, "position %d", i+1)
			assert.Equal(t, want, got, "position %d", i+1)
		}
	})
}

func (tc rpnTest) expectDouble(pos int, want float64) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		got, err := it.Stack.PeekDouble(pos)
		require.NoError(t, err, "position %d", pos)
		assert.InDelta(t, want, got, 1e-9, "position %d", pos)
	})
}

func (tc rpnTest) expectString(pos int, want string) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		got, err := it.Stack.PeekString(pos)
		require.NoError(t, err, "position %d", pos)
		assert.Equal(t, want, got, "position %d", pos)
	})
}

func (tc rpnTest) expectBoolean(pos int, want bool) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		got, err := it.Stack.PeekBoolean(pos)
		require.NoError(t, err, "position %d", pos)
		assert.Equal(t, want, got, "position %d", pos)
	})
}

func (tc rpnTest) expectKind(pos int, want Kind) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		v, err := it.Stack.Peek(pos)
		require.NoError(t, err, "position %d", pos)
		assert.Equal(t, want, v.Kind(), "position %d", pos)
	})
}

func (tc rpnTest) expectOutput(want string) rpnTest {
	return tc.check(func(t *testing.T, it *Interp, errs []error) {
		assert.Equal(t, want, tc.out.String())
	})
}

func (tc rpnTest) run(t *testing.T) {
	t.Run(tc.name, func(t *testing.T) {
		it := New(WithOutput(tc.out), WithLogf(t.Logf))
		errs := make([]error, len(tc.lines))
		for i, line := range tc.lines {
			errs[i] = it.Parse(line)
		}
		for _, check := range tc.checks {
			check(t, it, errs)
		}
	})
}

func TestLiterals(t *testing.T) {
	parseTest("integers", "123 9988").expectOK().expectIntegers(9988, 123).run(t)
	parseTest("hex", "0x1f 0xFF").expectOK().expectIntegers(255, 31).run(t)
	parseTest("doubles", "12.32 3.").expectOK().
		expectDepth(2).expectDouble(1, 3).expectDouble(2, 12.32).
		expectKind(1, KindDouble).run(t)
	parseTest("malformed literal", "1x2").
		expectError(ErrParse, "1x2: bad numeric literal").run(t)
	parseTest("exponent needs a dot", "1e5").
		expectError(ErrParse, "1e5: bad numeric literal").run(t)
	parseTest("dot with exponent is a double", "1.5e3").expectOK().
		expectKind(1, KindDouble).expectDouble(1, 1500).run(t)
	parseTest("word not found", "FROBNICATE").
		expectError(ErrEval, "FROBNICATE: word not found").run(t)
}

func TestStringLiterals(t *testing.T) {
	parseTest("simple", `." abc"`).expectOK().expectString(1, "abc").run(t)
	parseTest("spaces kept", `." a b c"`).expectOK().expectString(1, "a b c").run(t)
	parseTest("unterminated", `." abc`).
		expectError(ErrParse, `parse error in string literal: terminating '"' not found`).run(t)
}

func TestComments(t *testing.T) {
	parseTest("skipped", "1 ( this is ignored ) 2").expectOK().expectIntegers(2, 1).run(t)
	parseTest("unterminated", "1 ( runs off the end").
		expectError(ErrParse, "parse error in comment: terminating ')' not found").run(t)
}

func TestArithmetic(t *testing.T) {
	parseTest("integer add", "1 2 +").expectOK().expectIntegers(3).run(t)
	parseTest("mixed add widens", "1 2.5 +").expectOK().
		expectDepth(1).expectDouble(1, 3.5).expectKind(1, KindDouble).run(t)
	parseTest("subtract deeper minus top", "3 5 -").expectOK().expectIntegers(-2).run(t)
	parseTest("multiply", "6 7 *").expectOK().expectIntegers(42).run(t)
	parseTest("divide always double", "7 2 /").expectOK().
		expectKind(1, KindDouble).expectDouble(1, 3.5).run(t)
	parseTest("chained", "1 2 + 3 + 4 +").expectOK().expectIntegers(10).run(t)
}

func TestMathWords(t *testing.T) {
	parseTest("sq keeps integer", "7 SQ").expectOK().expectIntegers(49).run(t)
	parseTest("sqrt", "9 SQRT").expectOK().expectDouble(1, 3).run(t)
	parseTest("pow", "2 10 POW").expectOK().expectDouble(1, 1024).run(t)
	parseTest("inv", "4 INV").expectOK().expectDouble(1, 0.25).run(t)
	parseTest("hypot", "3 4 HYPOT").expectOK().expectDouble(1, 5).run(t)
	parseTest("abs integer", "0 7 - ABS").expectOK().expectIntegers(7).run(t)
	parseTest("chs", "5 CHS").expectOK().expectIntegers(-5).run(t)
	parseTest("neg complements integers", "5 NEG").expectOK().expectIntegers(^int64(5)).run(t)
	parseTest("neg negates doubles", "5. NEG").expectOK().expectDouble(1, -5).run(t)
	parseTest("floor pi", "k_PI FLOOR").expectOK().
		expectKind(1, KindDouble).expectDouble(1, 3).run(t)
	parseTest("ceil pi", "k_PI CEIL").expectOK().expectDouble(1, 4).run(t)
	parseTest("min keeps operand", "3 2 MIN").expectOK().expectIntegers(2).run(t)
	parseTest("max", "3 2 MAX").expectOK().expectIntegers(3).run(t)
	parseTest("min mixed", "1 0.5 MIN").expectOK().expectDouble(1, 0.5).run(t)
	parseTest("atan2", "1 1 ATAN2 4 * k_PI ==").expectOK().expectBoolean(1, true).run(t)
	parseTest("rand48 in range", "RAND48 DUP 0 >= SWAP 1 < AND").expectOK().
		expectBoolean(1, true).run(t)
	parseTest("type error carries word name", `." abc" INV`).
		expectError(ErrParam, "INV: type error").
		expectString(1, "abc").run(t)
}

func TestStackWords(t *testing.T) {
	parseTest("clear and depth", "1 2 3 CLEAR DEPTH").expectOK().expectIntegers(0).run(t)
	parseTest("depth pushes before", "7 8 DEPTH").expectOK().expectIntegers(2, 8, 7).run(t)
	parseTest("dup drop", "1 2 DUP DROP DROP").expectOK().expectIntegers(1).run(t)
	parseTest("swap", "1 2 SWAP").expectOK().expectIntegers(1, 2).run(t)
	parseTest("over", "1 2 OVER").expectOK().expectIntegers(1, 2, 1).run(t)

	parseTest("rollu bottom to top", "1 2 3 4 ROLLU").expectOK().
		expectIntegers(1, 4, 3, 2).run(t)
	parseTest("rolld top to bottom", "1 2 3 4 ROLLD").expectOK().
		expectIntegers(3, 2, 1, 4).run(t)
	parseTest("rollu rolld inverse", "1 2 3 4 ROLLU ROLLD").expectOK().
		expectIntegers(4, 3, 2, 1).run(t)
	parseTest("rotu rotates top three", "9 1 2 3 ROTU").expectOK().
		expectIntegers(1, 3, 2, 9).run(t)
	parseTest("rotd rotates top three", "9 1 2 3 ROTD").expectOK().
		expectIntegers(2, 1, 3, 9).run(t)

	parseTest("pick copies position n", "5 4 3 2 1 3 PICK").expectOK().
		expectIntegers(3, 1, 2, 3, 4, 5).run(t)
	parseTest("nipn removes position n", "5 4 3 2 1 3 NIPN").expectOK().
		expectIntegers(1, 2, 4, 5).run(t)
	parseTest("rollun lifts position n", "5 4 3 2 1 3 ROLLUN").expectOK().
		expectIntegers(3, 1, 2, 4, 5).run(t)
	parseTest("rolldn buries the top", "5 4 3 2 1 3 ROLLDN").expectOK().
		expectIntegers(2, 3, 1, 4, 5).run(t)
	parseTest("tuckn copies top to position n", "5 4 3 2 1 3 TUCKN").expectOK().
		expectIntegers(1, 2, 1, 3, 4, 5).run(t)
	parseTest("tuckn deep grid", "10 9 8 7 6 5 4 3 2 1 5 TUCKN").expectOK().
		expectIntegers(1, 2, 3, 4, 1, 5, 6, 7, 8, 9, 10).run(t)
	parseTest("dupn copies block in order", "3 2 1 2 DUPN").expectOK().
		expectIntegers(1, 2, 1, 2, 3).run(t)
	parseTest("dropn", "5 4 3 2 1 3 DROPN").expectOK().expectIntegers(4, 5).run(t)
	parseTest("reverse", "1 2 3 4 REVERSE").expectOK().expectIntegers(1, 2, 3, 4).run(t)
	parseTest("reversen", "5 4 3 2 1 3 REVERSEN").expectOK().
		expectIntegers(3, 2, 1, 4, 5).run(t)
	parseTest("lowercase alias", "5 4 3 2 1 3 DROPn").expectOK().expectIntegers(4, 5).run(t)

	parseTest("pick underflow", "1 2 5 PICK").
		expectError(ErrParam, "PICK: stack underflow").run(t)
	parseTest("swap needs two", "1 SWAP").
		expectError(ErrParam, "SWAP: type error").run(t)
}

func TestLogicWords(t *testing.T) {
	parseTest("equal integers", "1 1 ==").expectOK().expectBoolean(1, true).run(t)
	parseTest("tags are strict", "1.0 1 ==").expectOK().expectBoolean(1, false).run(t)
	parseTest("not equal", "1 2 !=").expectOK().expectBoolean(1, true).run(t)
	parseTest("strings equal", `." abc" ." abc" ==`).expectOK().expectBoolean(1, true).run(t)
	parseTest("less", "1 2 <").expectOK().expectBoolean(1, true).run(t)
	parseTest("less equal", "2 2 <=").expectOK().expectBoolean(1, true).run(t)
	parseTest("greater mixed", "2.5 2 >").expectOK().expectBoolean(1, true).run(t)
	parseTest("string ordering", `." abc" ." abd" <`).expectOK().expectBoolean(1, true).run(t)
	parseTest("ordering type error", `." abc" 123 <`).
		expectError(ErrParam, "<: type error").run(t)
	parseTest("not", "1 2 < NOT").expectOK().expectBoolean(1, false).run(t)
	parseTest("logical and", "1 1 == 1 2 == AND").expectOK().expectBoolean(1, false).run(t)
	parseTest("logical or", "1 1 == 1 2 == OR").expectOK().expectBoolean(1, true).run(t)
	parseTest("logical xor", "1 1 == 1 2 == XOR").expectOK().expectBoolean(1, true).run(t)
	parseTest("bitwise and", "12 10 AND").expectOK().expectIntegers(8).run(t)
	parseTest("bitwise or", "12 10 OR").expectOK().expectIntegers(14).run(t)
	parseTest("bitwise xor", "12 10 XOR").expectOK().expectIntegers(6).run(t)
	parseTest("mixed bool int is a type error", "1 1 == 3 AND").
		expectError(ErrParam, "AND: type error").run(t)
	parseTest("ifte true", "1 1 == 10 20 IFTE").expectOK().expectIntegers(10).run(t)
	parseTest("ifte false", "1 2 == 10 20 IFTE").expectOK().expectIntegers(20).run(t)
}

func TestTypeWords(t *testing.T) {
	parseTest("concat string any", `." x=" 42 CONCAT`).expectOK().
		expectString(1, "x=42").run(t)
	parseTest("concat any string", `42 ." =x" CONCAT`).expectOK().
		expectString(1, "42=x").run(t)
	parseTest("to string", "42 ->STR").expectOK().expectString(1, "42").run(t)
	parseTest("string round trip", `." 42" STR->`).expectOK().expectIntegers(42).run(t)
	parseTest("str parses doubles", `." 2.5" STR->`).expectOK().expectDouble(1, 2.5).run(t)
	parseTest("str parses booleans", `." true" STR->`).expectOK().expectBoolean(1, true).run(t)
	parseTest("str parse failure", `." wat" STR->`).
		expectError(ErrEval, "STR->: cannot parse 'wat'").run(t)
	parseTest("to int truncates", "2.9 ->INT").expectOK().expectIntegers(2).run(t)
	parseTest("to float", "2 ->FLOAT").expectOK().
		expectKind(1, KindDouble).expectDouble(1, 2).run(t)

	parseTest("vec3 round trip", "1 2 3 ->VEC3 VEC3->").expectOK().
		expectDepth(3).
		expectDouble(1, 3).expectDouble(2, 2).expectDouble(3, 1).run(t)
	parseTest("partial vectors merge", "1 ->{X} 2 ->{Y} + 3 ->{Z} + VEC3->").expectOK().
		expectDouble(1, 3).expectDouble(2, 2).expectDouble(3, 1).run(t)
	parseTest("vector add", "1 2 3 ->VEC3 10 20 30 ->VEC3 + {}->").expectOK().
		expectDouble(1, 33).expectDouble(2, 22).expectDouble(3, 11).run(t)
	parseTest("vector magnitude", "3 4 0 ->VEC3 ABS").expectOK().expectDouble(1, 5).run(t)

	parseTest("sto rcl", `123 ." x" STO ." x" RCL`).expectOK().expectIntegers(123).run(t)
	parseTest("rcl unknown", `." nope" RCL`).
		expectError(ErrEval, "RCL: no variable 'nope'").run(t)
	parseTest("eval over variables", `2 ." a" STO 3 ." b" STO ." a * b + 1" EVAL`).
		expectOK().expectIntegers(7).run(t)
	parseTest("eval doubles", `." pi / 2" EVAL`).expectOK().expectDouble(1, 1.5707963267948966).run(t)
	parseTest("eval bad expression", `." * *" EVAL`).
		check(func(t *testing.T, it *Interp, errs []error) {
			assert.ErrorIs(t, errs[len(errs)-1], ErrEval)
		}).run(t)
}

func TestDefinitions(t *testing.T) {
	parseTest("define and call", ": SQLEN DUP * ; 5 SQLEN").expectOK().
		expectIntegers(25).run(t)
	parseTest("description", ": NOP ;").expectOK().
		check(func(t *testing.T, it *Interp, errs []error) {
			assert.True(t, it.WordExists("NOP"))
		}).run(t)
	parseTest("multi line definition",
		": AREA",
		"  ( r -- pi*r^2 )",
		"  SQ k_PI *",
		";",
		"2 AREA",
	).expectOK().expectDouble(1, 4*3.141592653589793).run(t)
	parseTest("redefinition wins", ": F 1 ; : F 2 ; F").expectOK().
		expectIntegers(2).run(t)
	parseTest("definitions can nest calls", ": TWICE DUP + ; : QUAD TWICE TWICE ; 3 QUAD").
		expectOK().expectIntegers(12).run(t)
	parseTest("string literals compile", `: GREET ." hello" ; GREET`).expectOK().
		expectString(1, "hello").run(t)
	parseTest("unknown word at compile time", ": BROKEN FROB ;").
		expectError(ErrEval, "unrecognized word at compile time: 'FROB'").run(t)
	parseTest("error keeps compiling", ": BROKEN FROB", "1 2", ";").
		expectDepth(0).
		check(func(t *testing.T, it *Interp, errs []error) {
			assert.Error(t, errs[0])
			// still compiling: the follow-up line was swallowed into the body
			assert.NoError(t, errs[2])
			assert.True(t, it.WordExists("BROKEN"))
		}).run(t)
}

func TestReset(t *testing.T) {
	out := &strings.Builder{}
	it := New(WithOutput(out))
	require.NoError(t, it.Parse(": DANGLING 1 2"))
	it.Reset()
	require.NoError(t, it.Parse("3 4"))
	assert.Equal(t, 2, it.Stack.Depth())
	assert.False(t, it.WordExists("DANGLING"))
}

func TestForNext(t *testing.T) {
	parseTest("loop pushes indices", "0 9 FOR i i NEXT DEPTH").expectOK().
		expectInteger(1, 20).run(t)
	parseTest("loop sums", `0 ." acc" STO 1 10 FOR ." acc" RCL i + ." acc" STO NEXT ." acc" RCL`).
		expectOK().expectIntegers(55).run(t)
	parseTest("loops nest", "1 2 FOR 1 2 FOR i NEXT NEXT").expectOK().
		expectIntegers(2, 1, 2, 1).run(t)
	parseTest("loop in definition", ": COUNT 1 3 FOR i NEXT ; COUNT").expectOK().
		expectIntegers(3, 2, 1).run(t)
	parseTest("bare next", "NEXT").
		expectError(ErrEval, "NEXT: no enclosing FOR").run(t)
	parseTest("bare index", "I").
		expectError(ErrEval, "I: no enclosing loop").run(t)
	parseTest("unterminated loop", "0 3 FOR i").
		expectError(ErrParse, "FOR: terminating NEXT not found").run(t)
}

func TestDotS(t *testing.T) {
	parseTest("dump format", "42 2.5 .S").expectOK().
		expectOutput("--                   2--\n" +
			"[02] {integer}: 42\n" +
			"[01] {double}: 2.500000\n" +
			"------------------------\n").run(t)
}

func TestWords(t *testing.T) {
	out := &strings.Builder{}
	it := New(WithOutput(out))
	require.NoError(t, it.Parse("WORDS"))
	listing := out.String()
	for _, name := range []string{"DUP", "SWAP", "HYPOT", "->VEC3", "IFTE"} {
		assert.Contains(t, listing, name)
	}
}

func TestStatus(t *testing.T) {
	it := New()
	require.NoError(t, it.Parse("1 2 +"))
	assert.Equal(t, "ok", it.Status())
	require.Error(t, it.Parse("BOGUS"))
	assert.Equal(t, "BOGUS: word not found", it.Status())
	require.NoError(t, it.Parse("DROP"))
	assert.Equal(t, "ok", it.Status())
}

func TestLineStopsAtFirstError(t *testing.T) {
	it := New()
	err := it.Parse("1 2 BOGUS 3 4")
	require.Error(t, err)
	// the words after the failure never ran
	assert.Equal(t, 2, it.Stack.Depth())
}

func TestExtensionWords(t *testing.T) {
	type host struct{ calls int }

	it := New()
	h := &host{}
	it.AddDefinition(WordDefinition{
		Name:        "TALLY",
		Description: "test host word",
		Context:     h,
		Eval: func(it *Interp, c *Call) error {
			c.Context.(*host).calls++
			it.Stack.Push(Int(int64(c.Context.(*host).calls)))
			return nil
		},
	})
	require.True(t, it.WordExists("TALLY"))
	require.NoError(t, it.Parse("TALLY TALLY TALLY"))
	assert.Equal(t, 3, h.calls)
	top, err := it.Stack.PeekInteger(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), top)
}

func TestPanickingWordIsRecovered(t *testing.T) {
	it := New()
	it.AddDefinition(WordDefinition{
		Name: "BOOM",
		Eval: func(it *Interp, c *Call) error {
			panic("kaboom")
		},
	})
	err := it.Parse("BOOM")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEval)
	assert.Contains(t, it.Status(), "kaboom")
	// the recovered panic stays on the chain, stack trace and all
	assert.True(t, panicerr.IsPanic(err))
	assert.NotEmpty(t, panicerr.PanicStack(err))
	// the session survives
	require.NoError(t, it.Parse("1 2 +"))
}

func TestErrorClasses(t *testing.T) {
	it := New()

	err := it.Parse("1 (")
	assert.True(t, errors.Is(err, ErrParse))
	assert.False(t, errors.Is(err, ErrParam))

	err = it.Parse(`." s" NOT`)
	assert.True(t, errors.Is(err, ErrParam))

	err = it.Parse("WAT")
	assert.True(t, errors.Is(err, ErrEval))
}
