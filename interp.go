package rpn

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/qmill/rpn/internal/flushio"
)

// Interp is one interpreter session: a value stack, the runtime and
// compile-time dictionaries, any definition currently being compiled, and
// the variables bound by STO. An Interp is not safe for concurrent use.
type Interp struct {
	// Stack is the live value stack; hosts may inspect and manipulate it
	// directly between Parse calls.
	Stack Stack

	runtime     Dictionary
	compiletime Dictionary

	compiling bool
	newWord   string
	newBody   []string

	vars  map[string]Value
	loops []int64

	status string
	out    flushio.WriteFlusher
	logfn  func(mess string, args ...interface{})
	rand   *rand.Rand
}

func (it *Interp) init() {
	it.vars = make(map[string]Value)
	it.rand = rand.New(rand.NewSource(time.Now().UnixNano()))

	it.runtime.Define(WordDefinition{
		Name:        ":",
		Description: "Begin a new word definition ( -- )",
		Eval:        beginDefinition,
	})
	it.runtime.Define(WordDefinition{
		Name:        "(",
		Description: "Comment; skips input through the next ')' ( -- )",
		Eval:        scanComment,
	})
	it.runtime.Define(WordDefinition{
		Name:        `."`,
		Description: `String literal; pushes input through the next '"' ( -- str )`,
		Eval:        scanStringLiteral,
	})
	it.compiletime.Define(WordDefinition{
		Name:        ";",
		Description: "End the word definition being compiled ( -- )",
		Eval:        endDefinition,
	})
	it.compiletime.Define(WordDefinition{
		Name:        "(",
		Description: "Comment; skips input through the next ')' ( -- )",
		Eval:        scanComment,
	})

	it.installStackWords()
	it.installMathWords()
	it.installLogicWords()
	it.installTypeWords()
	it.installControlWords()
}

// Status returns the outcome of the most recent Parse: "ok", or the
// message of the error it returned.
func (it *Interp) Status() string { return it.status }

// WordExists reports whether name is defined in the runtime dictionary.
func (it *Interp) WordExists(name string) bool { return it.runtime.Exists(name) }

// AddDefinition installs (or replaces) a word in the runtime dictionary.
// The definition's Context is handed back verbatim on every call, which is
// how hosts smuggle their own state into native bodies.
func (it *Interp) AddDefinition(def WordDefinition) {
	it.runtime.Define(def)
}

// Reset abandons any definition left open by an earlier line and clears
// the status. The stack and dictionaries are untouched.
func (it *Interp) Reset() {
	it.compiling = false
	it.newWord, it.newBody = "", nil
	it.status = ""
}

func (it *Interp) logf(mess string, args ...interface{}) {
	if it.logfn != nil {
		it.logfn(mess, args...)
	}
}

func splitWord(line string) (word, rest string) {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i], line[i+1:]
	}
	return line, ""
}

func (it *Interp) parseLine(line string) error {
	rest := line
	for rest != "" {
		var word string
		word, rest = splitWord(rest)
		if word == "" {
			continue
		}
		if err := it.eval(word, &rest); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) eval(word string, rest *string) error {
	if it.compiling {
		return it.compileEval(word, rest)
	}
	return it.runtimeEval(word, rest)
}

func (it *Interp) runtimeEval(word string, rest *string) error {
	if leadsNumeric(word) {
		v, err := parseLiteral(word)
		if err != nil {
			return err
		}
		it.Stack.Push(v)
		return nil
	}

	w := it.runtime.Lookup(word)
	if w == nil {
		return evalErrorf("%s: word not found", word)
	}
	if _, ok := selectSignature(w.Params, &it.Stack); !ok {
		it.logf("no signature of %q matches the stack; expected %s", word, describeParams(w.Params))
		return paramErrorf("%s: type error", word)
	}
	return it.invoke(w, word, rest)
}

func (it *Interp) compileEval(word string, rest *string) error {
	if it.newWord == "" {
		it.newWord = word
		it.logf("compiling %q", word)
		return nil
	}
	if cw := it.compiletime.Lookup(word); cw != nil {
		return it.invoke(cw, word, rest)
	}
	if word == `."` {
		// Record the literal alongside the word so replay can rescan it.
		text, ok := (&Call{rest: rest}).ScanTo('"')
		if !ok {
			return parseErrorf(`parse error in string literal: terminating '"' not found`)
		}
		it.newBody = append(it.newBody, word, text+`"`)
		return nil
	}
	if leadsNumeric(word) || it.runtime.Exists(word) {
		it.newBody = append(it.newBody, word)
		return nil
	}
	return evalErrorf("unrecognized word at compile time: '%s'", word)
}

func (it *Interp) invoke(w *WordDefinition, word string, rest *string) error {
	it.logf("eval %s", word)
	if w.Eval == nil {
		return it.replay(w)
	}
	err := w.Eval(it, &Call{Word: word, Context: w.Context, rest: rest})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnderflow):
		return paramErrorf("%s: stack underflow", word)
	case classified(err):
		return err
	}
	return wordError{class: ErrEval, mess: word + ": " + err.Error(), cause: err}
}

// replay runs a user definition by re-evaluating its recorded tokens as a
// single line, so FOR loops and comments captured in the body work as
// they did when typed.
func (it *Interp) replay(w *WordDefinition) error {
	return it.parseLine(strings.Join(w.Body, " "))
}

// leadsNumeric reports whether a token is a numeric literal: the original
// language decides on the first byte alone, so "1x" is a malformed
// literal rather than a word.
func leadsNumeric(word string) bool {
	return word[0] >= '0' && word[0] <= '9'
}

func parseLiteral(word string) (Value, error) {
	// A '.' anywhere selects a double; everything else is an integer.
	if strings.Contains(word, ".") {
		f, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return Value{}, parseErrorf("%s: bad numeric literal", word)
		}
		return Dbl(f), nil
	}
	// Base 0 admits hex (0x...) and octal (0...) spellings.
	i, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		return Value{}, parseErrorf("%s: bad numeric literal", word)
	}
	return Int(i), nil
}

func beginDefinition(it *Interp, c *Call) error {
	it.compiling = true
	it.newWord, it.newBody = "", nil
	return nil
}

func endDefinition(it *Interp, c *Call) error {
	it.runtime.Define(WordDefinition{
		Name:        it.newWord,
		Description: "user " + it.newWord,
		Body:        it.newBody,
	})
	it.compiling = false
	it.newWord, it.newBody = "", nil
	return nil
}

func scanComment(it *Interp, c *Call) error {
	if _, ok := c.ScanTo(')'); !ok {
		return parseErrorf("parse error in comment: terminating ')' not found")
	}
	return nil
}

func scanStringLiteral(it *Interp, c *Call) error {
	text, ok := c.ScanTo('"')
	if !ok {
		return parseErrorf(`parse error in string literal: terminating '"' not found`)
	}
	it.Stack.Push(Str(text))
	return nil
}
