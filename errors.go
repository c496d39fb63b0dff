package rpn

import (
	"errors"
	"fmt"
)

// The error taxonomy mirrors the interpreter's result classes: every error
// returned by Parse and ParseFile matches exactly one of ErrParse, ErrParam
// or ErrEval under errors.Is. ErrUnderflow is raised by Stack operations and
// surfaced through ErrParam at the word layer.
var (
	ErrParse     = errors.New("parse error")
	ErrParam     = errors.New("parameter error")
	ErrEval      = errors.New("evaluation error")
	ErrUnderflow = errors.New("stack underflow")
)

// wordError carries the user-visible status message while remaining
// comparable to its class sentinel through errors.Is. When it wraps an
// underlying failure (a native body's error, a recovered panic) that
// cause stays on the chain for errors.As.
type wordError struct {
	class error
	mess  string
	cause error
}

func (we wordError) Error() string { return we.mess }

func (we wordError) Unwrap() []error {
	if we.cause != nil {
		return []error{we.class, we.cause}
	}
	return []error{we.class}
}

func parseErrorf(mess string, args ...interface{}) error {
	return wordError{class: ErrParse, mess: fmt.Sprintf(mess, args...)}
}

func paramErrorf(mess string, args ...interface{}) error {
	return wordError{class: ErrParam, mess: fmt.Sprintf(mess, args...)}
}

func evalErrorf(mess string, args ...interface{}) error {
	return wordError{class: ErrEval, mess: fmt.Sprintf(mess, args...)}
}

// classified reports whether err already belongs to one of the taxonomy
// classes; anything else escaping a word body gets wrapped as ErrEval.
func classified(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrParam) || errors.Is(err, ErrEval)
}
