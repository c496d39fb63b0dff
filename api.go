package rpn

import (
	"fmt"
	"io"
	"os"

	"github.com/qmill/rpn/internal/fileinput"
	"github.com/qmill/rpn/internal/panicerr"
)

// New creates an interpreter with the full native dictionary installed.
func New(opts ...Option) *Interp {
	var it Interp
	defaultOptions.apply(&it)
	Options(opts...).apply(&it)
	it.init()
	return &it
}

// Parse evaluates one line of input. It returns nil when every word on
// the line evaluated cleanly; otherwise the line stops at the failing
// word and the error matches ErrParse, ErrParam or ErrEval under
// errors.Is. Panics raised by native word bodies are recovered and
// surfaced as evaluation errors, so a faulty extension word cannot take
// the session down.
func (it *Interp) Parse(line string) error {
	err := panicerr.Guard("parse", func() error {
		return it.parseLine(line)
	})
	if err != nil && !classified(err) {
		err = wordError{class: ErrEval, mess: err.Error(), cause: err}
	}
	it.out.Flush()
	if err != nil {
		it.status = err.Error()
		return err
	}
	it.status = "ok"
	return nil
}

// ParseFile evaluates a script line by line, stopping at the first
// failing line. The returned error is annotated with the file name and
// the 0-based line number while still matching the failing class under
// errors.Is.
func (it *Interp) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return evalErrorf("%v", err)
	}
	defer f.Close()
	sc := fileinput.NewScanner(f)
	for sc.Next() {
		if err := it.Parse(sc.Text()); err != nil {
			return fmt.Errorf("%v: %w", sc.Loc(), err)
		}
	}
	if err := sc.Err(); err != nil {
		return evalErrorf("%v: %v", sc.Loc(), err)
	}
	return nil
}

func WithOutput(w io.Writer) Option { return withOutput(w) }

func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }
