package rpn

import (
	"io"

	"github.com/qmill/rpn/internal/flushio"
)

type Option interface{ apply(it *Interp) }

// Options combines options into one; nil members are skipped.
func Options(opts ...Option) Option { return options(opts) }

type options []Option

func (opts options) apply(it *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(it)
		}
	}
}

var defaultOptions = options{
	withOutput(io.Discard),
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(it *Interp) {
	it.logfn = logfn
}

type outputOption struct{ io.Writer }

func withOutput(w io.Writer) outputOption { return outputOption{w} }

func (o outputOption) apply(it *Interp) {
	if it.out != nil {
		it.out.Flush()
	}
	it.out = flushio.NewWriteFlusher(o.Writer)
}
