// Package flushio wraps writers that need an explicit flush.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a writer whose output may be buffered until Flush.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher adapts w: writers that already flush (or need no
// flushing) pass through, anything else gets buffered.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case interface {
		io.Writer
		Flush()
	}:
		return flushWriter{impl}
	case interface{ Sync() error }:
		return syncWriter{w, impl}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

type flushWriter struct {
	wf interface {
		io.Writer
		Flush()
	}
}

func (fw flushWriter) Write(p []byte) (int, error) { return fw.wf.Write(p) }
func (fw flushWriter) Flush() error                { fw.wf.Flush(); return nil }

type syncWriter struct {
	io.Writer
	sync interface{ Sync() error }
}

func (sw syncWriter) Flush() error { return sw.sync.Sync() }

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }
