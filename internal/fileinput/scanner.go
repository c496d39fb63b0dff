// Package fileinput provides named, line-numbered reading of script input.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line within an input stream. Lines are numbered from 0.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string {
	if loc.Name == "" {
		return fmt.Sprintf("<input>:%v", loc.Line)
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

// Scanner reads an input stream line by line, tracking the Location of
// the line most recently returned by Text.
type Scanner struct {
	sc  *bufio.Scanner
	loc Location
}

// NewScanner wraps r; if r has a Name method (os.File does) it names the
// reported locations.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		sc:  bufio.NewScanner(r),
		loc: Location{Name: nameOf(r), Line: -1},
	}
}

// Next advances to the next line, reporting false at end of input.
func (s *Scanner) Next() bool {
	if !s.sc.Scan() {
		return false
	}
	s.loc.Line++
	return true
}

func (s *Scanner) Text() string { return s.sc.Text() }

func (s *Scanner) Loc() Location { return s.loc }

func (s *Scanner) Err() error { return s.sc.Err() }

func nameOf(obj interface{}) string {
	if impl, ok := obj.(interface{ Name() string }); ok {
		return impl.Name()
	}
	return ""
}
