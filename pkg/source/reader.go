// Package source wraps a byte stream with single-character lookahead and
// line/column tracking, the leaf dependency every later stage builds on.
package source

import (
	"bufio"
	"io"

	"github.com/gaarutyunov/mlang/pkg/diag"
)

// ETX is the sentinel rune returned once the stream is exhausted.
const ETX rune = 0

// Reader exposes Peek/Advance over a byte stream decoded as UTF-8: each
// rune is one character, and Column and Offset advance by one per rune, so
// a multi-byte sequence is not split into single-byte characters. '\n'
// starts a new line; '\r' is ordinary whitespace and carries no special
// handling here.
type Reader struct {
	r       *bufio.Reader
	cur     rune
	atETX   bool
	pos     diag.Position
	started bool
}

// New wraps r for a file named filename (used only in diagnostics).
func New(r io.Reader, filename string) *Reader {
	sr := &Reader{
		r:   bufio.NewReader(r),
		pos: diag.StartPosition(filename),
	}
	return sr
}

// Peek returns the current character without consuming it. Before the
// first call to Advance it returns the stream's first character.
func (s *Reader) Peek() rune {
	if !s.started {
		s.started = true
		s.fill()
	}
	return s.cur
}

// Position returns the position of the character Peek would return.
func (s *Reader) Position() diag.Position {
	s.Peek() // ensure started, position is otherwise stable either way
	return s.pos
}

// Advance consumes the current character and returns it, updating the
// reader's position so that Position() again reports the new current
// character's location.
func (s *Reader) Advance() rune {
	c := s.Peek()
	if c == ETX {
		return ETX
	}
	if c == '\n' {
		s.pos.Line++
		s.pos.Column = 0
	} else {
		s.pos.Column++
	}
	s.pos.Offset++
	s.fill()
	return c
}

func (s *Reader) fill() {
	r, _, err := s.r.ReadRune()
	if err != nil {
		s.cur = ETX
		s.atETX = true
		return
	}
	s.cur = r
}
