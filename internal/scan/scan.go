// Package scan provides the character plumbing under the parser: a rune
// source with a one-rune lookahead buffer and row/column tracking.
package scan

import (
	"bufio"
	"io"
	"unicode"
)

// Scanner reads runes one at a time with a single rune of lookahead.
//
// Position convention: Row and Col locate the current lookahead rune, both
// 1-based. Consuming a newline increments Row and resets Col to 1; consuming
// anything else increments Col. The convention only affects diagnostic text,
// not parsing.
type Scanner struct {
	r   io.RuneReader
	cur rune
	eof bool
	err error // sticky I/O failure, never io.EOF
	row int
	col int
}

// New returns a Scanner over r positioned at the first rune.
func New(r io.Reader) *Scanner {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	s := &Scanner{r: rr, row: 1, col: 1}
	s.advance()
	return s
}

// Peek returns the current rune without consuming it. ok is false at end of
// input or after an I/O failure.
func (s *Scanner) Peek() (c rune, ok bool) {
	return s.cur, !s.eof
}

// Pop returns the current rune and advances to the next one.
func (s *Scanner) Pop() (c rune, ok bool) {
	if s.eof {
		return 0, false
	}
	c = s.cur
	if c == '\n' {
		s.row++
		s.col = 1
	} else {
		s.col++
	}
	s.advance()
	return c, true
}

// SkipSpace consumes runes while the lookahead is whitespace.
func (s *Scanner) SkipSpace() {
	for !s.eof && unicode.IsSpace(s.cur) {
		s.Pop()
	}
}

// Err returns the underlying I/O failure, if any. End of input is not an
// error; it is surfaced through the ok results of Peek and Pop.
func (s *Scanner) Err() error { return s.err }

// Row returns the 1-based row of the current rune.
func (s *Scanner) Row() int { return s.row }

// Col returns the 1-based column of the current rune.
func (s *Scanner) Col() int { return s.col }

func (s *Scanner) advance() {
	c, _, err := s.r.ReadRune()
	if err != nil {
		s.eof = true
		s.cur = 0
		if err != io.EOF {
			s.err = err
		}
		return
	}
	s.cur = c
}
