package lexer

import "github.com/waleedyaseen/RuneScript-sub000/internal/token"

// Stream buffers tokens from a Lexer and allows lookahead at any offset.
// It is only ever advanced, never rewound.
type Stream struct {
	lx  *Lexer
	buf []token.Token
}

func NewStream(lx *Lexer) *Stream {
	return &Stream{lx: lx}
}

func (s *Stream) fill(n int) {
	for len(s.buf) <= n {
		if k := len(s.buf); k > 0 && s.buf[k-1].Kind == token.EOF {
			s.buf = append(s.buf, s.buf[k-1])
			continue
		}
		s.buf = append(s.buf, s.lx.Next())
	}
}

// Peek returns the token n positions ahead; Peek(0) is the next token.
func (s *Stream) Peek(n int) token.Token {
	s.fill(n)
	return s.buf[n]
}

// Next consumes and returns the next token. EOF repeats forever.
func (s *Stream) Next() token.Token {
	s.fill(0)
	tok := s.buf[0]
	if tok.Kind != token.EOF || len(s.buf) > 1 {
		s.buf = s.buf[1:]
	}
	return tok
}

// Kind is shorthand for Peek(n).Kind.
func (s *Stream) Kind(n int) token.Kind {
	return s.Peek(n).Kind
}
