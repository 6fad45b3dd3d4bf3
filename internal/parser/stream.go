package parser

import (
	"github.com/xmkbuild/xmk/internal/lexer"
	"github.com/xmkbuild/xmk/internal/token"
)

// stream wraps a lexer with one token of pushback, so a recipe that
// fails partway through can put back the token that broke it and let
// the outer SEARCHING loop re-examine it fresh (spec §4.2: "a token that
// fits no recipe aborts to SEARCHING").
type stream struct {
	lex      *lexer.Lexer
	buffered *token.Token
	onToken  func(token.Token)
}

func newStream(lex *lexer.Lexer) *stream {
	return &stream{lex: lex}
}

func (s *stream) raw() (token.Token, error) {
	if s.buffered != nil {
		t := *s.buffered
		s.buffered = nil
		return t, nil
	}
	t, err := s.lex.Next()
	if err == nil && s.onToken != nil {
		s.onToken(t)
	}
	return t, err
}

// Unread pushes t back so the next raw/Next/Peek call returns it again.
func (s *stream) Unread(t token.Token) {
	cp := t
	s.buffered = &cp
}

// Next returns the next non-Newline token: normal recipe-matching mode.
func (s *stream) Next() (token.Token, error) {
	for {
		t, err := s.raw()
		if err != nil {
			return token.Token{}, err
		}
		if t.Kind == token.Newline {
			continue
		}
		return t, nil
	}
}

// Peek returns the next non-Newline token without consuming it.
func (s *stream) Peek() (token.Token, error) {
	t, err := s.Next()
	if err != nil {
		return token.Token{}, err
	}
	s.Unread(t)
	return t, nil
}

// NextRaw returns the literal next token, including Newline: used only by
// the LIST accumulator, which is sensitive to line breaks.
func (s *stream) NextRaw() (token.Token, error) {
	return s.raw()
}

// Line reports the lexer's current line counter, for diagnostics that
// aren't anchored to a specific token (e.g. "missing build" at EOF).
func (s *stream) Line() int { return s.lex.Line() }
