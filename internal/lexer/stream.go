package lexer

import "github.com/Stringy/wisdom/internal/token"

// TokenStream is a random-access, whitespace-suppressing view over a
// Lexer. It buffers at most two lookahead tokens so First/Second are
// idempotent until Consume is called, without materializing the whole
// token sequence up front.
type TokenStream struct {
	lex  *Lexer
	buf  []token.Token
	end  bool // true once the underlying lexer is exhausted
	last token.Position
}

// NewTokenStream constructs a whitespace-suppressing stream over src.
func NewTokenStream(src string) *TokenStream {
	return &TokenStream{lex: New(src, false), last: token.DefaultPosition}
}

// fill ensures at least n tokens are buffered, or the stream is at end.
func (s *TokenStream) fill(n int) error {
	for len(s.buf) < n && !s.end {
		tok, ok, err := s.lex.Next()
		if err != nil {
			return err
		}
		if !ok {
			s.end = true
			break
		}
		s.buf = append(s.buf, tok)
	}
	return nil
}

// First returns the first unconsumed token without consuming it.
func (s *TokenStream) First() (token.Token, bool, error) {
	if err := s.fill(1); err != nil {
		return token.Token{}, false, err
	}
	if len(s.buf) == 0 {
		return token.Token{}, false, nil
	}
	return s.buf[0], true, nil
}

// Second returns the second unconsumed token without consuming it.
func (s *TokenStream) Second() (token.Token, bool, error) {
	if err := s.fill(2); err != nil {
		return token.Token{}, false, err
	}
	if len(s.buf) < 2 {
		return token.Token{}, false, nil
	}
	return s.buf[1], true, nil
}

// Peek is an alias for First: a non-consuming lookahead entry point
// under the name callers more commonly expect.
func (s *TokenStream) Peek() (token.Token, bool, error) {
	return s.First()
}

// Consume advances past and returns the first unconsumed token.
func (s *TokenStream) Consume() (token.Token, bool, error) {
	tok, ok, err := s.First()
	if err != nil || !ok {
		return tok, ok, err
	}
	s.buf = s.buf[1:]
	s.last = tok.Position
	return tok, true, nil
}

// Expect consumes the first token if it has the given kind.
func (s *TokenStream) Expect(kind token.Kind) (token.Token, bool, error) {
	tok, ok, err := s.First()
	if err != nil || !ok || tok.Kind != kind {
		return token.Token{}, false, err
	}
	_, _, err = s.Consume()
	return tok, true, err
}

// ExpectAny consumes the first token if its kind is in kinds.
func (s *TokenStream) ExpectAny(kinds ...token.Kind) (token.Token, bool, error) {
	tok, ok, err := s.First()
	if err != nil || !ok {
		return token.Token{}, false, err
	}
	for _, k := range kinds {
		if tok.Kind == k {
			_, _, err = s.Consume()
			return tok, true, err
		}
	}
	return token.Token{}, false, nil
}

// ExpectFn consumes the first token if pred reports true for it.
func (s *TokenStream) ExpectFn(pred func(token.Token) bool) (token.Token, bool, error) {
	tok, ok, err := s.First()
	if err != nil || !ok || !pred(tok) {
		return token.Token{}, false, err
	}
	_, _, err = s.Consume()
	return tok, true, err
}

// ExpectIdent consumes the first token if it is an identifier with the
// given literal text (used to match keywords, which are not distinct
// token kinds).
func (s *TokenStream) ExpectIdent(literal string) (token.Token, bool, error) {
	return s.ExpectFn(func(t token.Token) bool {
		return t.Kind == token.Identifier && t.Literal == literal
	})
}

// IsEmpty reports whether the stream has no more tokens.
func (s *TokenStream) IsEmpty() bool {
	if err := s.fill(1); err != nil {
		// Surfacing the tokenizer error is the caller's job via First();
		// from IsEmpty's boolean-only vantage point a broken stream is
		// not "empty".
		return false
	}
	return len(s.buf) == 0
}

// Position returns the position of the next unconsumed token, or the
// start position of the last consumed token if the stream is empty.
func (s *TokenStream) Position() token.Position {
	if tok, ok, err := s.First(); err == nil && ok {
		return tok.Position
	}
	return s.last
}
