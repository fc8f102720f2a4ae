package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Stringy/wisdom/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, err := Tokenize(src, false)
	require.NoError(t, err)
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := Tokenize(`123 0x1A3 0b101 0o17 3.14`, false)
	require.NoError(t, err)
	require.Len(t, toks, 5)

	require.Equal(t, token.IntLit, toks[0].Kind)
	require.Equal(t, "123", toks[0].Literal)
	require.Equal(t, token.Dec, toks[0].Base)

	require.Equal(t, token.IntLit, toks[1].Kind)
	require.Equal(t, "1A3", toks[1].Literal)
	require.Equal(t, token.Hex, toks[1].Base)

	require.Equal(t, token.IntLit, toks[2].Kind)
	require.Equal(t, "101", toks[2].Literal)
	require.Equal(t, token.Bin, toks[2].Base)

	require.Equal(t, token.IntLit, toks[3].Kind)
	require.Equal(t, "17", toks[3].Literal)
	require.Equal(t, token.Oct, toks[3].Base)

	require.Equal(t, token.FloatLit, toks[4].Kind)
	require.Equal(t, "3.14", toks[4].Literal)
}

func TestTokenizeIdentifiersAndKeywords(t *testing.T) {
	// Keywords are not distinct token kinds; they tokenize as plain
	// identifiers and are matched by literal text in the parser.
	got := kinds(t, `let x_1 while`)
	require.Equal(t, []token.Kind{token.Identifier, token.Identifier, token.Identifier}, got)
}

func TestTokenizeString(t *testing.T) {
	toks, err := Tokenize(`"hello \"world\""`, false)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, token.StringLit, toks[0].Kind)
	require.Equal(t, `"hello \"world\""`, toks[0].Literal)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`"unterminated`, false)
	require.Error(t, err)
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	got := kinds(t, `== != <= >= && ||`)
	require.Equal(t, []token.Kind{
		token.EqEq, token.NotEq, token.LtEq, token.GtEq, token.AndAnd, token.OrOr,
	}, got)
}

func TestTokenizeSingleCharFallback(t *testing.T) {
	got := kinds(t, `= ! < > & |`)
	require.Equal(t, []token.Kind{
		token.Eq, token.Not, token.Lt, token.Gt, token.BinAnd, token.BinOr,
	}, got)
}

func TestTokenizePunctuation(t *testing.T) {
	got := kinds(t, `; : , ( ) { }`)
	require.Equal(t, []token.Kind{
		token.SemiColon, token.Colon, token.Comma,
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
	}, got)
}

func TestTokenizeWhitespaceElidedByDefault(t *testing.T) {
	got := kinds(t, "1   +\t2\n")
	require.Equal(t, []token.Kind{token.IntLit, token.Add, token.IntLit}, got)
}

func TestTokenizeEmitWhitespace(t *testing.T) {
	toks, err := Tokenize("1 2", true)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, token.Whitespace, toks[1].Kind)
}

func TestTokenizeInvalidChar(t *testing.T) {
	_, err := Tokenize("1 @ 2", false)
	require.Error(t, err)
}

func TestPositionMonotonic(t *testing.T) {
	toks, err := Tokenize("let a = 1;\nlet b = 2;", false)
	require.NoError(t, err)
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1].Position, toks[i].Position
		require.Falsef(t, cur.Less(prev), "token %d position %v precedes %v", i, cur, prev)
	}
}

func TestNewNumberBasePrefixStripped(t *testing.T) {
	toks, err := Tokenize("0x1A3", false)
	require.NoError(t, err)
	require.Equal(t, "1A3", toks[0].Literal)
}

func TestTokenStreamFirstSecondIdempotent(t *testing.T) {
	s := NewTokenStream("1 + 2")
	first1, ok, err := s.First()
	require.NoError(t, err)
	require.True(t, ok)
	first2, ok, err := s.First()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first1, first2)

	second, ok, err := s.Second()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, token.Add, second.Kind)

	consumed, ok, err := s.Consume()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first1, consumed)

	newFirst, ok, err := s.First()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, token.Add, newFirst.Kind)
}

func TestTokenStreamExpectIdent(t *testing.T) {
	s := NewTokenStream("fn foo")
	_, ok, err := s.ExpectIdent("fn")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = s.ExpectIdent("bar")
	require.NoError(t, err)
	require.False(t, ok)

	tok, ok, err := s.Expect(token.Identifier)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "foo", tok.Literal)
}

func TestTokenStreamIsEmpty(t *testing.T) {
	s := NewTokenStream("  \t\n  ")
	require.True(t, s.IsEmpty())
}
