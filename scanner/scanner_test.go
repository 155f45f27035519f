package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zimlit/mti/token"
)

func kinds(t *testing.T, source string) []token.Kind {
	t.Helper()
	s := New(source)
	var out []token.Kind
	for {
		tok := s.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestOperators(t *testing.T) {
	got := kinds(t, "==/=*+>-<!=<=>=!")
	want := []token.Kind{
		token.EqualEqual, token.Slash, token.Equal, token.Star,
		token.Plus, token.Greater, token.Minus, token.Less,
		token.BangEqual, token.LessEqual, token.GreaterEqual,
		token.Bang, token.EOF,
	}
	require.Equal(t, want, got)
}

func TestDoIsAKeywordNotAnIdentifier(t *testing.T) {
	got := kinds(t, "do end")
	require.Equal(t, []token.Kind{token.Do, token.End, token.EOF}, got)
}

func TestSlashIsNotConflatedWithStar(t *testing.T) {
	got := kinds(t, "6 / 2")
	require.Equal(t, []token.Kind{token.Number, token.Slash, token.Number, token.EOF}, got)
}

func TestLineComment(t *testing.T) {
	got := kinds(t, "1 // this is ignored\n2")
	require.Equal(t, []token.Kind{token.Number, token.Number, token.EOF}, got)
}

func TestStringLiteral(t *testing.T) {
	s := New(`"hello world"`)
	tok := s.Next()
	require.Equal(t, token.String, tok.Kind)
	require.Equal(t, `"hello world"`, tok.Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	s := New(`"oops`)
	tok := s.Next()
	require.Equal(t, token.Error, tok.Kind)
	require.Equal(t, "Unterminated string.", tok.Lexeme)
}

func TestNumberLiteralWithFraction(t *testing.T) {
	s := New("3.14")
	tok := s.Next()
	require.Equal(t, token.Number, tok.Kind)
	require.Equal(t, "3.14", tok.Lexeme)
}

func TestTrailingDotIsNotPartOfNumber(t *testing.T) {
	got := kinds(t, "3.")
	require.Equal(t, []token.Kind{token.Number, token.Dot, token.EOF}, got)
}

func TestReservedButUnimplementedKeywordsStillScan(t *testing.T) {
	got := kinds(t, "while class fn return super self")
	want := []token.Kind{
		token.While, token.Class, token.Fn, token.Return,
		token.Super, token.Self, token.EOF,
	}
	require.Equal(t, want, got)
}

func TestLineTrackingAcrossNewlines(t *testing.T) {
	s := New("1\n2\n3")
	require.Equal(t, 1, s.Next().Line)
	require.Equal(t, 2, s.Next().Line)
	require.Equal(t, 3, s.Next().Line)
}

func TestUnexpectedCharacter(t *testing.T) {
	s := New("@")
	tok := s.Next()
	require.Equal(t, token.Error, tok.Kind)
	require.Equal(t, "Unexpected character.", tok.Lexeme)
}

func TestKeepsReturningEOF(t *testing.T) {
	s := New("")
	require.Equal(t, token.EOF, s.Next().Kind)
	require.Equal(t, token.EOF, s.Next().Kind)
}
