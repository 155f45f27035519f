package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "+", Plus.String())
	require.Equal(t, "EOF", EOF.String())
	require.Equal(t, "let", Let.String())
}

func TestKindStringUnknown(t *testing.T) {
	require.Contains(t, Kind(9999).String(), "Kind(9999)")
}

func TestKeywordsLookupEveryName(t *testing.T) {
	for word, kind := range Keywords {
		got, ok := Keywords[word]
		require.True(t, ok)
		require.Equal(t, kind, got)
	}
}

func TestKeywordsDoesNotClaimIdentifiers(t *testing.T) {
	_, ok := Keywords["counter"]
	require.False(t, ok)
}

func TestTokenStringIncludesFields(t *testing.T) {
	tok := Token{Kind: Identifier, Lexeme: "x", Line: 3}
	require.Equal(t, `Token{IDENTIFIER "x" line 3}`, tok.String())
}
