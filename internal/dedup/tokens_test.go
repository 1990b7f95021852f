package dedup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokensInternDeduplicates(t *testing.T) {
	toks := NewTokens()

	a := toks.Intern("foo")
	b := toks.Intern("bar")
	c := toks.Intern("foo")

	require.Equal(t, a, c)
	require.NotEqual(t, a, b)
	require.Equal(t, []string{"foo", "bar"}, toks.List())
	require.Equal(t, 2, toks.Len())
}

func TestTokensAtToleratesNegativeIndex(t *testing.T) {
	toks := NewTokens()
	toks.Intern("a")
	toks.Intern("b")

	require.Equal(t, "b", toks.At(1))
	require.Equal(t, "b", toks.At(-1))
	require.Equal(t, "", toks.At(5))
}

func TestTokensSetList(t *testing.T) {
	toks := NewTokens()
	toks.SetList([]string{"x", "y", "z"})

	require.Equal(t, int32(1), toks.Intern("y"))
	require.Equal(t, 3, toks.Len())
}
