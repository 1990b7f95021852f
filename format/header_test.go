package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayCountWidth(t *testing.T) {
	require.Equal(t, 4, ArrayCountWidth(0))
	require.Equal(t, 4, ArrayCountWidth(6))
	require.Equal(t, 8, ArrayCountWidth(7))
	require.Equal(t, 8, ArrayCountWidth(8))
}

func TestSectionOrderMatchesNames(t *testing.T) {
	require.Equal(t, [6]string{
		SectionTokens, SectionStrings, SectionFields,
		SectionFieldSets, SectionPaths, SectionSpecs,
	}, SectionOrder)
}
