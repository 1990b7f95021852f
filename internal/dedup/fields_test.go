package dedup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/usdcrate/format"
)

func TestFieldsAddDeduplicates(t *testing.T) {
	fields := NewFields()

	rep := format.EncodeRep(format.Int, false, true, false, 5)
	i1 := fields.Add(3, rep)
	i2 := fields.Add(3, rep)
	i3 := fields.Add(4, rep)

	require.Equal(t, i1, i2)
	require.NotEqual(t, i1, i3)
	require.Equal(t, 2, fields.Len())
	require.Equal(t, []int32{3, 4}, fields.Names())
	require.Equal(t, []format.Rep{rep, rep}, fields.Reps())
}
