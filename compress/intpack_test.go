package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackInt32RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 1000, -1000, 2147483647, -2147483648, 5, 5, 5}

	packed := PackInt32(values)
	unpacked, err := UnpackInt32(packed, len(values))
	require.NoError(t, err)
	require.Equal(t, values, unpacked)
}

func TestPackUnpackInt32Empty(t *testing.T) {
	packed := PackInt32(nil)
	unpacked, err := UnpackInt32(packed, 0)
	require.NoError(t, err)
	require.Empty(t, unpacked)
}

func TestUnpackInt32TruncatedStream(t *testing.T) {
	packed := PackInt32([]int32{1, 2, 3})
	_, err := UnpackInt32(packed[:1], 3)
	require.Error(t, err)
}
