package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLZ4CodecRoundTrip(t *testing.T) {
	codec := NewLZ4Codec()
	data := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps over the lazy dog")

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.NotEmpty(t, compressed)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestLZ4CodecEmptyInput(t *testing.T) {
	codec := NewLZ4Codec()

	compressed, err := codec.Compress(nil)
	require.NoError(t, err)
	require.Nil(t, compressed)

	decompressed, err := codec.Decompress(nil)
	require.NoError(t, err)
	require.Nil(t, decompressed)
}
