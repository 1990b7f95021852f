package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRepRoundTrip(t *testing.T) {
	rep := EncodeRep(Float, true, false, true, 0x112233)
	d, err := rep.Decode()
	require.NoError(t, err)
	require.Equal(t, Float, d.Type)
	require.True(t, d.Array)
	require.False(t, d.Inline)
	require.True(t, d.Compressed)
	require.Equal(t, uint64(0x112233), d.Payload)
}

func TestEncodeRepMasksPayloadTo48Bits(t *testing.T) {
	rep := EncodeRep(Int, false, true, false, ^uint64(0))
	d, err := rep.Decode()
	require.NoError(t, err)
	require.Equal(t, PayloadMask, d.Payload)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	rep := Rep(uint64(200) << 48)
	_, err := rep.Decode()
	require.Error(t, err)
}

func TestValueTypeString(t *testing.T) {
	require.Equal(t, "token", Token.String())
	require.Equal(t, "Unknown", ValueType(254).String())
}
