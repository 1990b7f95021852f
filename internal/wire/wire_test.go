package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadUintRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint(&buf, 0x1234, 4))

	got, err := ReadUint(bytes.NewReader(buf.Bytes()), 4)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1234), got)
}

func TestWriteReadIntSignExtends(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt(&buf, -5, 4))

	got, err := ReadInt(bytes.NewReader(buf.Bytes()), 4)
	require.NoError(t, err)
	require.EqualValues(t, -5, got)
}

func TestReadIntSignExtendsNarrowWidth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt(&buf, -1, 1))

	got, err := ReadInt(bytes.NewReader(buf.Bytes()), 1)
	require.NoError(t, err)
	require.EqualValues(t, -1, got)
}

func TestWriteReadFloat32RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFloat32(&buf, 3.5))

	got, err := ReadFloat32(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, float32(3.5), got)
}

func TestWriteReadFloat64RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFloat64(&buf, 2.25))

	got, err := ReadFloat64(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 2.25, got)
}

func TestReadUintShortReadErrors(t *testing.T) {
	_, err := ReadUint(bytes.NewReader([]byte{1, 2}), 4)
	require.Error(t, err)
}
