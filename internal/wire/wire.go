// Package wire provides little-endian, fixed-width integer and IEEE-754
// read/write primitives over a seekable byte sink (spec.md §4.1). The
// crate format is always little-endian, so unlike the teacher's pluggable
// endian.EndianEngine this package has no byte-order parameter — it is a
// thin, allocation-free layer directly over encoding/binary.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/usdcrate/errs"
)

// Sink is the seekable read/write/seek surface the crate writer and reader
// operate on; *os.File satisfies it, as does any in-memory buffer that
// implements reading, writing and seeking.
type Sink interface {
	io.Reader
	io.Writer
	io.Seeker
}

// WriteUint writes value in size bytes (1..8), little-endian.
func WriteUint(w io.Writer, value uint64, size int) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	_, err := w.Write(buf[:size])

	return err
}

// WriteInt writes a signed value in size bytes (1..8), little-endian
// two's-complement.
func WriteInt(w io.Writer, value int64, size int) error {
	return WriteUint(w, uint64(value), size)
}

// WriteFloat32 writes an IEEE-754 single-precision float, little-endian.
func WriteFloat32(w io.Writer, value float32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(value))
	_, err := w.Write(buf[:])

	return err
}

// WriteFloat64 writes an IEEE-754 double-precision float, little-endian.
func WriteFloat64(w io.Writer, value float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(value))
	_, err := w.Write(buf[:])

	return err
}

// ReadUint reads an unsigned integer of size bytes (1..8), little-endian.
func ReadUint(r io.Reader, size int) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrShortRead, err)
	}

	var padded [8]byte
	copy(padded[:], buf[:size])

	return binary.LittleEndian.Uint64(padded[:]), nil
}

// ReadInt reads a signed integer of size bytes (1..8), little-endian,
// sign-extending from the size-byte two's-complement representation.
func ReadInt(r io.Reader, size int) (int64, error) {
	u, err := ReadUint(r, size)
	if err != nil {
		return 0, err
	}
	shift := uint(64 - size*8)

	return int64(u<<shift) >> shift, nil
}

// ReadFloat32 reads an IEEE-754 single-precision float, little-endian.
func ReadFloat32(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrShortRead, err)
	}

	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// ReadFloat64 reads an IEEE-754 double-precision float, little-endian.
func ReadFloat64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrShortRead, err)
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// SeekToAlignment advances w to the next multiple of size bytes by writing
// zero padding, given the sink's current offset. It is unused by the
// current encoder dispatch (no field layout in §4.4/§4.5 requires
// alignment) but is kept available, mirroring the teacher's own
// unused-but-present half-width vector support.
func SeekToAlignment(w Sink, size int64) error {
	pos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	rem := pos % size
	if rem == 0 {
		return nil
	}
	pad := make([]byte, size-rem)
	_, err = w.Write(pad)

	return err
}
