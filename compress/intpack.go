package compress

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/usdcrate/errs"
)

// PackInt32 implements the USD-specific 32-bit integer compression
// primitive the crate format calls "usdInt32Compress": each value is
// delta-encoded against its predecessor (the first value deltas against
// zero), the delta is zigzag-mapped onto an unsigned integer, and the
// result is written as a ULEB128 varint. The scheme favours runs of
// small, slowly-changing integers, which is the common case for crate
// path/fieldset/spec index streams.
//
// This is a standalone, vendor-specific scheme with no third-party
// implementation in the ecosystem (see DESIGN.md); it is implemented
// directly on the standard library.
func PackInt32(values []int32) []byte {
	out := make([]byte, 0, len(values)*2)
	var prev int32
	var buf [binary.MaxVarintLen64]byte
	for _, v := range values {
		delta := int64(v) - int64(prev)
		prev = v
		n := binary.PutUvarint(buf[:], zigzagEncode(delta))
		out = append(out, buf[:n]...)
	}

	return out
}

// UnpackInt32 inverts PackInt32, reading exactly count values out of data.
func UnpackInt32(data []byte, count int) ([]int32, error) {
	values := make([]int32, 0, count)
	var prev int64
	pos := 0
	for range count {
		u, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return nil, fmt.Errorf("%w: usd int32 unpack: truncated varint stream", errs.ErrCompressionFailure)
		}
		pos += n
		prev += zigzagDecode(u)
		values = append(values, int32(prev))
	}

	return values, nil
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
