package crate

import (
	"fmt"
	"io"

	"github.com/arloliu/usdcrate/compress"
	"github.com/arloliu/usdcrate/errs"
	"github.com/arloliu/usdcrate/internal/wire"
)

// lz4 is the single LZ4 codec instance every section and compressed-i32
// stream in a crate file uses; it holds no state of its own so sharing it
// is safe.
var lz4 = compress.NewLZ4Codec()

// writeCompressedI32 writes the "compressed-i32" wire primitive (spec.md
// §6): lz4-size:u64 | lz4(usd-int32-pack(values)). It backs every
// section's index/offset streams (FIELDS token ids, FIELDSETS, PATHS,
// SPECS) and the in-field int-array encoder's compressed path.
func writeCompressedI32(w io.Writer, values []int32) error {
	buf, err := lz4.Compress(compress.PackInt32(values))
	if err != nil {
		return err
	}
	if err := wire.WriteUint(w, uint64(len(buf)), 8); err != nil {
		return err
	}
	_, err = w.Write(buf)

	return err
}

// readCompressedI32 reads numValues int32s out of the "compressed-i32"
// wire primitive.
func readCompressedI32(r io.Reader, numValues int) ([]int32, error) {
	size, err := wire.ReadUint(r, 8)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrShortRead, err)
	}
	plain, err := lz4.Decompress(buf)
	if err != nil {
		return nil, err
	}

	return compress.UnpackInt32(plain, numValues)
}
