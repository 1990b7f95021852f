// Package compress wraps the two byte-in/byte-out compression primitives
// the crate format depends on: the generic LZ4 block codec and the
// USD-specific 32-bit integer delta/varint codec. Both are treated as pure
// functions over byte slices; neither knows anything about tokens, fields,
// or specs.
package compress

// Compressor compresses a byte buffer and returns the compressed result.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte buffer and returns the original bytes.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}
