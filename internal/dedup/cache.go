package dedup

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/usdcrate/format"
)

// cacheKey pairs a value's canonical fingerprint with its ValueType: the
// same bytes written as two different value types must not alias to the
// same offset (spec.md §3).
type cacheKey struct {
	fingerprint uint64
	valueType   format.ValueType
}

// Cache is the write-data cache: a map from (fingerprint(value), value
// type) to the file offset where that value was first written. Writing an
// identical payload a second time reuses the first blob's offset instead
// of emitting the bytes again.
type Cache struct {
	m map[cacheKey]int64
}

// NewCache creates an empty write-data cache.
func NewCache() *Cache {
	return &Cache{m: make(map[cacheKey]int64)}
}

// Lookup returns the offset a value with the given fingerprint and type
// was previously written at, if any.
func (c *Cache) Lookup(fingerprint uint64, vt format.ValueType) (int64, bool) {
	off, ok := c.m[cacheKey{fingerprint: fingerprint, valueType: vt}]

	return off, ok
}

// Store records that a value with the given fingerprint and type was
// written at offset.
func (c *Cache) Store(fingerprint uint64, vt format.ValueType, offset int64) {
	c.m[cacheKey{fingerprint: fingerprint, valueType: vt}] = offset
}

// Fingerprint hashes an already-canonicalised byte sequence with xxHash64.
// Callers canonicalise ordered sequences (e.g. int32/float32/float64
// slices) into their little-endian byte encoding before calling this,
// via the FingerprintXxx helpers below; an out-of-line scalar vector or
// matrix is fingerprinted as a one-element slice. Never compare cached
// values by identity.
func Fingerprint(canonical []byte) uint64 {
	return xxhash.Sum64(canonical)
}

// FingerprintInt32s canonicalises an int32 slice for fingerprinting.
func FingerprintInt32s(values []int32) uint64 {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}

	return Fingerprint(buf)
}

// FingerprintFloat32s canonicalises a float32 slice for fingerprinting.
func FingerprintFloat32s(values []float32) uint64 {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}

	return Fingerprint(buf)
}

// FingerprintFloat64s canonicalises a float64 slice for fingerprinting.
func FingerprintFloat64s(values []float64) uint64 {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}

	return Fingerprint(buf)
}

// FingerprintInt32Tokens canonicalises a token-index slice for
// fingerprinting (token vectors and token arrays hash the same way as
// plain int32 arrays; they are kept distinct by ValueType in the cache
// key).
func FingerprintInt32Tokens(indices []int32) uint64 {
	return FingerprintInt32s(indices)
}

// FingerprintVecsF canonicalises a slice of fixed-width float32 component
// tuples (vec2f/vec3f/vec4f arrays) for fingerprinting.
func FingerprintVecsF(values [][]float32) uint64 {
	var n int
	for _, v := range values {
		n += len(v)
	}
	buf := make([]byte, 0, 4*n)
	for _, v := range values {
		for _, c := range v {
			var tmp [4]byte
			binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(c))
			buf = append(buf, tmp[:]...)
		}
	}

	return Fingerprint(buf)
}

// FingerprintVecsD canonicalises a slice of fixed-width float64 component
// tuples (vec2d/vec3d/vec4d arrays, or matrix rows) for fingerprinting.
func FingerprintVecsD(values [][]float64) uint64 {
	var n int
	for _, v := range values {
		n += len(v)
	}
	buf := make([]byte, 0, 8*n)
	for _, v := range values {
		for _, c := range v {
			var tmp [8]byte
			binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(c))
			buf = append(buf, tmp[:]...)
		}
	}

	return Fingerprint(buf)
}
