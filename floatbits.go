package crate

import "math"

// math32bits returns the IEEE-754 bit pattern of v as it would be laid out
// on the wire (little-endian callers still go through wire.WriteFloat32;
// this is for payloads that embed the bits directly in a representation
// word, per crate_file.py's struct.pack('<f', ...) + int.from_bytes dance).
func math32bits(v float32) uint32 {
	return math.Float32bits(v)
}
