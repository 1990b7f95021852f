package format

import "strconv"

// Rep is the 64-bit representation word that classifies a field's value
// locus (inline / out-of-line / array / compressed) and carries either the
// value itself or a file offset to it.
//
// Bit layout:
//
//	bit 63        ARRAY
//	bit 62        INLINE
//	bit 61        COMPRESSED
//	bits 48-55    value-type tag
//	bits 0-47     payload
type Rep uint64

const (
	arrayBit      Rep = 1 << 63
	inlineBit     Rep = 1 << 62
	compressedBit Rep = 1 << 61

	// PayloadMask isolates the low 48 payload bits of a representation word.
	PayloadMask uint64 = (1 << 48) - 1

	typeShift = 48
)

// Decoded is the unpacked form of a Rep.
type Decoded struct {
	Type       ValueType
	Array      bool
	Inline     bool
	Compressed bool
	Payload    uint64
}

// EncodeRep packs a representation word from its constituent fields.
// payload must fit in 48 bits; callers that hold a signed or wider value
// are responsible for masking it first (e.g. sign-extension into 48 bits
// for inline scalar ints).
func EncodeRep(t ValueType, array, inline, compressed bool, payload uint64) Rep {
	rep := Rep(uint64(t)<<typeShift) | Rep(payload&PayloadMask)
	if array {
		rep |= arrayBit
	}
	if inline {
		rep |= inlineBit
	}
	if compressed {
		rep |= compressedBit
	}

	return rep
}

// Decode unpacks a representation word. It returns an error if the type tag
// does not fall within the enumerated ValueType range.
func (r Rep) Decode() (Decoded, error) {
	t := ValueType(uint64(r) >> typeShift & 0xFF)
	if !t.Valid() {
		return Decoded{}, ErrUnknownValueType(t)
	}

	return Decoded{
		Type:       t,
		Array:      r&arrayBit != 0,
		Inline:     r&inlineBit != 0,
		Compressed: r&compressedBit != 0,
		Payload:    uint64(r) & PayloadMask,
	}, nil
}

// unknownValueTypeError is a distinct type so format stays free of the
// errs package (which itself has no reason to depend on format); crate
// wraps it with errs.ErrMalformedRepresentation at the call site.
type unknownValueTypeError struct {
	tag ValueType
}

func (e unknownValueTypeError) Error() string {
	return "format: representation word has unknown value-type tag " + strconv.Itoa(int(e.tag))
}

// ErrUnknownValueType builds the error returned when decoding a
// representation word whose type tag is outside the enumerated range.
func ErrUnknownValueType(t ValueType) error {
	return unknownValueTypeError{tag: t}
}
