package crate

import "github.com/arloliu/usdcrate/format"

// TimeSample is one (time, value) pair of a TimeSamples field track. Value
// must match the track's declared inner type: a scalar (string for token,
// int32 for int, float64 for float and double) or a fixed-length component
// slice ([]float64 for vec/quat, [][]float64 for a matrix row set).
type TimeSample struct {
	Time  float64
	Value any
}

// FieldValue is the closed tagged-union input to AddField. Callers build
// one with the constructor matching the value they have; AddField
// dispatches on Kind to the matching §4.4 encoder. The zero value is not
// valid input — always use a constructor.
type FieldValue struct {
	Kind format.ValueType

	str    string
	strArr []string

	i32    int32
	i32Arr []int32

	f32    float32
	f32Arr []float32

	f64    float64
	f64Arr []float64

	// vecD holds one vector's components for a scalar vec field; vecDArr
	// holds one component slice per vector for a vec array. Both are
	// always float64; the encoder narrows to the declared Kind's width.
	vecD    []float64
	vecDArr [][]float64

	// matD holds a matrix's rows for a scalar matrix field; matDArr holds
	// one set of rows per matrix for a matrix array.
	matD    [][]float64
	matDArr [][][]float64

	b         bool
	specifier format.SpecifierType

	innerType format.ValueType
	samples   []TimeSample
}

// TokenField encodes s as an inline scalar token.
func TokenField(s string) FieldValue { return FieldValue{Kind: format.Token, str: s} }

// TokenArrayField encodes tokens as an out-of-line token array.
func TokenArrayField(tokens []string) FieldValue {
	return FieldValue{Kind: format.Token, strArr: tokens}
}

// AssetField encodes s (an "@identifier@" asset path) as an inline scalar
// asset reference; every '@' character is stripped before interning.
func AssetField(s string) FieldValue { return FieldValue{Kind: format.Asset, str: s} }

// TokenVectorField encodes tokens as an out-of-line TokenVector.
func TokenVectorField(tokens []string) FieldValue {
	return FieldValue{Kind: format.TokenVector, strArr: tokens}
}

// PathListOpField encodes a single-entry "add" PathListOp referencing
// pathIndex.
func PathListOpField(pathIndex int32) FieldValue {
	return FieldValue{Kind: format.PathListOp, i32: pathIndex}
}

// PathVectorField encodes a single-entry PathVector referencing pathIndex.
func PathVectorField(pathIndex int32) FieldValue {
	return FieldValue{Kind: format.PathVector, i32: pathIndex}
}

// SpecifierField encodes an inline Specifier (def/over/class).
func SpecifierField(s format.SpecifierType) FieldValue {
	return FieldValue{Kind: format.Specifier, specifier: s}
}

// IntField encodes an inline scalar int.
func IntField(v int32) FieldValue { return FieldValue{Kind: format.Int, i32: v} }

// IntArrayField encodes an out-of-line int array, compressed when
// len(values) >= 16.
func IntArrayField(values []int32) FieldValue {
	return FieldValue{Kind: format.Int, i32Arr: values}
}

// FloatField encodes an inline scalar float.
func FloatField(v float32) FieldValue { return FieldValue{Kind: format.Float, f32: v} }

// FloatArrayField encodes an out-of-line float array.
func FloatArrayField(values []float32) FieldValue {
	return FieldValue{Kind: format.Float, f32Arr: values}
}

// DoubleField encodes an inline scalar double. Per the original tool's
// behaviour (preserved for bit-exactness, see DESIGN.md), the payload
// holds the IEEE bits of the float32 projection of v, not v's own
// float64 bits.
func DoubleField(v float64) FieldValue { return FieldValue{Kind: format.Double, f64: v} }

// DoubleArrayField encodes an out-of-line double array.
func DoubleArrayField(values []float64) FieldValue {
	return FieldValue{Kind: format.Double, f64Arr: values}
}

// VecField encodes a scalar vector field (vec2f, vec3d, vec2i, ...).
// components holds the vector's components in order; kind must be one of
// the Vec2*/Vec3*/Vec4* ValueTypes. For the i, h and f kinds, when every
// component is integral and fits in a signed byte, the encoder packs them
// inline; otherwise, and always for the d kinds, it writes them out of
// line at full width.
func VecField(kind format.ValueType, components []float64) FieldValue {
	return FieldValue{Kind: kind, vecD: components}
}

// VecArrayField encodes an array of vectors.
func VecArrayField(kind format.ValueType, vectors [][]float64) FieldValue {
	return FieldValue{Kind: kind, vecDArr: vectors}
}

// MatrixField encodes a scalar matrix{2,3,4}d field. rows holds N rows of
// N float64 components each.
func MatrixField(kind format.ValueType, rows [][]float64) FieldValue {
	return FieldValue{Kind: kind, matD: rows}
}

// MatrixArrayField encodes an array of matrices.
func MatrixArrayField(kind format.ValueType, matrices [][][]float64) FieldValue {
	return FieldValue{Kind: kind, matDArr: matrices}
}

// BoolField encodes an inline bool.
func BoolField(v bool) FieldValue { return FieldValue{Kind: format.Bool, b: v} }

// VariabilityField encodes an inline Variability flag.
func VariabilityField(v bool) FieldValue { return FieldValue{Kind: format.Variability, b: v} }

// TimeSamplesField encodes a time-indexed value track. innerType names the
// per-sample value type (spec.md §4.5); samples must be ordered by Time
// for USD's expected semantics, though the core does not itself enforce
// ordering.
func TimeSamplesField(innerType format.ValueType, samples []TimeSample) FieldValue {
	return FieldValue{Kind: format.TimeSamples, innerType: innerType, samples: samples}
}
