package crate

import (
	"math"

	"github.com/arloliu/usdcrate/errs"
	"github.com/arloliu/usdcrate/format"
	"github.com/arloliu/usdcrate/internal/dedup"
	"github.com/arloliu/usdcrate/internal/wire"
)

// writeVecComponent writes one vector/matrix component in kind's on-wire
// width, matching the original tool's struct-format-from-type-name-suffix
// scheme: 'd' and matrices are 8-byte doubles, 'f' is a 4-byte float, 'h'
// is a 2-byte signed integer (not an IEEE half; replicated as-is), 'i' is
// a 4-byte signed integer.
func writeVecComponent(w wire.Sink, kind format.ValueType, c float64) error {
	switch kind {
	case format.Vec2d, format.Vec3d, format.Vec4d, format.Matrix2d, format.Matrix3d, format.Matrix4d:
		return wire.WriteFloat64(w, c)
	case format.Vec2f, format.Vec3f, format.Vec4f:
		return wire.WriteFloat32(w, float32(c))
	case format.Vec2h, format.Vec3h, format.Vec4h:
		return wire.WriteInt(w, int64(c), 2)
	case format.Vec2i, format.Vec3i, format.Vec4i:
		return wire.WriteInt(w, int64(c), 4)
	default:
		return errs.ErrTypeUnsupported
	}
}

// vecInlineEligible reports whether kind's vectors are ever eligible for
// the whole-byte inline optimization below. `d`-suffixed vectors are
// never inlined regardless of their component values (spec.md §4.4: only
// vec{2,3,4}{i,h,f} take the whole-byte/INLINE path; vec{2,3,4}d is
// always out-of-line).
func vecInlineEligible(kind format.ValueType) bool {
	switch kind {
	case format.Vec2i, format.Vec3i, format.Vec4i,
		format.Vec2h, format.Vec3h, format.Vec4h,
		format.Vec2f, format.Vec3f, format.Vec4f:
		return true
	default:
		return false
	}
}

// isWholeBytes reports whether every component of a vector is an integer
// that fits in a signed byte, the condition under which the original tool
// inlines the vector as packed bytes instead of writing it out of line.
func isWholeBytes(components []float64) bool {
	for _, f := range components {
		if f != math.Trunc(f) {
			return false
		}
		if f < -128 || f > 127 {
			return false
		}
	}

	return true
}

func packSignedBytes(components []float64) uint64 {
	var payload uint64
	for i, f := range components {
		payload |= uint64(byte(int8(f))) << (8 * i)
	}

	return payload
}

func (w *Writer) encodeVector(nameToken int32, value FieldValue) (int, error) {
	kind := value.Kind

	if value.vecDArr != nil {
		fp := dedup.FingerprintVecsD(value.vecDArr)
		ref, ok := w.cache.Lookup(fp, kind)
		if !ok {
			var err error
			ref, err = w.offset()
			if err != nil {
				return 0, err
			}
			w.cache.Store(fp, kind, ref)
			if err := wire.WriteUint(w.sink, uint64(len(value.vecDArr)), w.arrayCountWidth()); err != nil {
				return 0, err
			}
			for _, vec := range value.vecDArr {
				for _, c := range vec {
					if err := writeVecComponent(w.sink, kind, c); err != nil {
						return 0, err
					}
				}
			}
		}

		return w.registerField(nameToken, kind, true, false, false, uint64(ref)), nil
	}

	components := value.vecD
	if vecInlineEligible(kind) && isWholeBytes(components) && len(components) <= 6 {
		return w.registerField(nameToken, kind, false, true, false, packSignedBytes(components)), nil
	}

	fp := dedup.FingerprintVecsD([][]float64{components})
	ref, ok := w.cache.Lookup(fp, kind)
	if !ok {
		var err error
		ref, err = w.offset()
		if err != nil {
			return 0, err
		}
		w.cache.Store(fp, kind, ref)
		for _, c := range components {
			if err := writeVecComponent(w.sink, kind, c); err != nil {
				return 0, err
			}
		}
	}

	return w.registerField(nameToken, kind, false, false, false, uint64(ref)), nil
}

func (w *Writer) encodeMatrix(nameToken int32, value FieldValue) (int, error) {
	kind := value.Kind

	if value.matDArr != nil {
		flat := make([][]float64, 0, len(value.matDArr)*len(value.matDArr[0]))
		for _, m := range value.matDArr {
			flat = append(flat, m...)
		}
		fp := dedup.FingerprintVecsD(flat)
		ref, ok := w.cache.Lookup(fp, kind)
		if !ok {
			var err error
			ref, err = w.offset()
			if err != nil {
				return 0, err
			}
			w.cache.Store(fp, kind, ref)
			if err := wire.WriteUint(w.sink, uint64(len(value.matDArr)), w.arrayCountWidth()); err != nil {
				return 0, err
			}
			for _, m := range value.matDArr {
				for _, row := range m {
					for _, c := range row {
						if err := writeVecComponent(w.sink, kind, c); err != nil {
							return 0, err
						}
					}
				}
			}
		}

		return w.registerField(nameToken, kind, true, false, false, uint64(ref)), nil
	}

	fp := dedup.FingerprintVecsD(value.matD)
	ref, ok := w.cache.Lookup(fp, kind)
	if !ok {
		var err error
		ref, err = w.offset()
		if err != nil {
			return 0, err
		}
		w.cache.Store(fp, kind, ref)
		for _, row := range value.matD {
			for _, c := range row {
				if err := writeVecComponent(w.sink, kind, c); err != nil {
					return 0, err
				}
			}
		}
	}

	return w.registerField(nameToken, kind, false, false, false, uint64(ref)), nil
}
