package crate

import (
	"fmt"
	"io"

	"github.com/arloliu/usdcrate/errs"
	"github.com/arloliu/usdcrate/format"
	"github.com/arloliu/usdcrate/internal/wire"
)

// timeSampleKey canonicalises a sample's value for the per-track dedup map:
// two samples holding the same value, by Go equality on scalars or
// component-wise equality on vectors, share one on-disk blob.
func timeSampleKey(v any) string {
	switch val := v.(type) {
	case []float64:
		return fmt.Sprint(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// writeTimeSampleValue writes one sample's value in innerType's wire
// representation. Quatf reorders its components from the caller's (w, x,
// y, z) order to the wire's (x, y, z, w) order, mirroring the original
// tool's writeValue.
func writeTimeSampleValue(w *Writer, v any, innerType format.ValueType) error {
	switch innerType {
	case format.Quatf:
		c, ok := v.([]float64)
		if !ok || len(c) != 4 {
			return fmt.Errorf("%w: quatf time sample needs 4 components", errs.ErrTypeUnsupported)
		}
		order := []float64{c[1], c[2], c[3], c[0]}
		for _, f := range order {
			if err := wire.WriteFloat32(w.sink, float32(f)); err != nil {
				return err
			}
		}

		return nil
	case format.Matrix2d, format.Matrix3d, format.Matrix4d:
		rows, ok := v.([][]float64)
		if !ok {
			return fmt.Errorf("%w: matrix time sample needs [][]float64", errs.ErrTypeUnsupported)
		}
		for _, row := range rows {
			for _, c := range row {
				if err := writeVecComponent(w.sink, innerType, c); err != nil {
					return err
				}
			}
		}

		return nil
	case format.Vec2d, format.Vec2f, format.Vec2h, format.Vec2i,
		format.Vec3d, format.Vec3f, format.Vec3h, format.Vec3i,
		format.Vec4d, format.Vec4f, format.Vec4h, format.Vec4i:
		c, ok := v.([]float64)
		if !ok {
			return fmt.Errorf("%w: vector time sample needs []float64", errs.ErrTypeUnsupported)
		}
		for _, f := range c {
			if err := writeVecComponent(w.sink, innerType, f); err != nil {
				return err
			}
		}

		return nil
	case format.Float:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%w: float time sample needs float64", errs.ErrTypeUnsupported)
		}

		return wire.WriteFloat32(w.sink, float32(f))
	case format.Double:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%w: double time sample needs float64", errs.ErrTypeUnsupported)
		}

		return wire.WriteFloat64(w.sink, f)
	case format.Int:
		i, ok := v.(int32)
		if !ok {
			return fmt.Errorf("%w: int time sample needs int32", errs.ErrTypeUnsupported)
		}

		return wire.WriteInt(w.sink, int64(i), 4)
	case format.Token:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: token time sample needs string", errs.ErrTypeUnsupported)
		}
		tok := w.tokens.Intern(s)

		return wire.WriteInt(w.sink, int64(tok), 4)
	default:
		return fmt.Errorf("%w: %s time samples", errs.ErrTypeUnsupported, innerType)
	}
}

// encodeTimeSamples writes a time-indexed value track (spec.md §4.5).
//
// Per-sample values are deduplicated within the track: two samples with
// the same value share one written blob. The track's own times vector is
// written once per session: the first TimeSamples field written stores a
// full DoubleVector of sample times, and every subsequent field — even one
// belonging to a different track — reuses it via a fixed-size back
// reference to w.firstTimesRef instead of duplicating the vector.
func (w *Writer) encodeTimeSamples(nameToken int32, value FieldValue) (int, error) {
	samples := value.samples
	innerType := value.innerType

	count := len(samples)
	size := uint64(8 * (count + 2))

	elem := uint64(0)
	if len(samples) > 0 {
		if c, ok := samples[0].Value.([]float64); ok && len(c) > 1 {
			elem = 128
		}
	}

	refMap := make(map[string]int64, count)
	refs := make([]int64, count)
	frames := make([]float64, count)
	for i, s := range samples {
		frames[i] = s.Time
		key := timeSampleKey(s.Value)
		if ref, ok := refMap[key]; ok {
			refs[i] = ref

			continue
		}
		ref, err := w.offset()
		if err != nil {
			return 0, err
		}
		if err := writeTimeSampleValue(w, s.Value, innerType); err != nil {
			return 0, err
		}
		refMap[key] = ref
		refs[i] = ref
	}

	reference, err := w.offset()
	if err != nil {
		return 0, err
	}

	if w.firstTimesRef >= 0 {
		if err := wire.WriteUint(w.sink, 8, 8); err != nil {
			return 0, err
		}
		if err := wire.WriteUint(w.sink, uint64(w.firstTimesRef+8), 6); err != nil {
			return 0, err
		}
		if err := wire.WriteUint(w.sink, uint64(format.DoubleVector), 1); err != nil {
			return 0, err
		}
		if err := wire.WriteUint(w.sink, 0, 1); err != nil {
			return 0, err
		}
	} else {
		w.firstTimesRef = reference
		if err := wire.WriteUint(w.sink, size, 8); err != nil {
			return 0, err
		}
		if err := wire.WriteUint(w.sink, uint64(count), 8); err != nil {
			return 0, err
		}
		for _, f := range frames {
			if err := wire.WriteFloat64(w.sink, f); err != nil {
				return 0, err
			}
		}
		if err := wire.WriteUint(w.sink, uint64(reference+8), 6); err != nil {
			return 0, err
		}
		if err := wire.WriteUint(w.sink, uint64(format.DoubleVector), 1); err != nil {
			return 0, err
		}
		if err := wire.WriteUint(w.sink, 0, 1); err != nil {
			return 0, err
		}
	}

	if err := wire.WriteUint(w.sink, 8, 8); err != nil {
		return 0, err
	}
	if err := wire.WriteUint(w.sink, uint64(count), 8); err != nil {
		return 0, err
	}
	for _, ref := range refs {
		if err := wire.WriteUint(w.sink, uint64(ref), 6); err != nil {
			return 0, err
		}
		if err := wire.WriteUint(w.sink, uint64(innerType), 1); err != nil {
			return 0, err
		}
		if err := wire.WriteUint(w.sink, elem, 1); err != nil {
			return 0, err
		}
	}

	return w.registerField(nameToken, format.TimeSamples, false, false, false, uint64(reference)), nil
}

// readTimeSampleValue inverts writeTimeSampleValue, reading one sample's
// value in innerType's wire representation at the reader's current
// position.
func readTimeSampleValue(r *Reader, innerType format.ValueType) (any, error) {
	switch innerType {
	case format.Quatf:
		c := make([]float64, 4)
		for i := range c {
			v, err := wire.ReadFloat32(r.sink)
			if err != nil {
				return nil, err
			}
			c[i] = float64(v)
		}
		// wire order is (x, y, z, w); restore caller order (w, x, y, z).
		return []float64{c[3], c[0], c[1], c[2]}, nil
	case format.Matrix2d, format.Matrix3d, format.Matrix4d:
		dim := matrixDim(innerType)
		rows := make([][]float64, dim)
		for i := range rows {
			row := make([]float64, dim)
			for j := range row {
				c, err := readVecComponent(r.sink, innerType)
				if err != nil {
					return nil, err
				}
				row[j] = c
			}
			rows[i] = row
		}

		return rows, nil
	case format.Vec2d, format.Vec2f, format.Vec2h, format.Vec2i,
		format.Vec3d, format.Vec3f, format.Vec3h, format.Vec3i,
		format.Vec4d, format.Vec4f, format.Vec4h, format.Vec4i:
		n := vecComponentCount(innerType)
		c := make([]float64, n)
		for i := range c {
			v, err := readVecComponent(r.sink, innerType)
			if err != nil {
				return nil, err
			}
			c[i] = v
		}

		return c, nil
	case format.Float:
		v, err := wire.ReadFloat32(r.sink)

		return float64(v), err
	case format.Double:
		return wire.ReadFloat64(r.sink)
	case format.Int:
		v, err := wire.ReadInt(r.sink, 4)

		return int32(v), err
	case format.Token:
		v, err := wire.ReadInt(r.sink, 4)
		if err != nil {
			return nil, err
		}

		return r.tokens.At(int32(v)), nil
	default:
		return nil, fmt.Errorf("%w: %s time samples", errs.ErrTypeUnsupported, innerType)
	}
}

// decodeTimeSamples reads a time-indexed value track back, inverting
// encodeTimeSamples. The per-sample inner value type is not itself carried
// in the field's representation word; the track's own ref index stores a
// type tag per sample, each sample is read with its own entry's tag, and
// the returned field's inner type is the last entry's tag (spec.md §4.5).
func (r *Reader) decodeTimeSamples(d format.Decoded) (FieldValue, error) {
	if _, err := r.sink.Seek(int64(d.Payload), io.SeekStart); err != nil {
		return FieldValue{}, err
	}

	marker, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return FieldValue{}, err
	}

	var count uint64
	var times []float64

	if marker == 8 {
		timesLoc, err := wire.ReadUint(r.sink, 6)
		if err != nil {
			return FieldValue{}, err
		}
		if _, err := wire.ReadUint(r.sink, 1); err != nil {
			return FieldValue{}, err
		}
		if _, err := wire.ReadUint(r.sink, 1); err != nil {
			return FieldValue{}, err
		}
		resume, err := r.sink.Seek(0, io.SeekCurrent)
		if err != nil {
			return FieldValue{}, err
		}
		if _, err := r.sink.Seek(int64(timesLoc), io.SeekStart); err != nil {
			return FieldValue{}, err
		}
		count, err = wire.ReadUint(r.sink, 8)
		if err != nil {
			return FieldValue{}, err
		}
		times = make([]float64, count)
		for i := range times {
			times[i], err = wire.ReadFloat64(r.sink)
			if err != nil {
				return FieldValue{}, err
			}
		}
		if _, err := r.sink.Seek(resume, io.SeekStart); err != nil {
			return FieldValue{}, err
		}
	} else {
		count, err = wire.ReadUint(r.sink, 8)
		if err != nil {
			return FieldValue{}, err
		}
		times = make([]float64, count)
		for i := range times {
			times[i], err = wire.ReadFloat64(r.sink)
			if err != nil {
				return FieldValue{}, err
			}
		}
		if _, err := wire.ReadUint(r.sink, 6); err != nil { // trailing ref, unused here
			return FieldValue{}, err
		}
		if _, err := wire.ReadUint(r.sink, 1); err != nil {
			return FieldValue{}, err
		}
		if _, err := wire.ReadUint(r.sink, 1); err != nil {
			return FieldValue{}, err
		}
	}

	if _, err := wire.ReadUint(r.sink, 8); err != nil { // literal 8, unused
		return FieldValue{}, err
	}
	refCount, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return FieldValue{}, err
	}

	samples := make([]TimeSample, refCount)
	var innerType format.ValueType
	for i := range samples {
		ref, err := wire.ReadUint(r.sink, 6)
		if err != nil {
			return FieldValue{}, err
		}
		typeTag, err := wire.ReadUint(r.sink, 1)
		if err != nil {
			return FieldValue{}, err
		}
		if _, err := wire.ReadUint(r.sink, 1); err != nil { // elem flag, unused on read
			return FieldValue{}, err
		}
		innerType = format.ValueType(typeTag)

		resume, err := r.sink.Seek(0, io.SeekCurrent)
		if err != nil {
			return FieldValue{}, err
		}
		if _, err := r.sink.Seek(int64(ref), io.SeekStart); err != nil {
			return FieldValue{}, err
		}
		value, err := readTimeSampleValue(r, innerType)
		if err != nil {
			return FieldValue{}, err
		}
		if _, err := r.sink.Seek(resume, io.SeekStart); err != nil {
			return FieldValue{}, err
		}

		samples[i] = TimeSample{Time: times[i], Value: value}
	}

	return TimeSamplesField(innerType, samples), nil
}
