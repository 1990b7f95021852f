package crate

import (
	"fmt"
	"strings"

	"github.com/arloliu/usdcrate/errs"
	"github.com/arloliu/usdcrate/format"
	"github.com/arloliu/usdcrate/internal/dedup"
	"github.com/arloliu/usdcrate/internal/wire"
)

// AddField interns name and encodes value, returning the (deduplicated)
// field index. Equal (token, representation-word) pairs, including ones
// produced by two different calls with the same name and value, return
// the same field index without writing the payload bytes twice (spec.md
// §3, §8). TimeSamples fields are the exception: every call writes a new
// track, so two calls with the same name and samples return different
// field indices.
func (w *Writer) AddField(name string, value FieldValue) (int, error) {
	token := w.tokens.Intern(name)

	switch value.Kind {
	case format.Token:
		return w.encodeToken(token, value)
	case format.Asset:
		return w.encodeAsset(token, value)
	case format.TokenVector:
		return w.encodeTokenVector(token, value)
	case format.PathListOp:
		return w.encodePathListOp(token, value)
	case format.PathVector:
		return w.encodePathVector(token, value)
	case format.Specifier:
		return w.encodeSpecifier(token, value)
	case format.Int:
		return w.encodeInt(token, value)
	case format.Float:
		return w.encodeFloat(token, value)
	case format.Double:
		return w.encodeDouble(token, value)
	case format.Bool:
		return w.encodeBool(token, value)
	case format.Variability:
		return w.encodeVariability(token, value)
	case format.TimeSamples:
		return w.encodeTimeSamples(token, value)
	case format.Vec2d, format.Vec2f, format.Vec2h, format.Vec2i,
		format.Vec3d, format.Vec3f, format.Vec3h, format.Vec3i,
		format.Vec4d, format.Vec4f, format.Vec4h, format.Vec4i:
		return w.encodeVector(token, value)
	case format.Matrix2d, format.Matrix3d, format.Matrix4d:
		return w.encodeMatrix(token, value)
	default:
		return 0, fmt.Errorf("%w: %s", errs.ErrTypeUnsupported, value.Kind)
	}
}

func (w *Writer) encodeToken(nameToken int32, value FieldValue) (int, error) {
	if value.strArr != nil {
		indices := make([]int32, len(value.strArr))
		for i, s := range value.strArr {
			indices[i] = w.tokens.Intern(strings.ReplaceAll(s, `"`, ""))
		}
		fp := dedup.FingerprintInt32Tokens(indices)
		ref, ok := w.cache.Lookup(fp, format.Token)
		if !ok {
			var err error
			ref, err = w.offset()
			if err != nil {
				return 0, err
			}
			w.cache.Store(fp, format.Token, ref)
			if err := wire.WriteUint(w.sink, uint64(len(indices)), w.arrayCountWidth()); err != nil {
				return 0, err
			}
			for _, idx := range indices {
				if err := wire.WriteInt(w.sink, int64(idx), 4); err != nil {
					return 0, err
				}
			}
		}

		return w.registerField(nameToken, format.Token, true, false, false, uint64(ref)), nil
	}

	tok := w.tokens.Intern(strings.ReplaceAll(value.str, `"`, ""))

	return w.registerField(nameToken, format.Token, false, true, false, uint64(tok)), nil
}

func (w *Writer) encodeAsset(nameToken int32, value FieldValue) (int, error) {
	tok := w.tokens.Intern(strings.ReplaceAll(value.str, "@", ""))

	return w.registerField(nameToken, format.Asset, false, true, false, uint64(tok)), nil
}

func (w *Writer) encodeTokenVector(nameToken int32, value FieldValue) (int, error) {
	indices := make([]int32, len(value.strArr))
	for i, s := range value.strArr {
		indices[i] = w.tokens.Intern(strings.ReplaceAll(s, `"`, ""))
	}
	fp := dedup.FingerprintInt32Tokens(indices)
	ref, ok := w.cache.Lookup(fp, format.TokenVector)
	if !ok {
		var err error
		ref, err = w.offset()
		if err != nil {
			return 0, err
		}
		w.cache.Store(fp, format.TokenVector, ref)
		if err := wire.WriteUint(w.sink, uint64(len(indices)), 8); err != nil {
			return 0, err
		}
		for _, idx := range indices {
			if err := wire.WriteInt(w.sink, int64(idx), 4); err != nil {
				return 0, err
			}
		}
		if err := wire.WriteUint(w.sink, 0, 4); err != nil {
			return 0, err
		}
	}

	return w.registerField(nameToken, format.TokenVector, false, false, false, uint64(ref)), nil
}

func (w *Writer) encodePathListOp(nameToken int32, value FieldValue) (int, error) {
	fp := dedup.FingerprintInt32s([]int32{value.i32})
	if ref, ok := w.cache.Lookup(fp, format.PathListOp); ok {
		return w.registerField(nameToken, format.PathListOp, false, false, false, uint64(ref)), nil
	}
	ref, err := w.offset()
	if err != nil {
		return 0, err
	}
	w.cache.Store(fp, format.PathListOp, ref)
	const opAdd = 259
	if err := wire.WriteUint(w.sink, opAdd, 8); err != nil {
		return 0, err
	}
	if err := wire.WriteUint(w.sink, 0, 1); err != nil {
		return 0, err
	}
	if err := wire.WriteInt(w.sink, int64(value.i32), 4); err != nil {
		return 0, err
	}

	return w.registerField(nameToken, format.PathListOp, false, false, false, uint64(ref)), nil
}

func (w *Writer) encodePathVector(nameToken int32, value FieldValue) (int, error) {
	fp := dedup.FingerprintInt32s([]int32{value.i32})
	if ref, ok := w.cache.Lookup(fp, format.PathVector); ok {
		return w.registerField(nameToken, format.PathVector, false, false, false, uint64(ref)), nil
	}
	ref, err := w.offset()
	if err != nil {
		return 0, err
	}
	w.cache.Store(fp, format.PathVector, ref)
	if err := wire.WriteUint(w.sink, 1, 8); err != nil {
		return 0, err
	}
	if err := wire.WriteInt(w.sink, int64(value.i32), 4); err != nil {
		return 0, err
	}

	return w.registerField(nameToken, format.PathVector, false, false, false, uint64(ref)), nil
}

func (w *Writer) encodeSpecifier(nameToken int32, value FieldValue) (int, error) {
	return w.registerField(nameToken, format.Specifier, false, true, false, uint64(value.specifier)), nil
}

func (w *Writer) encodeInt(nameToken int32, value FieldValue) (int, error) {
	if value.i32Arr != nil {
		data := value.i32Arr
		compress := len(data) >= 16
		fp := dedup.FingerprintInt32s(data)
		ref, ok := w.cache.Lookup(fp, format.Int)
		if !ok {
			var err error
			ref, err = w.offset()
			if err != nil {
				return 0, err
			}
			w.cache.Store(fp, format.Int, ref)
			if err := wire.WriteUint(w.sink, uint64(len(data)), w.arrayCountWidth()); err != nil {
				return 0, err
			}
			if compress {
				if err := writeCompressedI32(w.sink, data); err != nil {
					return 0, err
				}
			} else {
				for _, v := range data {
					if err := wire.WriteInt(w.sink, int64(v), 4); err != nil {
						return 0, err
					}
				}
			}
		}

		return w.registerField(nameToken, format.Int, true, false, compress, uint64(ref)), nil
	}

	payload := uint64(int64(value.i32)) & format.PayloadMask

	return w.registerField(nameToken, format.Int, false, true, false, payload), nil
}

func (w *Writer) encodeFloat(nameToken int32, value FieldValue) (int, error) {
	if value.f32Arr != nil {
		data := value.f32Arr
		fp := dedup.FingerprintFloat32s(data)
		ref, ok := w.cache.Lookup(fp, format.Float)
		if !ok {
			var err error
			ref, err = w.offset()
			if err != nil {
				return 0, err
			}
			w.cache.Store(fp, format.Float, ref)
			if err := wire.WriteUint(w.sink, uint64(len(data)), w.arrayCountWidth()); err != nil {
				return 0, err
			}
			for _, v := range data {
				if err := wire.WriteFloat32(w.sink, v); err != nil {
					return 0, err
				}
			}
		}

		return w.registerField(nameToken, format.Float, true, false, false, uint64(ref)), nil
	}

	payload := uint64(math32bits(value.f32))

	return w.registerField(nameToken, format.Float, false, true, false, payload), nil
}

func (w *Writer) encodeDouble(nameToken int32, value FieldValue) (int, error) {
	if value.f64Arr != nil {
		data := value.f64Arr
		fp := dedup.FingerprintFloat64s(data)
		ref, ok := w.cache.Lookup(fp, format.Double)
		if !ok {
			var err error
			ref, err = w.offset()
			if err != nil {
				return 0, err
			}
			w.cache.Store(fp, format.Double, ref)
			if err := wire.WriteUint(w.sink, uint64(len(data)), w.arrayCountWidth()); err != nil {
				return 0, err
			}
			for _, v := range data {
				if err := wire.WriteFloat64(w.sink, v); err != nil {
					return 0, err
				}
			}
		}

		return w.registerField(nameToken, format.Double, true, false, false, uint64(ref)), nil
	}

	// Preserves the original tool's behaviour: the scalar double payload
	// holds the IEEE bits of the float32 projection of the value, not the
	// value's own float64 bits (see DESIGN.md, spec.md §9 Open Questions).
	payload := uint64(math32bits(float32(value.f64)))

	return w.registerField(nameToken, format.Double, false, true, false, payload), nil
}

func (w *Writer) encodeBool(nameToken int32, value FieldValue) (int, error) {
	return w.registerField(nameToken, format.Bool, false, true, false, boolPayload(value.b)), nil
}

func (w *Writer) encodeVariability(nameToken int32, value FieldValue) (int, error) {
	return w.registerField(nameToken, format.Variability, false, true, false, boolPayload(value.b)), nil
}

func boolPayload(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

func (w *Writer) registerField(nameToken int32, t format.ValueType, array, inline, compressed bool, payload uint64) int {
	rep := format.EncodeRep(t, array, inline, compressed, payload)

	return w.fields.Add(nameToken, rep)
}
