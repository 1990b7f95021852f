package crate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/usdcrate/format"
)

func TestEmptyFileRoundTrip(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)
	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)
	require.Equal(t, 0, r.NumFields())
	require.Equal(t, 0, r.NumSpecs())
	require.Equal(t, 0, r.NumPaths())
}

func TestSinglePrimRoundTrip(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	specifierField, err := w.AddField("specifier", SpecifierField(format.SpecifierDef))
	require.NoError(t, err)
	typeNameField, err := w.AddField("typeName", TokenField("Xform"))
	require.NoError(t, err)

	fset := w.AddFieldSet([]int{specifierField, typeNameField})
	w.AddPath(1, w.InternToken("root"), 0, true)
	spec := w.AddSpec(fset, format.SpecPrim)

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	require.Equal(t, 1, r.NumSpecs())
	fsetOffset, specType := r.Spec(spec)
	require.Equal(t, format.SpecPrim, specType)

	indices := r.FieldSet(fsetOffset)
	require.Len(t, indices, 2)

	v0, err := r.Field(indices[0])
	require.NoError(t, err)
	require.Equal(t, format.Specifier, v0.Kind)
	require.Equal(t, format.SpecifierDef, v0.specifier)

	v1, err := r.Field(indices[1])
	require.NoError(t, err)
	require.Equal(t, format.Token, v1.Kind)
	require.Equal(t, "Xform", v1.str)

	require.Equal(t, 1, r.NumPaths())
	pathIndex, token, jump, isPrim := r.Path(0)
	require.EqualValues(t, 1, pathIndex)
	require.Equal(t, "root", r.TokenAt(token))
	require.EqualValues(t, 0, jump)
	require.True(t, isPrim)
}

func TestIntArrayDedupSharesOffset(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	values := []int32{1, 2, 3, 4, 5}
	i1, err := w.AddField("a", IntArrayField(values))
	require.NoError(t, err)
	i2, err := w.AddField("b", IntArrayField(values))
	require.NoError(t, err)

	d1, err := w.fields.Reps()[i1].Decode()
	require.NoError(t, err)
	d2, err := w.fields.Reps()[i2].Decode()
	require.NoError(t, err)
	require.Equal(t, d1.Payload, d2.Payload)

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	v1, err := r.Field(i1)
	require.NoError(t, err)
	v2, err := r.Field(i2)
	require.NoError(t, err)
	require.Equal(t, values, v1.i32Arr)
	require.Equal(t, values, v2.i32Arr)
}

func TestCompressedIntArrayRoundTrip(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	values := make([]int32, 20)
	for i := range values {
		values[i] = int32(i * 3)
	}
	idx, err := w.AddField("big", IntArrayField(values))
	require.NoError(t, err)

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	v, err := r.Field(idx)
	require.NoError(t, err)
	require.Equal(t, values, v.i32Arr)
}

func TestWholeByteVectorInlines(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	idx, err := w.AddField("extent", VecField(format.Vec3f, []float64{1, 2, 3}))
	require.NoError(t, err)

	decoded, err := w.fields.Reps()[idx].Decode()
	require.NoError(t, err)
	require.True(t, decoded.Inline)

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	v, err := r.Field(idx)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, v.vecD)
}

func TestNonWholeByteVectorGoesOutOfLine(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	idx, err := w.AddField("translate", VecField(format.Vec3d, []float64{1.5, -2.25, 300.125}))
	require.NoError(t, err)

	decoded, err := w.fields.Reps()[idx].Decode()
	require.NoError(t, err)
	require.False(t, decoded.Inline)

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	v, err := r.Field(idx)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, -2.25, 300.125}, v.vecD)
}

func TestIntegralVec3dNeverInlines(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	idx, err := w.AddField("extent", VecField(format.Vec3d, []float64{1, 2, 3}))
	require.NoError(t, err)

	rep := w.fields.Reps()[idx]
	decoded, err := rep.Decode()
	require.NoError(t, err)
	require.False(t, decoded.Inline, "vec3d must never use the whole-byte inline encoding, even with integral components")

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	v, err := r.Field(idx)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, v.vecD)
}

func TestDoubleScalarPreservesFloat32BitsBug(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	idx, err := w.AddField("radius", DoubleField(1.0))
	require.NoError(t, err)

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	v, err := r.Field(idx)
	require.NoError(t, err)
	require.Equal(t, format.Double, v.Kind)
	// 1.0 reread as float64 bits of the float32 payload is not 1.0: this
	// is the original tool's known scalar-double bug, preserved as-is.
	require.NotEqual(t, 1.0, v.f64)
}

func TestTimeSamplesSharedTimebase(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	samples := []TimeSample{
		{Time: 1, Value: 10.0},
		{Time: 2, Value: 20.0},
		{Time: 3, Value: 10.0},
	}
	trackA, err := w.AddField("visibility", TimeSamplesField(format.Double, samples))
	require.NoError(t, err)

	samples2 := []TimeSample{
		{Time: 1, Value: float64(1)},
		{Time: 2, Value: float64(2)},
		{Time: 3, Value: float64(3)},
	}
	trackB, err := w.AddField("size", TimeSamplesField(format.Int, toIntSamples(samples2)))
	require.NoError(t, err)

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	vA, err := r.Field(trackA)
	require.NoError(t, err)
	require.Equal(t, format.TimeSamples, vA.Kind)
	require.Len(t, vA.samples, 3)
	require.Equal(t, 1.0, vA.samples[0].Time)
	require.Equal(t, 10.0, vA.samples[0].Value)
	require.Equal(t, 20.0, vA.samples[1].Value)
	require.Equal(t, 10.0, vA.samples[2].Value)

	vB, err := r.Field(trackB)
	require.NoError(t, err)
	require.Len(t, vB.samples, 3)
	require.Equal(t, int32(1), vB.samples[0].Value)
	require.Equal(t, int32(2), vB.samples[1].Value)
	require.Equal(t, int32(3), vB.samples[2].Value)
}

func toIntSamples(samples []TimeSample) []TimeSample {
	out := make([]TimeSample, len(samples))
	for i, s := range samples {
		out[i] = TimeSample{Time: s.Time, Value: int32(s.Value.(float64))}
	}

	return out
}

func TestTokenQuoteStrippingAndAssetAtStripping(t *testing.T) {
	sink := newMemSink()
	w, err := NewWriter(sink)
	require.NoError(t, err)

	tokIdx, err := w.AddField("name", TokenField(`He said "hi"`))
	require.NoError(t, err)
	assetIdx, err := w.AddField("ref", AssetField("@assets/model.usd@"))
	require.NoError(t, err)

	require.NoError(t, w.WriteSections())
	require.NoError(t, w.WriteTableOfContents())

	sink.pos = 0
	r, err := Open(sink)
	require.NoError(t, err)

	tv, err := r.Field(tokIdx)
	require.NoError(t, err)
	require.Equal(t, "He said hi", tv.str)

	av, err := r.Field(assetIdx)
	require.NoError(t, err)
	require.Equal(t, "@assets/model.usd@", av.str)
}
