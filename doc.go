// Package crate reads and writes the binary ".usdc" crate container used
// by the Universal Scene Description (USD) ecosystem, format version
// 0.6.x.
//
// A crate file is a boot header, a table of contents, and six named
// sections (TOKENS, STRINGS, FIELDS, FIELDSETS, PATHS, SPECS) that
// together describe a scene graph as paths, specs, field sets, fields,
// and bit-packed value representations. This package owns that
// serialisation: it does not decide which prims, attributes or
// relationships exist — that is the caller's scene graph.
//
// # Writing
//
//	w, err := crate.NewWriter(sink)
//	tok := w.InternToken("Sphere")
//	fieldIdx, err := w.AddField("typeName", crate.TokenField("Sphere"))
//	fsetOffset := w.AddFieldSet([]int{fieldIdx})
//	specIdx := w.AddSpec(fsetOffset, format.SpecPrim)
//	w.AddPath(int32(specIdx), tok, 0, true)
//	if err := w.WriteSections(); err != nil { ... }
//	if err := w.WriteTableOfContents(); err != nil { ... }
//
// # Reading
//
//	r, err := crate.Open(sink)
//	for i := 0; i < r.NumSpecs(); i++ {
//	    fsetOffset, _ := r.Spec(i)
//	    for _, fieldIdx := range r.FieldSet(fsetOffset) {
//	        value, err := r.Field(fieldIdx)
//	        name := r.FieldName(fieldIdx)
//	    }
//	}
//
// The package is single-threaded and non-cooperative: one Writer or
// Reader session owns one byte sink for its whole lifetime and must not
// be shared across goroutines without external synchronisation.
package crate
