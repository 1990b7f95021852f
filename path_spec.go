package crate

import "github.com/arloliu/usdcrate/format"

// AddFieldSet appends fieldIndices as a contiguous run terminated by the
// sentinel -1, and returns the starting offset a Spec can reference
// (spec.md §3).
func (w *Writer) AddFieldSet(fieldIndices []int) int {
	start := len(w.fsets)
	for _, idx := range fieldIndices {
		w.fsets = append(w.fsets, int32(idx))
	}
	w.fsets = append(w.fsets, -1)

	return start
}

// AddPath appends a path tuple (path-index, name-token, jump). When
// isPrim is true the token is stored negated, acting as a one-bit flag;
// negating token 0 leaves it 0 (spec.md §3, §4.6).
func (w *Writer) AddPath(pathIndex, token, jump int32, isPrim bool) {
	if isPrim {
		token = -token
	}
	w.paths = append(w.paths, pathEntry{pathIndex: pathIndex, token: token, jump: jump})
}

// AddSpec appends a Spec referencing the field set starting at
// fieldSetOffset, with the given spec type. The returned index doubles as
// the spec's own path-index (spec.md §4.6: "path-index := spec-index").
func (w *Writer) AddSpec(fieldSetOffset int, specType format.SpecType) int {
	path := int32(len(w.specs))
	w.specs = append(w.specs, specEntry{path: path, fset: int32(fieldSetOffset), specType: specType})

	return int(path)
}
