package dedup

import "github.com/arloliu/usdcrate/format"

// fieldKey is the dedup key for a field: equal (token, representation
// word) pairs always produce the same field index (spec.md §3).
type fieldKey struct {
	token int32
	rep   format.Rep
}

// Fields is the deduplicating field table: a flat, ordered sequence of
// (token-index, representation-word) pairs.
type Fields struct {
	byKey map[fieldKey]int
	names []int32
	reps  []format.Rep
}

// NewFields creates an empty field table.
func NewFields() *Fields {
	return &Fields{byKey: make(map[fieldKey]int)}
}

// Add registers a (token, rep) pair, returning its field index. Repeated
// registration of an identical pair returns the same index without
// appending a new entry.
func (f *Fields) Add(token int32, rep format.Rep) int {
	key := fieldKey{token: token, rep: rep}
	if idx, ok := f.byKey[key]; ok {
		return idx
	}
	idx := len(f.names)
	f.byKey[key] = idx
	f.names = append(f.names, token)
	f.reps = append(f.reps, rep)

	return idx
}

// Names returns the field name token indices in field-index order.
func (f *Fields) Names() []int32 {
	return f.names
}

// Reps returns the representation words in field-index order.
func (f *Fields) Reps() []format.Rep {
	return f.reps
}

// Len returns the number of distinct fields registered.
func (f *Fields) Len() int {
	return len(f.names)
}

// SetTables replaces the table contents wholesale, used by the reader.
func (f *Fields) SetTables(names []int32, reps []format.Rep) {
	f.names = names
	f.reps = reps
	f.byKey = nil // the reader never appends new fields
}
