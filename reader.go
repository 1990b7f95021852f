package crate

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/usdcrate/errs"
	"github.com/arloliu/usdcrate/format"
	"github.com/arloliu/usdcrate/internal/dedup"
	"github.com/arloliu/usdcrate/internal/wire"
)

// Reader eagerly materialises a crate file's tables into memory on Open,
// then serves Field/FieldSet/Path/Spec lookups against the sink for
// out-of-line payload bytes (spec.md §4.9). A Reader is not safe for
// concurrent use; the caller must externally serialise access.
type Reader struct {
	sink         wire.Sink
	minorVersion byte

	tokens *dedup.Tokens
	fields *dedup.Fields

	fsets []int32
	paths []pathEntry
	specs []specEntry
}

// Open reads the boot header and table of contents from sink and
// materialises the TOKENS, FIELDS, FIELDSETS, PATHS and SPECS sections,
// returning a ready-to-query Reader. The STRINGS section is not read.
func Open(sink wire.Sink) (*Reader, error) {
	magic := make([]byte, len(format.Magic))
	if _, err := io.ReadFull(sink, magic); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedHeader, err)
	}
	if string(magic) != format.Magic {
		return nil, fmt.Errorf("%w: bad magic %q", errs.ErrMalformedHeader, magic)
	}

	if _, err := sink.Seek(format.VersionMinorOffset, io.SeekStart); err != nil {
		return nil, err
	}
	minorVersion, err := wire.ReadUint(sink, 1)
	if err != nil {
		return nil, err
	}

	if _, err := sink.Seek(format.TOCOffsetFieldOffset, io.SeekStart); err != nil {
		return nil, err
	}
	tocOffset, err := wire.ReadUint(sink, 8)
	if err != nil {
		return nil, err
	}

	if _, err := sink.Seek(int64(tocOffset), io.SeekStart); err != nil {
		return nil, err
	}
	numEntries, err := wire.ReadUint(sink, 8)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]format.TOCEntry, numEntries)
	for range numEntries {
		name := make([]byte, format.SectionNameSize)
		if _, err := io.ReadFull(sink, name); err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrMalformedHeader, err)
		}
		start, err := wire.ReadUint(sink, 8)
		if err != nil {
			return nil, err
		}
		size, err := wire.ReadUint(sink, 8)
		if err != nil {
			return nil, err
		}
		e := format.TOCEntry{Name: strings.TrimRight(string(name), "\x00"), Start: start, Size: size}
		entries[e.Name] = e
	}

	r := &Reader{sink: sink, minorVersion: byte(minorVersion), fields: dedup.NewFields()}

	if err := r.readTokensSection(entries[format.SectionTokens]); err != nil {
		return nil, err
	}
	if err := r.readFieldsSection(entries[format.SectionFields]); err != nil {
		return nil, err
	}
	if err := r.readFieldSetsSection(entries[format.SectionFieldSets]); err != nil {
		return nil, err
	}
	if err := r.readPathsSection(entries[format.SectionPaths]); err != nil {
		return nil, err
	}
	if err := r.readSpecsSection(entries[format.SectionSpecs]); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Reader) readTokensSection(e format.TOCEntry) error {
	if e.Size == 0 {
		r.tokens = dedup.NewTokens()

		return nil
	}
	if _, err := r.sink.Seek(int64(e.Start), io.SeekStart); err != nil {
		return err
	}
	count, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return err
	}
	if _, err := wire.ReadUint(r.sink, 8); err != nil { // uncompressed size, informational only
		return err
	}
	compSize, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return err
	}
	compressed := make([]byte, compSize)
	if _, err := io.ReadFull(r.sink, compressed); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrShortRead, err)
	}
	plain, err := lz4.Decompress(compressed)
	if err != nil {
		return err
	}
	parts := strings.Split(string(plain), "\x00")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if uint64(len(parts)) != count {
		return fmt.Errorf("%w: TOKENS declared %d tokens, decoded %d", errs.ErrMalformedRepresentation, count, len(parts))
	}
	r.tokens = dedup.NewTokens()
	r.tokens.SetList(parts)

	return nil
}

func (r *Reader) readFieldsSection(e format.TOCEntry) error {
	if e.Size == 0 {
		return nil
	}
	if _, err := r.sink.Seek(int64(e.Start), io.SeekStart); err != nil {
		return err
	}
	numFields, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return err
	}
	names, err := readCompressedI32(r.sink, int(numFields))
	if err != nil {
		return err
	}
	size, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r.sink, buf); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrShortRead, err)
	}
	plain, err := lz4.Decompress(buf)
	if err != nil {
		return err
	}
	if uint64(len(plain)) != 8*numFields {
		return fmt.Errorf("%w: FIELDS reps size mismatch", errs.ErrMalformedRepresentation)
	}
	reps := make([]format.Rep, numFields)
	repReader := bytes.NewReader(plain)
	for i := range reps {
		v, err := wire.ReadUint(repReader, 8)
		if err != nil {
			return err
		}
		reps[i] = format.Rep(v)
	}
	r.fields.SetTables(names, reps)

	return nil
}

func (r *Reader) readFieldSetsSection(e format.TOCEntry) error {
	if e.Size == 0 {
		return nil
	}
	if _, err := r.sink.Seek(int64(e.Start), io.SeekStart); err != nil {
		return err
	}
	count, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return err
	}
	fsets, err := readCompressedI32(r.sink, int(count))
	if err != nil {
		return err
	}
	r.fsets = fsets

	return nil
}

func (r *Reader) readPathsSection(e format.TOCEntry) error {
	if e.Size == 0 {
		return nil
	}
	if _, err := r.sink.Seek(int64(e.Start), io.SeekStart); err != nil {
		return err
	}
	n1, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return err
	}
	if _, err := wire.ReadUint(r.sink, 8); err != nil {
		return err
	}
	paths, err := readCompressedI32(r.sink, int(n1))
	if err != nil {
		return err
	}
	tokens, err := readCompressedI32(r.sink, int(n1))
	if err != nil {
		return err
	}
	jumps, err := readCompressedI32(r.sink, int(n1))
	if err != nil {
		return err
	}
	r.paths = make([]pathEntry, n1)
	for i := range r.paths {
		r.paths[i] = pathEntry{pathIndex: paths[i], token: tokens[i], jump: jumps[i]}
	}

	return nil
}

func (r *Reader) readSpecsSection(e format.TOCEntry) error {
	if e.Size == 0 {
		return nil
	}
	if _, err := r.sink.Seek(int64(e.Start), io.SeekStart); err != nil {
		return err
	}
	count, err := wire.ReadUint(r.sink, 8)
	if err != nil {
		return err
	}
	paths, err := readCompressedI32(r.sink, int(count))
	if err != nil {
		return err
	}
	fsets, err := readCompressedI32(r.sink, int(count))
	if err != nil {
		return err
	}
	types, err := readCompressedI32(r.sink, int(count))
	if err != nil {
		return err
	}
	r.specs = make([]specEntry, count)
	for i := range r.specs {
		r.specs[i] = specEntry{path: paths[i], fset: fsets[i], specType: format.SpecType(types[i])}
	}

	return nil
}

// NumFields returns the number of distinct fields in the field table.
func (r *Reader) NumFields() int { return r.fields.Len() }

// FieldName returns the name of the field at index.
func (r *Reader) FieldName(index int) string {
	return r.tokens.At(r.fields.Names()[index])
}

// Field decodes the value of the field at index.
func (r *Reader) Field(index int) (FieldValue, error) {
	return r.decodeRep(r.fields.Reps()[index])
}

// FieldSet returns the field indices belonging to the field set starting
// at offset, stopping at the -1 sentinel (spec.md §4.3).
func (r *Reader) FieldSet(offset int) []int {
	var out []int
	for i := offset; i < len(r.fsets) && r.fsets[i] >= 0; i++ {
		out = append(out, int(r.fsets[i]))
	}

	return out
}

// NumSpecs returns the number of Specs in the SPECS section.
func (r *Reader) NumSpecs() int { return len(r.specs) }

// Spec returns the field-set offset and spec type of the spec at index.
func (r *Reader) Spec(index int) (fieldSetOffset int, specType format.SpecType) {
	s := r.specs[index]

	return int(s.fset), s.specType
}

// NumPaths returns the number of entries in the PATHS section.
func (r *Reader) NumPaths() int { return len(r.paths) }

// Path returns the (path-index, name-token, jump, isPrim) tuple at index,
// undoing the sign used to flag isPrim.
func (r *Reader) Path(index int) (pathIndex, token, jump int32, isPrim bool) {
	p := r.paths[index]
	if p.token < 0 {
		return p.pathIndex, -p.token, p.jump, true
	}

	return p.pathIndex, p.token, p.jump, false
}

// TokenAt returns the interned token string at the given absolute index.
func (r *Reader) TokenAt(index int32) string { return r.tokens.At(index) }
