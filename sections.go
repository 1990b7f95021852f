package crate

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/usdcrate/errs"
	"github.com/arloliu/usdcrate/format"
	"github.com/arloliu/usdcrate/internal/wire"
)

// writeBootHeader writes the 88-byte boot header at offset 0: magic,
// version, the table-of-contents offset, and 64 bytes of reserved padding
// (spec.md §4.1, §4.7).
func writeBootHeader(sink wire.Sink, tocOffset uint64) error {
	if _, err := sink.Seek(0, 0); err != nil {
		return err
	}
	if _, err := sink.Write([]byte(format.Magic)); err != nil {
		return err
	}
	if err := wire.WriteUint(sink, 0, 1); err != nil {
		return err
	}
	if err := wire.WriteUint(sink, uint64(format.VersionMinor), 1); err != nil {
		return err
	}
	if err := wire.WriteUint(sink, 0, 6); err != nil {
		return err
	}
	if err := wire.WriteUint(sink, tocOffset, 8); err != nil {
		return err
	}

	return wire.WriteUint(sink, 0, 64)
}

type tocEntry struct {
	name  string
	start int64
	size  int64
}

// sectionStart returns the current file offset so callers can record it as
// a TOC entry's start.
func (w *Writer) sectionStart() (int64, error) {
	return w.offset()
}

func (w *Writer) sectionSize(start int64) (int64, error) {
	end, err := w.offset()
	if err != nil {
		return 0, err
	}

	return end - start, nil
}

func (w *Writer) writeTokensSection() (tocEntry, error) {
	start, err := w.sectionStart()
	if err != nil {
		return tocEntry{}, err
	}

	tokens := w.tokens.List()
	if err := wire.WriteUint(w.sink, uint64(len(tokens)), 8); err != nil {
		return tocEntry{}, err
	}

	var buf []byte
	for _, tok := range tokens {
		buf = append(buf, tok...)
		buf = append(buf, 0)
	}
	if err := wire.WriteUint(w.sink, uint64(len(buf)), 8); err != nil {
		return tocEntry{}, err
	}
	packed, err := lz4.Compress(buf)
	if err != nil {
		return tocEntry{}, err
	}
	if err := wire.WriteUint(w.sink, uint64(len(packed)), 8); err != nil {
		return tocEntry{}, err
	}
	if _, err := w.sink.Write(packed); err != nil {
		return tocEntry{}, err
	}

	size, err := w.sectionSize(start)

	return tocEntry{name: format.SectionTokens, start: start, size: size}, err
}

// writeStringsSection writes the reserved-but-currently-unused STRINGS
// section: an 8-byte zero count and nothing else (spec.md §4.2).
func (w *Writer) writeStringsSection() (tocEntry, error) {
	start, err := w.sectionStart()
	if err != nil {
		return tocEntry{}, err
	}
	if err := wire.WriteUint(w.sink, 0, 8); err != nil {
		return tocEntry{}, err
	}
	size, err := w.sectionSize(start)

	return tocEntry{name: format.SectionStrings, start: start, size: size}, err
}

func writeCompressedRepWords(w *Writer, reps []format.Rep) error {
	buf := make([]byte, 8*len(reps))
	for i, r := range reps {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(r))
	}
	packed, err := lz4.Compress(buf)
	if err != nil {
		return err
	}
	if err := wire.WriteUint(w.sink, uint64(len(packed)), 8); err != nil {
		return err
	}
	_, err = w.sink.Write(packed)

	return err
}

func (w *Writer) writeFieldsSection() (tocEntry, error) {
	start, err := w.sectionStart()
	if err != nil {
		return tocEntry{}, err
	}
	names := w.fields.Names()
	if err := wire.WriteUint(w.sink, uint64(len(names)), 8); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedI32(w.sink, names); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedRepWords(w, w.fields.Reps()); err != nil {
		return tocEntry{}, err
	}
	size, err := w.sectionSize(start)

	return tocEntry{name: format.SectionFields, start: start, size: size}, err
}

func (w *Writer) writeFieldSetsSection() (tocEntry, error) {
	start, err := w.sectionStart()
	if err != nil {
		return tocEntry{}, err
	}
	if err := wire.WriteUint(w.sink, uint64(len(w.fsets)), 8); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedI32(w.sink, w.fsets); err != nil {
		return tocEntry{}, err
	}
	size, err := w.sectionSize(start)

	return tocEntry{name: format.SectionFieldSets, start: start, size: size}, err
}

func (w *Writer) writePathsSection() (tocEntry, error) {
	start, err := w.sectionStart()
	if err != nil {
		return tocEntry{}, err
	}
	n := len(w.paths)
	paths := make([]int32, n)
	tokens := make([]int32, n)
	jumps := make([]int32, n)
	for i, p := range w.paths {
		paths[i] = p.pathIndex
		tokens[i] = p.token
		jumps[i] = p.jump
	}
	if err := wire.WriteUint(w.sink, uint64(n), 8); err != nil {
		return tocEntry{}, err
	}
	if err := wire.WriteUint(w.sink, uint64(n), 8); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedI32(w.sink, paths); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedI32(w.sink, tokens); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedI32(w.sink, jumps); err != nil {
		return tocEntry{}, err
	}
	size, err := w.sectionSize(start)

	return tocEntry{name: format.SectionPaths, start: start, size: size}, err
}

func (w *Writer) writeSpecsSection() (tocEntry, error) {
	start, err := w.sectionStart()
	if err != nil {
		return tocEntry{}, err
	}
	n := len(w.specs)
	paths := make([]int32, n)
	fsets := make([]int32, n)
	types := make([]int32, n)
	for i, s := range w.specs {
		paths[i] = s.path
		fsets[i] = s.fset
		types[i] = int32(s.specType)
	}
	if err := wire.WriteUint(w.sink, uint64(n), 8); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedI32(w.sink, paths); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedI32(w.sink, fsets); err != nil {
		return tocEntry{}, err
	}
	if err := writeCompressedI32(w.sink, types); err != nil {
		return tocEntry{}, err
	}
	size, err := w.sectionSize(start)

	return tocEntry{name: format.SectionSpecs, start: start, size: size}, err
}

// WriteSections writes the six sections, in order, immediately following
// whatever field/path/spec payload bytes AddField/AddPath/AddSpec have
// already appended. Call it once, after all fields, paths, field sets, and
// specs have been registered, and before WriteTableOfContents.
func (w *Writer) WriteSections() error {
	writers := []func() (tocEntry, error){
		w.writeTokensSection,
		w.writeStringsSection,
		w.writeFieldsSection,
		w.writeFieldSetsSection,
		w.writePathsSection,
		w.writeSpecsSection,
	}
	for _, fn := range writers {
		entry, err := fn()
		if err != nil {
			return err
		}
		w.toc = append(w.toc, entry)
	}

	return nil
}

// WriteTableOfContents writes the TOC at the current offset, then
// back-patches the boot header with that offset. Call it once, after
// WriteSections, to finish the file (spec.md §4.7).
func (w *Writer) WriteTableOfContents() error {
	if len(w.toc) != len(format.SectionOrder) {
		return fmt.Errorf("%w: WriteTableOfContents called before WriteSections", errs.ErrMalformedHeader)
	}

	tocStart, err := w.offset()
	if err != nil {
		return err
	}
	if err := wire.WriteUint(w.sink, uint64(len(w.toc)), 8); err != nil {
		return err
	}
	for _, e := range w.toc {
		name := make([]byte, format.SectionNameSize)
		copy(name, e.name)
		if _, err := w.sink.Write(name); err != nil {
			return err
		}
		if err := wire.WriteUint(w.sink, uint64(e.start), 8); err != nil {
			return err
		}
		if err := wire.WriteUint(w.sink, uint64(e.size), 8); err != nil {
			return err
		}
	}

	return writeBootHeader(w.sink, uint64(tocStart))
}
