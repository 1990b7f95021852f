package crate

import (
	"io"

	"github.com/arloliu/usdcrate/format"
	"github.com/arloliu/usdcrate/internal/dedup"
	"github.com/arloliu/usdcrate/internal/options"
	"github.com/arloliu/usdcrate/internal/wire"
)

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*Writer]

// WithTokenCapacityHint preallocates room for approximately n distinct
// tokens, avoiding map growth for scene graphs whose token count is known
// up front.
func WithTokenCapacityHint(n int) WriterOption {
	return options.NoError(func(w *Writer) {
		w.tokenCapHint = n
	})
}

type pathEntry struct {
	pathIndex int32
	token     int32
	jump      int32
}

type specEntry struct {
	path     int32
	fset     int32
	specType format.SpecType
}

// Writer assembles a crate file's six tables and writes them to sink in a
// single pass. A Writer is not safe for concurrent use; the caller must
// externally serialise access (spec.md §5).
type Writer struct {
	sink wire.Sink

	tokens *dedup.Tokens
	fields *dedup.Fields
	cache  *dedup.Cache

	fsets []int32
	paths []pathEntry
	specs []specEntry

	toc []tocEntry

	// firstTimesRef is the file offset of the first TimeSamples times
	// vector written this session, or -1 if none has been written yet
	// (spec.md §4.5 step 3).
	firstTimesRef int64

	tokenCapHint int
}

// NewWriter creates a Writer over sink, which must be empty or positioned
// at offset 0; the boot header is reserved immediately so that field and
// path payload offsets are correct relative to the final file layout.
func NewWriter(sink wire.Sink, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		sink:          sink,
		tokens:        dedup.NewTokens(),
		fields:        dedup.NewFields(),
		cache:         dedup.NewCache(),
		firstTimesRef: -1,
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}
	if w.tokenCapHint > 0 {
		w.tokens = dedup.NewTokensWithCapacity(w.tokenCapHint)
	}

	if err := writeBootHeader(sink, 0); err != nil {
		return nil, err
	}

	return w, nil
}

// InternToken interns s into the token table verbatim and returns its
// stable index. Use this for path name tokens and field names; token and
// asset field *values* are interned through AddField, which applies the
// original tool's quote/`@`-stripping behaviour first.
func (w *Writer) InternToken(s string) int32 {
	return w.tokens.Intern(s)
}

// offset returns the sink's current write position.
func (w *Writer) offset() (int64, error) {
	return w.sink.Seek(0, io.SeekCurrent)
}

// arrayCountWidth returns the length-prefix width this Writer uses for
// out-of-line arrays: every crate file it writes is format.VersionMinor,
// so this is currently always 4 (spec.md §3, §4.8).
func (w *Writer) arrayCountWidth() int {
	return format.ArrayCountWidth(format.VersionMinor)
}
