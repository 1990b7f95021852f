// Package errs collects the sentinel errors a crate reader or writer can
// return, one per failure class in spec.md §7. Callers compare against
// these with errors.Is; call sites wrap them with fmt.Errorf("...: %w", ...)
// to attach context.
package errs

import "errors"

var (
	// ErrTypeUnsupported is returned when a caller-supplied value does not
	// match any encodable ValueType.
	ErrTypeUnsupported = errors.New("crate: unsupported value type")

	// ErrShortRead is returned when a section or the file ends before the
	// expected number of bytes could be read.
	ErrShortRead = errors.New("crate: short read")

	// ErrMalformedHeader is returned for a bad magic, an unsupported
	// version, or a TOC offset outside the file.
	ErrMalformedHeader = errors.New("crate: malformed boot header")

	// ErrMalformedRepresentation is returned when a representation word's
	// type tag falls outside the enumerated range, or INLINE is set on a
	// type that is never inline.
	ErrMalformedRepresentation = errors.New("crate: malformed representation word")

	// ErrCompressionFailure is returned when LZ4 or the USD int32 codec
	// fails to inflate a buffer, or the inflated size is inconsistent.
	ErrCompressionFailure = errors.New("crate: compression failure")

	// ErrPayloadMismatch is returned when an array's declared count
	// contradicts the number of remaining bytes available to satisfy it.
	ErrPayloadMismatch = errors.New("crate: payload size mismatch")
)
