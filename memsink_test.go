package crate

import (
	"errors"
	"io"
)

// memSink is a minimal growable, seekable in-memory byte sink satisfying
// wire.Sink, used by tests in place of an *os.File.
type memSink struct {
	buf []byte
	pos int64
}

func newMemSink() *memSink { return &memSink{} }

func (m *memSink) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.pos:end], p)
	m.pos += int64(n)

	return n, nil
}

func (m *memSink) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)

	return n, nil
}

func (m *memSink) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, errors.New("memSink: invalid whence")
	}
	newPos := base + offset
	if newPos < 0 {
		return 0, errors.New("memSink: negative position")
	}
	m.pos = newPos

	return newPos, nil
}
