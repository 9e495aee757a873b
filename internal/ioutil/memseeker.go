package ioutil

import (
	"errors"
	"io"
)

// MemorySeeker is an in-memory io.ReadWriteSeeker backed by a growable
// byte slice. It exists because the writer (internal/writer) requires
// a seekable sink to back-patch headers, and tests need a lightweight
// stand-in for a real file without touching the filesystem.
type MemorySeeker struct {
	buf []byte
	pos int64
}

// NewMemorySeeker returns an empty MemorySeeker.
func NewMemorySeeker() *MemorySeeker {
	return &MemorySeeker{}
}

// Bytes returns the full backing buffer, regardless of the current
// seek position.
func (m *MemorySeeker) Bytes() []byte {
	return m.buf
}

func (m *MemorySeeker) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemorySeeker) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.pos:end], p)
	m.pos = end
	return n, nil
}

// Seek implements io.Seeker. SeekEnd and SeekCurrent/SeekStart are all
// supported; seeking before the start of the buffer is an error.
func (m *MemorySeeker) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, errors.New("ioutil: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("ioutil: negative seek position")
	}
	m.pos = next
	return next, nil
}
