// Package ioutil wraps an arbitrary byte source or sink with position
// tracking and the typed little-endian primitive reads the FBX codec
// needs. It has no knowledge of FBX semantics; internal/lowlevel and
// internal/parser build on top of it.
package ioutil

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/scigolib/fbxcel/internal/utils"
)

// ErrBackwardSkip is returned by SkipTo when the target offset is not
// strictly greater than the current position. Forward-only skip is the
// only sanctioned semantics here (see SPEC_FULL.md §11 and spec.md's
// "Open question" about the ambiguous reference skip_to implementation).
var ErrBackwardSkip = errors.New("ioutil: backward skip")

// PositionReader wraps a byte source and tracks the number of bytes
// consumed so far. Position is advanced only on completed reads, never
// on partial or failed ones, and is monotonically non-decreasing.
type PositionReader interface {
	io.Reader
	// Position returns the current absolute byte offset.
	Position() uint64
	// SkipTo advances the reader to target, which must be strictly
	// greater than Position(). Implementations that wrap a seekable
	// source seek directly; sequential sources drain the bytes.
	SkipTo(target uint64) error
}

// seekablePositionReader wraps a source that also implements io.Seeker,
// so SkipTo can seek forward instead of draining.
type seekablePositionReader struct {
	r   io.ReadSeeker
	pos uint64
}

// sequentialPositionReader wraps a source with no seek capability;
// SkipTo reads the intervening bytes into a discard sink.
type sequentialPositionReader struct {
	r   io.Reader
	pos uint64
}

// NewPositionReader wraps r, choosing the seekable variant automatically
// when r implements io.Seeker.
func NewPositionReader(r io.Reader) PositionReader {
	if s, ok := r.(io.ReadSeeker); ok {
		return &seekablePositionReader{r: s}
	}
	return &sequentialPositionReader{r: r}
}

func advance(pos uint64, n int) uint64 {
	if n <= 0 {
		return pos
	}
	next := pos + uint64(n)
	if next < pos {
		panic("ioutil: position overflow")
	}
	return next
}

func (p *seekablePositionReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.pos = advance(p.pos, n)
	return n, err
}

func (p *seekablePositionReader) Position() uint64 {
	return p.pos
}

func (p *seekablePositionReader) SkipTo(target uint64) error {
	if target <= p.pos {
		return ErrBackwardSkip
	}
	delta := target - p.pos
	if delta > math.MaxInt64 {
		return fmt.Errorf("ioutil: skip delta %d exceeds int64 range", delta)
	}
	if _, err := p.r.Seek(int64(delta), io.SeekCurrent); err != nil {
		return utils.WrapError("seek forward", err)
	}
	p.pos = target
	return nil
}

func (p *sequentialPositionReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.pos = advance(p.pos, n)
	return n, err
}

func (p *sequentialPositionReader) Position() uint64 {
	return p.pos
}

func (p *sequentialPositionReader) SkipTo(target uint64) error {
	if target <= p.pos {
		return ErrBackwardSkip
	}
	remaining := target - p.pos
	n, err := io.CopyN(io.Discard, p.r, int64(remaining))
	p.pos = advance(p.pos, int(n))
	if err != nil {
		return utils.WrapError("drain to target offset", err)
	}
	return nil
}
