package lowlevel

import (
	"io"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/utils"
)

// NodeHeader is a node's fixed-size preamble: the absolute offset of
// its terminator, its attribute count and byte length, and the length
// of the name that immediately follows it. Before FBX 7500 the three
// offset/length fields are 32-bit on the wire; at/after 7500 they are
// 64-bit. This type always holds the widened (uint64) values -- the
// version-dependent width is a read/write-time concern only, selected
// by the wide flag that the parser and writer compute once at
// construction from the file version; the primitive reads themselves
// never branch on version.
type NodeHeader struct {
	EndOffset         uint64
	NumAttributes     uint64
	BytelenAttributes uint64
	BytelenName       uint8
}

// IsNodeEnd reports whether h is the all-zero sentinel terminating a
// sibling list.
func (h NodeHeader) IsNodeEnd() bool {
	return h.EndOffset == 0 && h.NumAttributes == 0 && h.BytelenAttributes == 0 && h.BytelenName == 0
}

// NodeEndMarker returns the node-end sentinel value.
func NodeEndMarker() NodeHeader {
	return NodeHeader{}
}

// ReadNodeHeader reads a node header whose field width is selected by
// wide (true for FBX >= 7500).
func ReadNodeHeader(r io.Reader, wide bool) (NodeHeader, error) {
	prim := ioutil.NewPrimitiveReader(r)

	var endOffset, numAttrs, bytelenAttrs uint64
	var err error

	if wide {
		if endOffset, err = prim.ReadU64(); err != nil {
			return NodeHeader{}, err
		}
		if numAttrs, err = prim.ReadU64(); err != nil {
			return NodeHeader{}, err
		}
		if bytelenAttrs, err = prim.ReadU64(); err != nil {
			return NodeHeader{}, err
		}
	} else {
		var e32, n32, b32 uint32
		if e32, err = prim.ReadU32(); err != nil {
			return NodeHeader{}, err
		}
		if n32, err = prim.ReadU32(); err != nil {
			return NodeHeader{}, err
		}
		if b32, err = prim.ReadU32(); err != nil {
			return NodeHeader{}, err
		}
		endOffset, numAttrs, bytelenAttrs = uint64(e32), uint64(n32), uint64(b32)
	}

	bytelenName, err := prim.ReadU8()
	if err != nil {
		return NodeHeader{}, err
	}

	return NodeHeader{
		EndOffset:         endOffset,
		NumAttributes:     numAttrs,
		BytelenAttributes: bytelenAttrs,
		BytelenName:       bytelenName,
	}, nil
}

// NodeHeaderSize returns the on-wire size, in bytes, of a node header
// at the given width.
func NodeHeaderSize(wide bool) int {
	if wide {
		return 8*3 + 1
	}
	return 4*3 + 1
}

// WriteNodeHeader writes h to w using the field width selected by wide.
// Overflow of a field into the narrow (32-bit) encoding is the caller's
// responsibility to detect before calling this (internal/writer checks
// and raises FileTooLarge/TooManyAttributes/AttributeTooLong so this
// low-level encoder never silently truncates).
func WriteNodeHeader(w io.Writer, h NodeHeader, wide bool) error {
	buf := make([]byte, NodeHeaderSize(wide))

	if wide {
		putU64(buf[0:8], h.EndOffset)
		putU64(buf[8:16], h.NumAttributes)
		putU64(buf[16:24], h.BytelenAttributes)
		buf[24] = h.BytelenName
	} else {
		putU32(buf[0:4], uint32(h.EndOffset))
		putU32(buf[4:8], uint32(h.NumAttributes))
		putU32(buf[8:12], uint32(h.BytelenAttributes))
		buf[12] = h.BytelenName
	}

	if _, err := w.Write(buf); err != nil {
		return utils.WrapError("write node header", err)
	}
	return nil
}

// FitsNarrow reports whether h's three variable fields fit the 32-bit
// pre-7500 encoding.
func FitsNarrow(h NodeHeader) (endOffsetOK, numAttrsOK, bytelenAttrsOK bool) {
	return utils.FitsUint32(h.EndOffset), utils.FitsUint32(h.NumAttributes), utils.FitsUint32(h.BytelenAttributes)
}
