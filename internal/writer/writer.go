package writer

import (
	"compress/zlib"
	"io"
	"math"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/lowlevel"
	"github.com/scigolib/fbxcel/internal/utils"
)

// frame is one entry in the writer's open-node stack, mirroring the
// parser's read-side frame (spec.md §4.7).
type frame struct {
	name           string
	headerPos      uint64
	numAttributes  uint64
	attrBytesLen   uint64
	hasChild       bool
	attrsFinalized bool // bytelen_attributes already back-patched
}

// Writer emits a conformant FBX binary stream: a file header, a tree
// of nodes with back-patched headers, and a footer. It holds exactly
// the state a single linear write pass needs -- an open-node stack and
// the current stream position -- and requires an io.WriteSeeker so it
// can seek backward to patch a header after its body has been written.
type Writer struct {
	sink    io.WriteSeeker
	version lowlevel.Version
	wide    bool
	pos     uint64

	stack     []frame
	regions   regionTracker
	opts      writerOptions
	finalized bool
}

type writerOptions struct {
	unknown1        *[16]byte
	forcePaddingLen *uint8
	unknown3        *[16]byte
}

// WriterOption configures a Writer at construction time.
type WriterOption func(*writerOptions)

// WithFooterUnknown1 overrides the footer's first 16-byte field,
// otherwise defaulted to the documented high-nibble pattern.
func WithFooterUnknown1(v [16]byte) WriterOption {
	return func(o *writerOptions) { o.unknown1 = &v }
}

// WithForcedFooterPadding forces the footer's alignment padding to an
// exact length (0-15), overriding the computed `(-position) mod 16`.
// Intended for boundary tests.
func WithForcedFooterPadding(n uint8) WriterOption {
	return func(o *writerOptions) { o.forcePaddingLen = &n }
}

// WithFooterUnknown3 overrides the footer's fixed 16-byte trailer.
func WithFooterUnknown3(v [16]byte) WriterOption {
	return func(o *writerOptions) { o.unknown3 = &v }
}

// NewWriter writes the FBX file header for version to sink and returns
// a Writer positioned to receive top-level nodes.
func NewWriter(sink io.WriteSeeker, version lowlevel.Version, opts ...WriterOption) (*Writer, error) {
	if err := version.Validate(); err != nil {
		return nil, utils.NewError(utils.KindOperation, "validate FBX version", ErrUnsupportedFbxVersion, nil)
	}

	w := &Writer{sink: sink, version: version, wide: version.IsWide()}
	for _, o := range opts {
		o(&w.opts)
	}

	if err := lowlevel.WriteHeader(w, lowlevel.Header{Version: version}); err != nil {
		return nil, err
	}
	return w, nil
}

// Write implements io.Writer over the underlying sink, tracking the
// writer's current stream position as a side effect. It is exported so
// it can serve as the zlib sink for compressed array attributes.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.sink.Write(p)
	w.pos += uint64(n)
	return n, err
}

func (w *Writer) seekTo(target uint64) error {
	if _, err := w.sink.Seek(int64(target), io.SeekStart); err != nil {
		return utils.WrapError("seek writer sink", err)
	}
	w.pos = target
	return nil
}

// Position reports the writer's current absolute stream offset.
func (w *Writer) Position() uint64 {
	return w.pos
}

// Depth reports how many nodes are currently open.
func (w *Writer) Depth() int {
	return len(w.stack)
}

func (w *Writer) topFrame() (*frame, error) {
	if len(w.stack) == 0 {
		return nil, ErrNoOpenNode
	}
	return &w.stack[len(w.stack)-1], nil
}

// StartNode opens a new node named name as a child of the currently
// open node (or as a new top-level node if none is open), writing a
// placeholder header and the name immediately.
func (w *Writer) StartNode(name string) error {
	if w.finalized {
		return ErrAlreadyFinalized
	}
	if !utils.FitsUint8(len(name)) {
		return ErrNodeNameTooLong
	}

	if len(w.stack) > 0 {
		parent := &w.stack[len(w.stack)-1]
		parent.hasChild = true
		if !parent.attrsFinalized {
			if err := w.patchBytelenAttributes(parent); err != nil {
				return err
			}
		}
	}

	headerPos := w.pos
	if _, err := w.Write(make([]byte, lowlevel.NodeHeaderSize(w.wide))); err != nil {
		return utils.WrapError("write node header placeholder", err)
	}
	if _, err := w.Write([]byte(name)); err != nil {
		return utils.WrapError("write node name", err)
	}

	w.stack = append(w.stack, frame{name: name, headerPos: headerPos})
	return nil
}

// patchBytelenAttributes seeks back to f's bytelen_attributes field
// and writes its final value, then returns to the writer's current
// position. Called once per node, either when its first child opens or
// when it closes without children (spec.md §4.7).
func (w *Writer) patchBytelenAttributes(f *frame) error {
	cur := w.pos
	fieldOffset := uint64(2) * widthBytes(w.wide)
	if err := w.seekTo(f.headerPos + fieldOffset); err != nil {
		return err
	}
	pw := ioutil.NewPrimitiveWriter(w)
	var err error
	if w.wide {
		err = pw.WriteI64(int64(f.attrBytesLen))
	} else {
		if !utils.FitsUint32(f.attrBytesLen) {
			return ErrAttributeTooLong
		}
		err = pw.WriteI32(int32(uint32(f.attrBytesLen)))
	}
	if err != nil {
		return utils.WrapError("patch bytelen_attributes", err)
	}
	f.attrsFinalized = true
	return w.seekTo(cur)
}

func widthBytes(wide bool) uint64 {
	if wide {
		return 8
	}
	return 4
}

// EndNode closes the currently open node: it back-patches the node's
// full header (end_offset, num_attributes, bytelen_attributes,
// bytelen_name) and, per the node-close policy, writes a terminal
// node-end marker iff the node has at least one child or zero
// attributes.
func (w *Writer) EndNode() error {
	if w.finalized {
		return ErrAlreadyFinalized
	}
	top, err := w.topFrame()
	if err != nil {
		return err
	}

	if !top.attrsFinalized {
		if err := w.patchBytelenAttributes(top); err != nil {
			return err
		}
	}

	markerWritten := top.hasChild || top.numAttributes == 0
	if markerWritten {
		if _, err := w.Write(make([]byte, lowlevel.NodeHeaderSize(w.wide))); err != nil {
			return utils.WrapError("write node-end marker", err)
		}
	}

	endOffset := w.pos
	if !w.wide && !utils.FitsUint32(endOffset) {
		return ErrFileTooLarge
	}

	cur := w.pos
	if err := w.seekTo(top.headerPos); err != nil {
		return err
	}
	if err := lowlevel.WriteNodeHeader(w, lowlevel.NodeHeader{
		EndOffset:         endOffset,
		NumAttributes:     top.numAttributes,
		BytelenAttributes: top.attrBytesLen,
		BytelenName:       uint8(len(top.name)),
	}, w.wide); err != nil {
		return err
	}
	if err := w.seekTo(cur); err != nil {
		return err
	}

	// Track only the bytes this node wrote itself (header, name and
	// attributes, then its end marker); each child tracks its own.
	headerSize := uint64(lowlevel.NodeHeaderSize(w.wide))
	w.regions.track(top.headerPos, headerSize+uint64(len(top.name))+top.attrBytesLen)
	if markerWritten {
		w.regions.track(endOffset-headerSize, headerSize)
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

func (w *Writer) recordAttribute(f *frame, byteLen uint64) error {
	f.numAttributes++
	if !w.wide && !utils.FitsUint32(f.numAttributes) {
		return ErrTooManyAttributes
	}
	f.attrBytesLen += byteLen
	if !w.wide && !utils.FitsUint32(f.attrBytesLen) {
		return ErrAttributeTooLong
	}
	return nil
}

func (w *Writer) writeSingle(code byte, byteLen uint64, write func(*ioutil.PrimitiveWriter) error) error {
	if w.finalized {
		return ErrAlreadyFinalized
	}
	top, err := w.topFrame()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte{code}); err != nil {
		return utils.WrapError("write attribute type code", err)
	}
	if err := write(ioutil.NewPrimitiveWriter(w)); err != nil {
		return utils.WrapError("write attribute value", err)
	}
	return w.recordAttribute(top, 1+byteLen)
}

// WriteBool appends a single boolean attribute, encoded as 'Y' (true)
// or 'T' (false).
func (w *Writer) WriteBool(v bool) error {
	b := byte('T')
	if v {
		b = 'Y'
	}
	return w.writeSingle('C', 1, func(pw *ioutil.PrimitiveWriter) error { return pw.WriteBool(b) })
}

// WriteI16 appends a single int16 attribute.
func (w *Writer) WriteI16(v int16) error {
	return w.writeSingle('Y', 2, func(pw *ioutil.PrimitiveWriter) error { return pw.WriteI16(v) })
}

// WriteI32 appends a single int32 attribute.
func (w *Writer) WriteI32(v int32) error {
	return w.writeSingle('I', 4, func(pw *ioutil.PrimitiveWriter) error { return pw.WriteI32(v) })
}

// WriteI64 appends a single int64 attribute.
func (w *Writer) WriteI64(v int64) error {
	return w.writeSingle('L', 8, func(pw *ioutil.PrimitiveWriter) error { return pw.WriteI64(v) })
}

// WriteF32 appends a single float32 attribute.
func (w *Writer) WriteF32(v float32) error {
	return w.writeSingle('F', 4, func(pw *ioutil.PrimitiveWriter) error { return pw.WriteF32(v) })
}

// WriteF64 appends a single float64 attribute.
func (w *Writer) WriteF64(v float64) error {
	return w.writeSingle('D', 8, func(pw *ioutil.PrimitiveWriter) error { return pw.WriteF64(v) })
}

// writeArray implements the reserve-header/stream/seek-back/patch
// sequence of spec.md §4.7's "Array attribute emission": it reserves
// the 12-byte array header, streams count elements through encode
// (optionally wrapped in a zlib encoder), then seeks back to fill in
// the real header once the payload's on-wire length is known.
func (w *Writer) writeArray(code byte, count int, compress bool, encode func(io.Writer) error) error {
	if w.finalized {
		return ErrAlreadyFinalized
	}
	top, err := w.topFrame()
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte{code}); err != nil {
		return utils.WrapError("write attribute type code", err)
	}

	headerPos := w.pos
	if _, err := w.Write(make([]byte, lowlevel.ArrayHeaderSize)); err != nil {
		return utils.WrapError("write array header placeholder", err)
	}

	bodyStart := w.pos
	encoding := lowlevel.EncodingDirect
	var sink io.Writer = w
	var zw *zlib.Writer
	if compress {
		encoding = lowlevel.EncodingZlib
		zw = zlib.NewWriter(w)
		sink = zw
	}
	if err := encode(sink); err != nil {
		return utils.WrapError("encode array elements", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return utils.WrapError("close zlib array stream", err)
		}
	}

	payloadSize := w.pos - bodyStart
	if payloadSize > math.MaxUint32 {
		return ErrAttributeTooLong
	}

	endPos := w.pos
	if err := w.seekTo(headerPos); err != nil {
		return err
	}
	if err := lowlevel.WriteArrayHeader(w, lowlevel.ArrayHeader{
		Count: uint32(count), Encoding: encoding, PayloadSize: uint32(payloadSize),
	}); err != nil {
		return err
	}
	if err := w.seekTo(endPos); err != nil {
		return err
	}

	total := 1 + uint64(lowlevel.ArrayHeaderSize) + payloadSize
	return w.recordAttribute(top, total)
}

// WriteArrayBool appends a boolean array attribute, encoding each
// element as 'Y' (true) or 'T' (false).
func (w *Writer) WriteArrayBool(vals []bool, compress bool) error {
	return w.writeArray('b', len(vals), compress, func(sink io.Writer) error {
		buf := make([]byte, len(vals))
		for i, v := range vals {
			if v {
				buf[i] = 'Y'
			} else {
				buf[i] = 'T'
			}
		}
		_, err := sink.Write(buf)
		return err
	})
}

// WriteArrayI32 appends an int32 array attribute.
func (w *Writer) WriteArrayI32(vals []int32, compress bool) error {
	return w.writeArray('i', len(vals), compress, func(sink io.Writer) error {
		pw := ioutil.NewPrimitiveWriter(sink)
		for _, v := range vals {
			if err := pw.WriteI32(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteArrayI64 appends an int64 array attribute.
func (w *Writer) WriteArrayI64(vals []int64, compress bool) error {
	return w.writeArray('l', len(vals), compress, func(sink io.Writer) error {
		pw := ioutil.NewPrimitiveWriter(sink)
		for _, v := range vals {
			if err := pw.WriteI64(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteArrayF32 appends a float32 array attribute.
func (w *Writer) WriteArrayF32(vals []float32, compress bool) error {
	return w.writeArray('f', len(vals), compress, func(sink io.Writer) error {
		pw := ioutil.NewPrimitiveWriter(sink)
		for _, v := range vals {
			if err := pw.WriteF32(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteArrayF64 appends a float64 array attribute.
func (w *Writer) WriteArrayF64(vals []float64, compress bool) error {
	return w.writeArray('d', len(vals), compress, func(sink io.Writer) error {
		pw := ioutil.NewPrimitiveWriter(sink)
		for _, v := range vals {
			if err := pw.WriteF64(v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Writer) writeSpecial(code byte, data []byte) error {
	if w.finalized {
		return ErrAlreadyFinalized
	}
	if len(data) > math.MaxUint32 {
		return ErrAttributeTooLong
	}
	top, err := w.topFrame()
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte{code}); err != nil {
		return utils.WrapError("write attribute type code", err)
	}
	if err := lowlevel.WriteSpecialHeader(w, lowlevel.SpecialHeader{ByteLen: uint32(len(data))}); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return utils.WrapError("write special attribute payload", err)
	}

	return w.recordAttribute(top, 1+uint64(lowlevel.SpecialHeaderSize)+uint64(len(data)))
}

// WriteBinary appends a binary attribute.
func (w *Writer) WriteBinary(data []byte) error {
	return w.writeSpecial('R', data)
}

// WriteString appends a string attribute. data must already be valid
// UTF-8; the writer does not validate it.
func (w *Writer) WriteString(s string) error {
	return w.writeSpecial('S', []byte(s))
}

// Finalize closes the implicit root (failing if any node is still
// open) and writes the trailing footer. After a successful call the
// Writer must not be used again.
func (w *Writer) Finalize() error {
	if w.finalized {
		return ErrAlreadyFinalized
	}
	if len(w.stack) > 0 {
		return &UnclosedNodeError{Depth: len(w.stack)}
	}

	if _, err := w.Write(make([]byte, lowlevel.NodeHeaderSize(w.wide))); err != nil {
		return utils.WrapError("write implicit root terminator", err)
	}

	if err := w.regions.validateNoOverlaps(); err != nil {
		return err
	}

	opts := lowlevel.WriteFooterOptions{
		Unknown1:        w.opts.unknown1,
		ForcePaddingLen: w.opts.forcePaddingLen,
		Unknown3:        w.opts.unknown3,
	}
	if err := lowlevel.WriteFooter(w, w.version, w.pos, opts); err != nil {
		return err
	}

	w.finalized = true
	return nil
}
