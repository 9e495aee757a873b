package fbxcel

import (
	"context"
	"io"

	"github.com/scigolib/fbxcel/internal/writer"
)

// WriterOption configures a Writer at construction time.
type WriterOption = writer.WriterOption

var (
	WithFooterUnknown1      = writer.WithFooterUnknown1
	WithForcedFooterPadding = writer.WithForcedFooterPadding
	WithFooterUnknown3      = writer.WithFooterUnknown3
)

// Re-exported writer errors.
var (
	ErrFileTooLarge          = writer.ErrFileTooLarge
	ErrTooManyAttributes     = writer.ErrTooManyAttributes
	ErrAttributeTooLong      = writer.ErrAttributeTooLong
	ErrNodeNameTooLong       = writer.ErrNodeNameTooLong
	ErrUnsupportedFbxVersion = writer.ErrUnsupportedFbxVersion
	ErrNoOpenNode            = writer.ErrNoOpenNode
	ErrAlreadyFinalized      = writer.ErrAlreadyFinalized
)

// UnclosedNodeError is returned by Writer.Finalize when one or more
// StartNode calls were never matched by EndNode.
type UnclosedNodeError = writer.UnclosedNodeError

// Writer emits a conformant FBX binary stream: a file header, a tree
// of nodes with back-patched headers, and a trailing footer.
type Writer struct {
	inner *writer.Writer
}

// NewWriter writes the FBX file header for version to w and returns a
// Writer positioned to receive top-level nodes.
func NewWriter(w io.WriteSeeker, version Version, opts ...WriterOption) (*Writer, error) {
	inner, err := writer.NewWriter(w, version, opts...)
	if err != nil {
		return nil, err
	}
	return &Writer{inner: inner}, nil
}

// Position reports the writer's current absolute stream offset.
func (w *Writer) Position() uint64 { return w.inner.Position() }

// Depth reports how many nodes are currently open.
func (w *Writer) Depth() int { return w.inner.Depth() }

// StartNode opens a new node named name as a child of the currently
// open node (or as a new top-level node if none is open).
func (w *Writer) StartNode(name string) error { return w.inner.StartNode(name) }

// EndNode closes the currently open node.
func (w *Writer) EndNode() error { return w.inner.EndNode() }

// WriteBool appends a single boolean attribute.
func (w *Writer) WriteBool(v bool) error { return w.inner.WriteBool(v) }

// WriteI16 appends a single int16 attribute.
func (w *Writer) WriteI16(v int16) error { return w.inner.WriteI16(v) }

// WriteI32 appends a single int32 attribute.
func (w *Writer) WriteI32(v int32) error { return w.inner.WriteI32(v) }

// WriteI64 appends a single int64 attribute.
func (w *Writer) WriteI64(v int64) error { return w.inner.WriteI64(v) }

// WriteF32 appends a single float32 attribute.
func (w *Writer) WriteF32(v float32) error { return w.inner.WriteF32(v) }

// WriteF64 appends a single float64 attribute.
func (w *Writer) WriteF64(v float64) error { return w.inner.WriteF64(v) }

// WriteArrayBool appends a boolean array attribute, zlib-compressing
// its payload when compress is true.
func (w *Writer) WriteArrayBool(vals []bool, compress bool) error {
	return w.inner.WriteArrayBool(vals, compress)
}

// WriteArrayI32 appends an int32 array attribute.
func (w *Writer) WriteArrayI32(vals []int32, compress bool) error {
	return w.inner.WriteArrayI32(vals, compress)
}

// WriteArrayI64 appends an int64 array attribute.
func (w *Writer) WriteArrayI64(vals []int64, compress bool) error {
	return w.inner.WriteArrayI64(vals, compress)
}

// WriteArrayF32 appends a float32 array attribute.
func (w *Writer) WriteArrayF32(vals []float32, compress bool) error {
	return w.inner.WriteArrayF32(vals, compress)
}

// WriteArrayF64 appends a float64 array attribute.
func (w *Writer) WriteArrayF64(vals []float64, compress bool) error {
	return w.inner.WriteArrayF64(vals, compress)
}

// WriteBinary appends a binary attribute.
func (w *Writer) WriteBinary(data []byte) error { return w.inner.WriteBinary(data) }

// WriteString appends a string attribute.
func (w *Writer) WriteString(s string) error { return w.inner.WriteString(s) }

// Finalize closes the implicit root (failing if any node is still
// open) and writes the trailing footer. ctx is checked once before the
// call is dispatched, matching Parser.NextEvent's cancellation contract.
func (w *Writer) Finalize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.inner.Finalize()
}
