// Package fbxcel implements a pull parser, tree loader, and binary
// writer for the FBX binary interchange format (versions 7.4 and
// 7.5). It is a thin facade over internal/parser, internal/tree, and
// internal/writer -- the same shape the teacher's file.go/group.go
// present over internal/core/internal/structures.
package fbxcel

import (
	"context"
	"io"

	"github.com/scigolib/fbxcel/internal/lowlevel"
	"github.com/scigolib/fbxcel/internal/parser"
	"github.com/scigolib/fbxcel/internal/tree"
)

// Re-exported value and event types.
type (
	Event            = parser.Event
	EventKind        = parser.EventKind
	NodeStartPayload = parser.NodeStartPayload
	EndOfFilePayload = parser.EndOfFilePayload

	AttributeCursor = parser.AttributeCursor
	AttributeValue  = parser.AttributeValue
	Loader          = parser.Loader

	Footer         = lowlevel.Footer
	Version        = lowlevel.Version
	AttributeType  = lowlevel.AttributeType
	ArrayEncoding  = lowlevel.ArrayEncoding
	Warning        = lowlevel.Warning
	WarningCode    = lowlevel.WarningCode
	WarningHandler = lowlevel.WarningHandler

	ParserState = parser.State

	Tree   = tree.Tree
	Node   = tree.Node
	Symbol = tree.Symbol
)

const (
	EventNodeStart = parser.EventNodeStart
	EventNodeEnd   = parser.EventNodeEnd
	EventEndOfFile = parser.EventEndOfFile
)

const (
	StateInitial  = parser.StateInitial
	StateHealthy  = parser.StateHealthy
	StateFinished = parser.StateFinished
	StateAborted  = parser.StateAborted
)

const (
	MinSupported  = lowlevel.MinSupported
	V7400Boundary = lowlevel.V7400Boundary
)

const (
	WarnEmptyNodeName                  = lowlevel.WarnEmptyNodeName
	WarnExtraNodeEndMarker             = lowlevel.WarnExtraNodeEndMarker
	WarnIncorrectBooleanRepresentation = lowlevel.WarnIncorrectBooleanRepresentation
	WarnInvalidFooterPaddingLength     = lowlevel.WarnInvalidFooterPaddingLength
	WarnMissingNodeEndMarker           = lowlevel.WarnMissingNodeEndMarker
	WarnUnexpectedFooterFieldValue     = lowlevel.WarnUnexpectedFooterFieldValue
)

// Re-exported loader family (spec.md §4.4's "Built-in loaders").
type (
	TypeOnlyLoader     = parser.TypeOnlyLoader
	DirectLoader       = parser.DirectLoader
	PrimitiveI32Loader = parser.PrimitiveI32Loader
	PrimitiveF64Loader = parser.PrimitiveF64Loader
	ArrayI32Loader     = parser.ArrayI32Loader
	BinaryLoader       = parser.BinaryLoader
	StringLoader       = parser.StringLoader
)

var (
	NewTypeOnlyLoader     = parser.NewTypeOnlyLoader
	NewDirectLoader       = parser.NewDirectLoader
	NewPrimitiveI32Loader = parser.NewPrimitiveI32Loader
	NewPrimitiveF64Loader = parser.NewPrimitiveF64Loader
	NewArrayI32Loader     = parser.NewArrayI32Loader
	NewBinaryLoader       = parser.NewBinaryLoader
	NewStringLoader       = parser.NewStringLoader
)

// Re-exported sentinel and structured errors.
var (
	ErrMagicNotDetected        = lowlevel.ErrMagicNotDetected
	ErrBrokenFbxFooter         = lowlevel.ErrBrokenFbxFooter
	ErrAlreadyAborted          = parser.ErrAlreadyAborted
	ErrAlreadyFinished         = parser.ErrAlreadyFinished
	ErrInvalidNodeNameEncoding = parser.ErrInvalidNodeNameEncoding
	ErrInvalidStringEncoding   = parser.ErrInvalidStringEncoding
	ErrBrokenCompression       = parser.ErrBrokenCompression
)

type (
	NodeAttributeError       = parser.NodeAttributeError
	UnexpectedAttributeError = parser.UnexpectedAttributeError
	NodeLengthMismatchError  = parser.NodeLengthMismatchError
)

// ParserOption configures a Parser at construction time.
type ParserOption = parser.ParserOption

// WithWarningHandler installs the handler invoked for every recoverable
// warning a Parser observes.
func WithWarningHandler(h WarningHandler) ParserOption {
	return parser.WithWarningHandler(h)
}

// Parser is a pull parser over a single FBX binary stream, read one
// event at a time via NextEvent.
type Parser struct {
	inner *parser.Parser
}

// NewParser reads and validates the FBX header from r (magic plus
// version) and returns a Parser positioned at the first top-level
// node. It chooses the seekable position-reader variant automatically
// when r implements io.Seeker.
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	p, err := parser.NewParser(r, opts...)
	if err != nil {
		return nil, err
	}
	return &Parser{inner: p}, nil
}

// Version reports the FBX version read from the file header.
func (p *Parser) Version() Version {
	return p.inner.Version()
}

// State reports the parser's current lifecycle state.
func (p *Parser) State() ParserState {
	return p.inner.State()
}

// Position reports the underlying reader's current absolute byte
// offset.
func (p *Parser) Position() uint64 {
	return p.inner.Position()
}

// NextEvent advances the parser by exactly one event. ctx is checked
// once before the call is dispatched, honoring cancellation between
// I/O steps the way the original crate's suspendable futures do; the
// parser itself never spawns goroutines or blocks across events.
func (p *Parser) NextEvent(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	return p.inner.NextEvent()
}

// LoadTree drains a fresh parser over r into a fully materialized
// Tree, the Go-idiomatic equivalent of the original source's
// load-tree.rs example.
func LoadTree(r io.Reader, opts ...ParserOption) (*Tree, *Footer, error) {
	p, err := parser.NewParser(r, opts...)
	if err != nil {
		return nil, nil, err
	}
	t, footer, err := tree.LoadTree(p)
	if err != nil {
		return nil, nil, err
	}
	return t, &footer, nil
}
