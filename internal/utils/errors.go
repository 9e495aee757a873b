// Package utils provides shared low-level helpers for the FBX codec:
// buffer pooling, contextual errors, and overflow-checked arithmetic.
package utils

import "fmt"

// Kind classifies an FBXError into one of the four buckets the codec
// distinguishes: Data (wire-format violation), IO (passthrough from the
// byte source), Operation (API misuse), and Warning (recoverable anomaly
// routed through a caller-installed handler).
type Kind int

const (
	KindData Kind = iota
	KindIO
	KindOperation
	KindWarning
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindIO:
		return "io"
	case KindOperation:
		return "operation"
	case KindWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Position is the syntactic position attached to an error: the absolute
// byte offset, the start of the enclosing record, the ancestor node-name
// path from the root, and (for attribute-scoped errors) the attribute
// index within its node.
type Position struct {
	BytePos          uint64
	ComponentBytePos uint64
	NodePath         []string
	AttributeIndex   *int
}

func (p *Position) String() string {
	if p == nil {
		return ""
	}
	if p.AttributeIndex != nil {
		return fmt.Sprintf("pos=%d component=%d path=%v attr=%d",
			p.BytePos, p.ComponentBytePos, p.NodePath, *p.AttributeIndex)
	}
	return fmt.Sprintf("pos=%d component=%d path=%v", p.BytePos, p.ComponentBytePos, p.NodePath)
}

// FBXError is a structured, kind-tagged FBX codec error.
type FBXError struct {
	Kind    Kind
	Context string
	Cause   error
	Pos     *Position
}

// Error implements the error interface.
func (e *FBXError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %v (%s)", e.Context, e.Cause, e.Pos.String())
	}
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *FBXError) Unwrap() error {
	return e.Cause
}

// NewError builds a kind-tagged FBXError, optionally carrying a
// syntactic position.
func NewError(kind Kind, context string, cause error, pos *Position) error {
	if cause == nil {
		return nil
	}
	return &FBXError{Kind: kind, Context: context, Cause: cause, Pos: pos}
}

// WrapError wraps cause with context and tags it KindIO. Used for ad hoc
// contextual wrapping where the caller does not choose a kind itself
// (e.g. failed writes or seeks on the underlying sink).
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &FBXError{Kind: KindIO, Context: context, Cause: cause}
}
