package parser

import (
	"errors"
	"fmt"
)

// ErrAlreadyAborted is returned by every Parser method once the parser
// has transitioned to Aborted; it is an Operation-kind error (API
// misuse), not a wire error.
var ErrAlreadyAborted = errors.New("parser: already aborted")

// ErrAlreadyFinished is returned by every Parser method once the parser
// has emitted EndOfFile.
var ErrAlreadyFinished = errors.New("parser: already finished")

// ErrInvalidNodeNameEncoding is returned when a node name is not valid
// UTF-8.
var ErrInvalidNodeNameEncoding = errors.New("parser: invalid node name encoding")

// ErrInvalidStringEncoding is returned by string-accepting loaders when
// a string attribute's bytes are not valid UTF-8.
var ErrInvalidStringEncoding = errors.New("parser: invalid string attribute encoding")

// ErrBrokenCompression is returned when an array attribute's zlib
// stream cannot be opened (its header is invalid). It does not carry the
// underlying zlib error, and errors hit later inside the compressed data
// surface from the element reads as I/O-kind errors, not as this value.
var ErrBrokenCompression = errors.New("parser: broken zlib compression")

// NodeLengthMismatchError reports that a node's declared attribute
// region did not end where the cursor expected.
type NodeLengthMismatchError struct {
	Expected uint64
	Actual   uint64
}

func (e *NodeLengthMismatchError) Error() string {
	return fmt.Sprintf("parser: node length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// UnexpectedAttributeError is returned by a built-in loader's default
// method when invoked for a wire type it does not accept.
type UnexpectedAttributeError struct {
	Expected string
	Actual   string
}

func (e *UnexpectedAttributeError) Error() string {
	return fmt.Sprintf("parser: unexpected attribute: expected %s, got %s", e.Expected, e.Actual)
}

// warnAbortError wraps the error a warning handler returned, marking it
// as having already driven the parser to Aborted (see Parser.warn).
// Call sites propagate it unchanged instead of wrapping it further, so
// the caller sees exactly the error their handler produced.
type warnAbortError struct {
	cause error
}

func (e *warnAbortError) Error() string { return e.cause.Error() }
func (e *warnAbortError) Unwrap() error { return e.cause }

// NodeAttributeError wraps an error raised while decoding one of a
// node's attributes, identifying the attribute's index within the node.
type NodeAttributeError struct {
	Index int
	Cause error
}

func (e *NodeAttributeError) Error() string {
	return fmt.Sprintf("parser: attribute %d: %v", e.Index, e.Cause)
}

func (e *NodeAttributeError) Unwrap() error {
	return e.Cause
}
