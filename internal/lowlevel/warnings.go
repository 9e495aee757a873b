package lowlevel

import (
	"fmt"

	"github.com/scigolib/fbxcel/internal/utils"
)

// WarningCode enumerates the recoverable anomalies the codec can raise
// (spec.md §7, "Warning" kind). A warning reaches the caller's
// installed handler; the handler may turn it into a fatal error.
type WarningCode int

const (
	WarnEmptyNodeName WarningCode = iota
	WarnExtraNodeEndMarker
	WarnIncorrectBooleanRepresentation
	WarnInvalidFooterPaddingLength
	WarnMissingNodeEndMarker
	WarnUnexpectedFooterFieldValue
)

func (c WarningCode) String() string {
	switch c {
	case WarnEmptyNodeName:
		return "EmptyNodeName"
	case WarnExtraNodeEndMarker:
		return "ExtraNodeEndMarker"
	case WarnIncorrectBooleanRepresentation:
		return "IncorrectBooleanRepresentation"
	case WarnInvalidFooterPaddingLength:
		return "InvalidFooterPaddingLength"
	case WarnMissingNodeEndMarker:
		return "MissingNodeEndMarker"
	case WarnUnexpectedFooterFieldValue:
		return "UnexpectedFooterFieldValue"
	default:
		return "Unknown"
	}
}

// Warning is a single recoverable anomaly observed while parsing, with
// an optional syntactic position attached.
type Warning struct {
	Code     WarningCode
	Expected uint64
	Actual   uint64
	HaveExpectedActual bool
	Pos      *utils.Position
}

func (w *Warning) Error() string {
	if w.HaveExpectedActual {
		return fmt.Sprintf("%s: expected %d, got %d", w.Code, w.Expected, w.Actual)
	}
	return w.Code.String()
}

// NewWarning builds a plain warning (no expected/actual pair).
func NewWarning(code WarningCode, pos *utils.Position) *Warning {
	return &Warning{Code: code, Pos: pos}
}

// NewWarningWithValues builds a warning carrying an expected/actual
// pair, such as InvalidFooterPaddingLength(expected, actual).
func NewWarningWithValues(code WarningCode, expected, actual uint64, pos *utils.Position) *Warning {
	return &Warning{Code: code, Expected: expected, Actual: actual, HaveExpectedActual: true, Pos: pos}
}

// WarningHandler receives warnings observed during parsing. Returning a
// non-nil error converts the warning into a fatal parse error and moves
// the parser to its Aborted state (spec.md §4.3).
type WarningHandler func(*Warning) error
