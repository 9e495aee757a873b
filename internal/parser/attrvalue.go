package parser

import "github.com/scigolib/fbxcel/internal/lowlevel"

// AttributeValue is a sum-typed decoded attribute value, as produced by
// the direct loader. Exactly one of the typed fields is meaningful,
// selected by Type.
type AttributeValue struct {
	Type lowlevel.AttributeType

	Bool bool
	I16  int16
	I32  int32
	I64  int64
	F32  float32
	F64  float64

	ArrBool []bool
	ArrI32  []int32
	ArrI64  []int64
	ArrF32  []float32
	ArrF64  []float64

	Binary []byte
	String string
}

// Equal reports whether a and b carry the same type and value, the
// comparison the tree loader's round-trip tests use to assert
// structural equality between two trees.
func (a AttributeValue) Equal(b AttributeValue) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case lowlevel.AttrBool:
		return a.Bool == b.Bool
	case lowlevel.AttrI16:
		return a.I16 == b.I16
	case lowlevel.AttrI32:
		return a.I32 == b.I32
	case lowlevel.AttrI64:
		return a.I64 == b.I64
	case lowlevel.AttrF32:
		return a.F32 == b.F32
	case lowlevel.AttrF64:
		return a.F64 == b.F64
	case lowlevel.AttrArrBool:
		return equalSlices(a.ArrBool, b.ArrBool)
	case lowlevel.AttrArrI32:
		return equalSlices(a.ArrI32, b.ArrI32)
	case lowlevel.AttrArrI64:
		return equalSlices(a.ArrI64, b.ArrI64)
	case lowlevel.AttrArrF32:
		return equalSlices(a.ArrF32, b.ArrF32)
	case lowlevel.AttrArrF64:
		return equalSlices(a.ArrF64, b.ArrF64)
	case lowlevel.AttrBinary:
		return equalSlices(a.Binary, b.Binary)
	case lowlevel.AttrString:
		return a.String == b.String
	default:
		return false
	}
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
