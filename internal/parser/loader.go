package parser

import (
	"io"
	"unicode/utf8"

	"github.com/scigolib/fbxcel/internal/lowlevel"
)

// Loader receives one decoded attribute value and produces the
// caller's chosen output. A loader accepts zero or more of the thirteen
// wire types; for every type it does not accept, the default behavior
// (via unimplementedLoader) is to fail with UnexpectedAttributeError.
type Loader interface {
	// Expecting describes, for error messages, what this loader accepts.
	Expecting() string

	LoadBool(v bool) error
	LoadI16(v int16) error
	LoadI32(v int32) error
	LoadI64(v int64) error
	LoadF32(v float32) error
	LoadF64(v float64) error

	LoadSeqBool(seq *ArraySequence[bool], n int) error
	LoadSeqI32(seq *ArraySequence[int32], n int) error
	LoadSeqI64(seq *ArraySequence[int64], n int) error
	LoadSeqF32(seq *ArraySequence[float32], n int) error
	LoadSeqF64(seq *ArraySequence[float64], n int) error

	LoadBinary(r io.Reader, n uint32) error
	LoadString(r io.Reader, n uint32) error
}

// unimplementedLoader gives every Loader method a default
// UnexpectedAttributeError behavior; concrete loaders embed it and
// override only the methods their output type accepts.
type unimplementedLoader struct {
	expecting string
}

func (u unimplementedLoader) Expecting() string { return u.expecting }

func (u unimplementedLoader) unexpected(actual string) error {
	return &UnexpectedAttributeError{Expected: u.expecting, Actual: actual}
}

func (u unimplementedLoader) LoadBool(bool) error { return u.unexpected("bool") }
func (u unimplementedLoader) LoadI16(int16) error { return u.unexpected("i16") }
func (u unimplementedLoader) LoadI32(int32) error { return u.unexpected("i32") }
func (u unimplementedLoader) LoadI64(int64) error { return u.unexpected("i64") }
func (u unimplementedLoader) LoadF32(float32) error { return u.unexpected("f32") }
func (u unimplementedLoader) LoadF64(float64) error { return u.unexpected("f64") }

func (u unimplementedLoader) LoadSeqBool(*ArraySequence[bool], int) error { return u.unexpected("array<bool>") }
func (u unimplementedLoader) LoadSeqI32(*ArraySequence[int32], int) error { return u.unexpected("array<i32>") }
func (u unimplementedLoader) LoadSeqI64(*ArraySequence[int64], int) error { return u.unexpected("array<i64>") }
func (u unimplementedLoader) LoadSeqF32(*ArraySequence[float32], int) error { return u.unexpected("array<f32>") }
func (u unimplementedLoader) LoadSeqF64(*ArraySequence[float64], int) error { return u.unexpected("array<f64>") }

func (u unimplementedLoader) LoadBinary(io.Reader, uint32) error { return u.unexpected("binary") }
func (u unimplementedLoader) LoadString(io.Reader, uint32) error { return u.unexpected("string") }

// TypeOnlyLoader discards the value and records which wire type was
// seen; useful for callers that only want to know an attribute's shape.
type TypeOnlyLoader struct {
	unimplementedLoader
	Seen lowlevel.AttributeType
}

// NewTypeOnlyLoader builds a loader that accepts every wire type.
func NewTypeOnlyLoader() *TypeOnlyLoader {
	return &TypeOnlyLoader{unimplementedLoader: unimplementedLoader{expecting: "any attribute (type only)"}}
}

func (l *TypeOnlyLoader) LoadBool(bool) error { l.Seen = lowlevel.AttrBool; return nil }
func (l *TypeOnlyLoader) LoadI16(int16) error { l.Seen = lowlevel.AttrI16; return nil }
func (l *TypeOnlyLoader) LoadI32(int32) error { l.Seen = lowlevel.AttrI32; return nil }
func (l *TypeOnlyLoader) LoadI64(int64) error { l.Seen = lowlevel.AttrI64; return nil }
func (l *TypeOnlyLoader) LoadF32(float32) error { l.Seen = lowlevel.AttrF32; return nil }
func (l *TypeOnlyLoader) LoadF64(float64) error { l.Seen = lowlevel.AttrF64; return nil }

func (l *TypeOnlyLoader) LoadSeqBool(s *ArraySequence[bool], n int) error {
	l.Seen = lowlevel.AttrArrBool
	return drainSequenceErr(s)
}
func (l *TypeOnlyLoader) LoadSeqI32(s *ArraySequence[int32], n int) error {
	l.Seen = lowlevel.AttrArrI32
	return drainSequenceErr(s)
}
func (l *TypeOnlyLoader) LoadSeqI64(s *ArraySequence[int64], n int) error {
	l.Seen = lowlevel.AttrArrI64
	return drainSequenceErr(s)
}
func (l *TypeOnlyLoader) LoadSeqF32(s *ArraySequence[float32], n int) error {
	l.Seen = lowlevel.AttrArrF32
	return drainSequenceErr(s)
}
func (l *TypeOnlyLoader) LoadSeqF64(s *ArraySequence[float64], n int) error {
	l.Seen = lowlevel.AttrArrF64
	return drainSequenceErr(s)
}

func (l *TypeOnlyLoader) LoadBinary(r io.Reader, n uint32) error {
	l.Seen = lowlevel.AttrBinary
	_, err := io.Copy(io.Discard, io.LimitReader(r, int64(n)))
	return err
}
func (l *TypeOnlyLoader) LoadString(r io.Reader, n uint32) error {
	l.Seen = lowlevel.AttrString
	_, err := io.Copy(io.Discard, io.LimitReader(r, int64(n)))
	return err
}

// DirectLoader accepts every wire type and yields a sum-typed
// AttributeValue; this is what the tree loader uses to store
// attributes verbatim.
type DirectLoader struct {
	unimplementedLoader
	Value AttributeValue
}

// NewDirectLoader builds a loader that accepts every wire type.
func NewDirectLoader() *DirectLoader {
	return &DirectLoader{unimplementedLoader: unimplementedLoader{expecting: "any attribute"}}
}

func (l *DirectLoader) LoadBool(v bool) error { l.Value = AttributeValue{Type: lowlevel.AttrBool, Bool: v}; return nil }
func (l *DirectLoader) LoadI16(v int16) error { l.Value = AttributeValue{Type: lowlevel.AttrI16, I16: v}; return nil }
func (l *DirectLoader) LoadI32(v int32) error { l.Value = AttributeValue{Type: lowlevel.AttrI32, I32: v}; return nil }
func (l *DirectLoader) LoadI64(v int64) error { l.Value = AttributeValue{Type: lowlevel.AttrI64, I64: v}; return nil }
func (l *DirectLoader) LoadF32(v float32) error { l.Value = AttributeValue{Type: lowlevel.AttrF32, F32: v}; return nil }
func (l *DirectLoader) LoadF64(v float64) error { l.Value = AttributeValue{Type: lowlevel.AttrF64, F64: v}; return nil }

func (l *DirectLoader) LoadSeqBool(s *ArraySequence[bool], n int) error {
	vals := make([]bool, 0, n)
	for {
		v, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		vals = append(vals, v)
	}
	l.Value = AttributeValue{Type: lowlevel.AttrArrBool, ArrBool: vals}
	return nil
}

func (l *DirectLoader) LoadSeqI32(s *ArraySequence[int32], n int) error {
	vals := make([]int32, 0, n)
	for {
		v, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		vals = append(vals, v)
	}
	l.Value = AttributeValue{Type: lowlevel.AttrArrI32, ArrI32: vals}
	return nil
}

func (l *DirectLoader) LoadSeqI64(s *ArraySequence[int64], n int) error {
	vals := make([]int64, 0, n)
	for {
		v, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		vals = append(vals, v)
	}
	l.Value = AttributeValue{Type: lowlevel.AttrArrI64, ArrI64: vals}
	return nil
}

func (l *DirectLoader) LoadSeqF32(s *ArraySequence[float32], n int) error {
	vals := make([]float32, 0, n)
	for {
		v, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		vals = append(vals, v)
	}
	l.Value = AttributeValue{Type: lowlevel.AttrArrF32, ArrF32: vals}
	return nil
}

func (l *DirectLoader) LoadSeqF64(s *ArraySequence[float64], n int) error {
	vals := make([]float64, 0, n)
	for {
		v, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		vals = append(vals, v)
	}
	l.Value = AttributeValue{Type: lowlevel.AttrArrF64, ArrF64: vals}
	return nil
}

func (l *DirectLoader) LoadBinary(r io.Reader, n uint32) error {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	l.Value = AttributeValue{Type: lowlevel.AttrBinary, Binary: buf}
	return nil
}

func (l *DirectLoader) LoadString(r io.Reader, n uint32) error {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	if !utf8.Valid(buf) {
		return ErrInvalidStringEncoding
	}
	l.Value = AttributeValue{Type: lowlevel.AttrString, String: string(buf)}
	return nil
}

// PrimitiveI32Loader accepts only a single i32 attribute.
type PrimitiveI32Loader struct {
	unimplementedLoader
	Value int32
}

// NewPrimitiveI32Loader builds a loader that accepts only i32.
func NewPrimitiveI32Loader() *PrimitiveI32Loader {
	return &PrimitiveI32Loader{unimplementedLoader: unimplementedLoader{expecting: "i32"}}
}

func (l *PrimitiveI32Loader) LoadI32(v int32) error { l.Value = v; return nil }

// PrimitiveF64Loader accepts only a single f64 attribute.
type PrimitiveF64Loader struct {
	unimplementedLoader
	Value float64
}

// NewPrimitiveF64Loader builds a loader that accepts only f64.
func NewPrimitiveF64Loader() *PrimitiveF64Loader {
	return &PrimitiveF64Loader{unimplementedLoader: unimplementedLoader{expecting: "f64"}}
}

func (l *PrimitiveF64Loader) LoadF64(v float64) error { l.Value = v; return nil }

// ArrayI32Loader accepts only an i32-array attribute, materializing it
// eagerly into a slice.
type ArrayI32Loader struct {
	unimplementedLoader
	Value []int32
}

// NewArrayI32Loader builds a loader that accepts only array<i32>.
func NewArrayI32Loader() *ArrayI32Loader {
	return &ArrayI32Loader{unimplementedLoader: unimplementedLoader{expecting: "array<i32>"}}
}

func (l *ArrayI32Loader) LoadSeqI32(s *ArraySequence[int32], n int) error {
	vals := make([]int32, 0, n)
	for {
		v, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		vals = append(vals, v)
	}
	l.Value = vals
	return nil
}

// BinaryLoader accepts only a binary attribute.
type BinaryLoader struct {
	unimplementedLoader
	Value []byte
}

// NewBinaryLoader builds a loader that accepts only binary attributes.
func NewBinaryLoader() *BinaryLoader {
	return &BinaryLoader{unimplementedLoader: unimplementedLoader{expecting: "binary"}}
}

func (l *BinaryLoader) LoadBinary(r io.Reader, n uint32) error {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	l.Value = buf
	return nil
}

// StringLoader accepts only a string attribute.
type StringLoader struct {
	unimplementedLoader
	Value string
}

// NewStringLoader builds a loader that accepts only string attributes.
func NewStringLoader() *StringLoader {
	return &StringLoader{unimplementedLoader: unimplementedLoader{expecting: "string"}}
}

func (l *StringLoader) LoadString(r io.Reader, n uint32) error {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	if !utf8.Valid(buf) {
		return ErrInvalidStringEncoding
	}
	l.Value = string(buf)
	return nil
}
