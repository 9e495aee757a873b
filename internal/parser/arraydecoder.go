package parser

import (
	"compress/zlib"
	"io"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/lowlevel"
	"github.com/scigolib/fbxcel/internal/utils"
)

// newArraySource builds the byte source an array attribute's elements
// are decoded from: the position reader directly for direct encoding,
// or a zlib decompressor wrapping it for zlib encoding. Neither variant
// knows the payload's on-wire length; the attribute cursor truncates by
// forcing the reader to next_start_offset once the loader returns,
// regardless of how much of the decoded stream it consumed.
func newArraySource(r io.Reader, encoding lowlevel.ArrayEncoding) (io.Reader, error) {
	switch encoding {
	case lowlevel.EncodingDirect:
		return r, nil
	case lowlevel.EncodingZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, utils.NewError(utils.KindData, "open zlib array stream", ErrBrokenCompression, nil)
		}
		return zr, nil
	default:
		return nil, &lowlevel.ErrInvalidArrayEncoding{Value: uint32(encoding)}
	}
}

// ArraySequence is a pull-based iterator over an array attribute's
// decoded elements. The loader may call Next fewer than Len times; the
// enclosing attribute cursor discards whatever the sequence left
// unread.
type ArraySequence[T any] struct {
	prim      *ioutil.PrimitiveReader
	remaining int
	decode    func(*ioutil.PrimitiveReader) (T, error)
}

// Len reports how many elements have not yet been pulled.
func (s *ArraySequence[T]) Len() int {
	return s.remaining
}

// Next pulls the next element. ok is false once the sequence is
// exhausted; a non-nil error indicates a decode failure (e.g. a broken
// zlib stream or a short read) and leaves the sequence exhausted.
func (s *ArraySequence[T]) Next() (value T, ok bool, err error) {
	if s.remaining == 0 {
		return value, false, nil
	}
	v, err := s.decode(s.prim)
	if err != nil {
		s.remaining = 0
		return value, false, err
	}
	s.remaining--
	return v, true, nil
}

// newBoolSequence decodes a boolean array. warnOnce, if non-nil, is
// called at most once for the whole sequence the first time an element
// byte is neither 'Y' nor 'T' (spec.md §9, boolean warning debouncing);
// a non-nil return from warnOnce aborts decoding of the sequence.
func newBoolSequence(r io.Reader, n int, warnOnce func() error) *ArraySequence[bool] {
	warned := false
	return &ArraySequence[bool]{
		prim:      ioutil.NewPrimitiveReader(r),
		remaining: n,
		decode: func(p *ioutil.PrimitiveReader) (bool, error) {
			b, err := p.ReadBool()
			if err != nil {
				return false, err
			}
			if b != 'Y' && b != 'T' && !warned {
				warned = true
				if warnOnce != nil {
					if werr := warnOnce(); werr != nil {
						return false, werr
					}
				}
			}
			return b&0x01 != 0, nil
		},
	}
}

func newI32Sequence(r io.Reader, n int) *ArraySequence[int32] {
	prim := ioutil.NewPrimitiveReader(r)
	return &ArraySequence[int32]{prim: prim, remaining: n, decode: (*ioutil.PrimitiveReader).ReadI32}
}

func newI64Sequence(r io.Reader, n int) *ArraySequence[int64] {
	prim := ioutil.NewPrimitiveReader(r)
	return &ArraySequence[int64]{prim: prim, remaining: n, decode: (*ioutil.PrimitiveReader).ReadI64}
}

func newF32Sequence(r io.Reader, n int) *ArraySequence[float32] {
	prim := ioutil.NewPrimitiveReader(r)
	return &ArraySequence[float32]{prim: prim, remaining: n, decode: (*ioutil.PrimitiveReader).ReadF32}
}

func newF64Sequence(r io.Reader, n int) *ArraySequence[float64] {
	prim := ioutil.NewPrimitiveReader(r)
	return &ArraySequence[float64]{prim: prim, remaining: n, decode: (*ioutil.PrimitiveReader).ReadF64}
}

// drainSequenceErr reads s to exhaustion, discarding values, so a node-attribute
// error raised partway through a sequence the loader only partially
// consumed is still observed by the cursor.
func drainSequenceErr[T any](s *ArraySequence[T]) error {
	for {
		_, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
