package lowlevel

import (
	"fmt"
	"io"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/utils"
)

// ArrayEncoding is the payload encoding of an array attribute.
type ArrayEncoding uint32

const (
	EncodingDirect ArrayEncoding = 0
	EncodingZlib   ArrayEncoding = 1
)

// ErrInvalidArrayEncoding is wrapped with the offending value by
// ReadArrayHeader.
type ErrInvalidArrayEncoding struct {
	Value uint32
}

func (e *ErrInvalidArrayEncoding) Error() string {
	return fmt.Sprintf("lowlevel: invalid array attribute encoding %d", e.Value)
}

// ArrayHeader is the 12-byte header preceding an array attribute's
// payload: element count, encoding, and the payload's byte length on
// the wire (which, for zlib encoding, is the *compressed* length).
type ArrayHeader struct {
	Count       uint32
	Encoding    ArrayEncoding
	PayloadSize uint32
}

// ReadArrayHeader reads the 12-byte array attribute header.
func ReadArrayHeader(r io.Reader) (ArrayHeader, error) {
	prim := ioutil.NewPrimitiveReader(r)

	count, err := prim.ReadU32()
	if err != nil {
		return ArrayHeader{}, err
	}
	encodingRaw, err := prim.ReadU32()
	if err != nil {
		return ArrayHeader{}, err
	}
	payloadSize, err := prim.ReadU32()
	if err != nil {
		return ArrayHeader{}, err
	}

	if encodingRaw != uint32(EncodingDirect) && encodingRaw != uint32(EncodingZlib) {
		return ArrayHeader{}, &ErrInvalidArrayEncoding{Value: encodingRaw}
	}

	return ArrayHeader{Count: count, Encoding: ArrayEncoding(encodingRaw), PayloadSize: payloadSize}, nil
}

// WriteArrayHeader writes h to w.
func WriteArrayHeader(w io.Writer, h ArrayHeader) error {
	buf := make([]byte, 12)
	putU32(buf[0:4], h.Count)
	putU32(buf[4:8], uint32(h.Encoding))
	putU32(buf[8:12], h.PayloadSize)
	if _, err := w.Write(buf); err != nil {
		return utils.WrapError("write array header", err)
	}
	return nil
}

// ArrayHeaderSize is the fixed wire size of an ArrayHeader.
const ArrayHeaderSize = 12
