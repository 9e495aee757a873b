package lowlevel

import (
	"io"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/utils"
)

// SpecialHeader is the 4-byte length prefix for binary and string
// attributes.
type SpecialHeader struct {
	ByteLen uint32
}

// ReadSpecialHeader reads the 4-byte length prefix.
func ReadSpecialHeader(r io.Reader) (SpecialHeader, error) {
	prim := ioutil.NewPrimitiveReader(r)
	n, err := prim.ReadU32()
	if err != nil {
		return SpecialHeader{}, err
	}
	return SpecialHeader{ByteLen: n}, nil
}

// WriteSpecialHeader writes the 4-byte length prefix.
func WriteSpecialHeader(w io.Writer, h SpecialHeader) error {
	buf := make([]byte, 4)
	putU32(buf, h.ByteLen)
	if _, err := w.Write(buf); err != nil {
		return utils.WrapError("write special attribute header", err)
	}
	return nil
}

// SpecialHeaderSize is the fixed wire size of a SpecialHeader.
const SpecialHeaderSize = 4
