package lowlevel

import (
	"bytes"
	"errors"
	"io"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/utils"
)

// MagicLen is the length, in bytes, of the FBX binary magic.
const MagicLen = 23

// Magic is the fixed 23-byte prefix every FBX binary file starts with.
var Magic = [MagicLen]byte{
	'K', 'a', 'y', 'd', 'a', 'r', 'a', ' ', 'F', 'B', 'X', ' ', 'B', 'i', 'n', 'a', 'r', 'y', ' ', ' ', 0x00, 0x1A, 0x00,
}

// HeaderLen is the total on-disk length of the header: magic + 4-byte
// version. Exposed so the writer can compute the first node's starting
// offset without re-deriving the constant (SPEC_FULL.md §6.3).
const HeaderLen = MagicLen + 4

// ErrMagicNotDetected is returned when the leading bytes of a stream do
// not match Magic.
var ErrMagicNotDetected = errors.New("lowlevel: FBX magic not detected")

// Header is the 27-byte FBX binary header: magic plus version.
type Header struct {
	Version Version
}

// ReadHeader reads and validates the magic, then reads the version.
// The whole magic is read before it is compared, so on a magic mismatch
// the reader position is MagicLen -- strictly less than HeaderLen,
// matching the original crate's documented guarantee that a bad magic
// is not "read too much".
func ReadHeader(pr ioutil.PositionReader) (Header, error) {
	magicBuf := make([]byte, MagicLen)
	if _, err := io.ReadFull(pr, magicBuf); err != nil {
		return Header{}, utils.NewError(utils.KindIO, "read FBX magic", err, nil)
	}
	if !bytes.Equal(magicBuf, Magic[:]) {
		return Header{}, ErrMagicNotDetected
	}

	prim := ioutil.NewPrimitiveReader(pr)
	version, err := prim.ReadU32()
	if err != nil {
		return Header{}, utils.NewError(utils.KindIO, "read FBX version", err, nil)
	}

	return Header{Version: Version(version)}, nil
}

// WriteHeader writes the magic and version to w.
func WriteHeader(w io.Writer, h Header) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return utils.WrapError("write FBX magic", err)
	}
	buf := make([]byte, 4)
	putU32(buf, uint32(h.Version))
	if _, err := w.Write(buf); err != nil {
		return utils.WrapError("write FBX version", err)
	}
	return nil
}
