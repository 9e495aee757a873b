package lowlevel

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/utils"
)

// footerWindowLen is the fixed size of the window read right after
// unknown1. After a padding of p bytes (0-15) come unknown2(4),
// version(4) and a 120-byte zero run, so unknown3 starts at window
// offset 128+p: its first 16-p bytes fall inside the window and the
// remaining p bytes are read after it. The first non-zero byte in the
// window's last 16 bytes therefore locates unknown3 and gives p.
const footerWindowLen = 144

// Unknown1ExpectedHighNibbles are the expected high nibbles of the
// footer's first 16-byte field when a file was produced by an official
// exporter (spec.md §6 default footer constants).
var Unknown1ExpectedHighNibbles = [16]byte{
	0xf0, 0xb0, 0xa0, 0x00, 0xd0, 0xc0, 0xd0, 0x60,
	0xb0, 0x70, 0xf0, 0x80, 0x10, 0xf0, 0x20, 0x70,
}

// Unknown3Expected is the fixed 16-byte trailer every FBX footer ends
// with.
var Unknown3Expected = [16]byte{
	0xf8, 0x5a, 0x8c, 0x6a, 0xde, 0xf5, 0xd9, 0x7e,
	0xec, 0xe9, 0x0c, 0xe3, 0x75, 0x8f, 0x29, 0x0b,
}

// ErrBrokenFbxFooter is returned for footer content that cannot be a
// valid footer at all (non-zero padding/unknown2/zero-run bytes, a
// version mismatch, or an unknown3 that doesn't match the fixed
// trailer). These are hard Data errors, not warnings.
var ErrBrokenFbxFooter = errors.New("lowlevel: broken FBX footer")

// Footer is the trailing record after all top-level nodes.
type Footer struct {
	Unknown1   [16]byte
	PaddingLen uint8
	Unknown2   [4]byte
	FBXVersion Version
	Unknown3   [16]byte
}

// ReadFooter parses a footer starting at the reader's current position,
// validating it against headerVersion. Warnings produced along the way
// are routed through warn; if warn returns an error, ReadFooter aborts
// immediately and returns that error.
func ReadFooter(pr ioutil.PositionReader, headerVersion Version, warn WarningHandler) (Footer, error) {
	startPos := pr.Position()

	var f Footer

	if _, err := io.ReadFull(pr, f.Unknown1[:]); err != nil {
		return Footer{}, utils.NewError(utils.KindIO, "read footer unknown1", err, nil)
	}

	for i, b := range f.Unknown1 {
		if b&0xf0 != Unknown1ExpectedHighNibbles[i] {
			pos := &utils.Position{BytePos: pr.Position() - 16, ComponentBytePos: startPos}
			if err := warn(NewWarning(WarnUnexpectedFooterFieldValue, pos)); err != nil {
				return Footer{}, err
			}
			break
		}
	}

	bufStartPos := pr.Position()
	expectedPaddingLen := uint64((-int64(bufStartPos)) & 0x0f)

	window := make([]byte, footerWindowLen)
	if _, err := io.ReadFull(pr, window); err != nil {
		return Footer{}, utils.NewError(utils.KindIO, "read footer tail", err, nil)
	}

	const searchOffset = footerWindowLen - 16
	unknown3Pos := -1
	for i, b := range window[searchOffset:] {
		if b != 0 {
			unknown3Pos = searchOffset + i
			break
		}
	}
	if unknown3Pos == -1 {
		return Footer{}, utils.NewError(utils.KindData, "locate footer unknown3", ErrBrokenFbxFooter, nil)
	}

	paddingLen := unknown3Pos - 128
	if paddingLen < 0 || paddingLen >= 16 {
		return Footer{}, utils.NewError(utils.KindData, "footer padding length out of range", ErrBrokenFbxFooter, nil)
	}

	padding := window[:paddingLen]
	var unknown2 [4]byte
	copy(unknown2[:], window[paddingLen:paddingLen+4])
	versionBuf := window[paddingLen+4 : paddingLen+8]
	zeroRun := window[paddingLen+8 : paddingLen+128]
	unknown3Part := window[paddingLen+128:]

	for _, b := range padding {
		if b != 0 {
			return Footer{}, utils.NewError(utils.KindData, "footer padding is not all zero", ErrBrokenFbxFooter, nil)
		}
	}
	if unknown2 != ([4]byte{}) {
		return Footer{}, utils.NewError(utils.KindData, "footer unknown2 is not zero", ErrBrokenFbxFooter, nil)
	}

	version := Version(binary.LittleEndian.Uint32(versionBuf))
	if version != headerVersion {
		return Footer{}, utils.NewError(utils.KindData, "footer version does not match header", ErrBrokenFbxFooter, nil)
	}

	for _, b := range zeroRun {
		if b != 0 {
			return Footer{}, utils.NewError(utils.KindData, "footer zero run is not all zero", ErrBrokenFbxFooter, nil)
		}
	}

	var unknown3 [16]byte
	copy(unknown3[:], unknown3Part)
	if _, err := io.ReadFull(pr, unknown3[len(unknown3Part):]); err != nil {
		return Footer{}, utils.NewError(utils.KindIO, "read remainder of footer unknown3", err, nil)
	}
	if !bytes.Equal(unknown3[:], Unknown3Expected[:]) {
		return Footer{}, utils.NewError(utils.KindData, "footer unknown3 does not match fixed trailer", ErrBrokenFbxFooter, nil)
	}

	if uint64(paddingLen) != expectedPaddingLen {
		pos := &utils.Position{BytePos: bufStartPos, ComponentBytePos: startPos}
		if err := warn(NewWarningWithValues(WarnInvalidFooterPaddingLength, expectedPaddingLen, uint64(paddingLen), pos)); err != nil {
			return Footer{}, err
		}
	}

	f.PaddingLen = uint8(paddingLen)
	f.Unknown2 = unknown2
	f.FBXVersion = version
	f.Unknown3 = unknown3
	return f, nil
}

// DefaultUnknown1 builds a default, spec-conformant unknown1 value: the
// documented high nibbles with zero low nibbles.
func DefaultUnknown1() [16]byte {
	var u [16]byte
	copy(u[:], Unknown1ExpectedHighNibbles[:])
	return u
}

// WriteFooterOptions controls footer emission; all fields are optional
// and default per spec.md §6.
type WriteFooterOptions struct {
	Unknown1 *[16]byte
	// ForcePaddingLen overrides the computed alignment padding length,
	// for boundary tests that intentionally write 0 or 15 bytes of
	// padding regardless of the writer's current position.
	ForcePaddingLen *uint8
	Unknown3        *[16]byte
}

// WriteFooter writes a footer for fbxVersion at the writer's current
// position (tracked via currentPos, since io.Writer has no position of
// its own).
func WriteFooter(w io.Writer, fbxVersion Version, currentPos uint64, opts WriteFooterOptions) error {
	unknown1 := DefaultUnknown1()
	if opts.Unknown1 != nil {
		unknown1 = *opts.Unknown1
	}
	if _, err := w.Write(unknown1[:]); err != nil {
		return utils.WrapError("write footer unknown1", err)
	}

	bufStartPos := currentPos + 16
	paddingLen := int((-int64(bufStartPos)) & 0x0f)
	if opts.ForcePaddingLen != nil {
		paddingLen = int(*opts.ForcePaddingLen)
	}
	if paddingLen < 0 || paddingLen > 15 {
		paddingLen = 0
	}

	window := make([]byte, footerWindowLen)
	// window[0:paddingLen] zero (padding)
	// window[paddingLen:paddingLen+4] zero (unknown2)
	putU32(window[paddingLen+4:paddingLen+8], uint32(fbxVersion))
	// zero-run already zero by construction
	unknown3 := Unknown3Expected
	if opts.Unknown3 != nil {
		unknown3 = *opts.Unknown3
	}
	copy(window[paddingLen+128:], unknown3[:16-paddingLen])

	if _, err := w.Write(window); err != nil {
		return utils.WrapError("write footer tail", err)
	}
	if paddingLen > 0 {
		if _, err := w.Write(unknown3[16-paddingLen:]); err != nil {
			return utils.WrapError("write footer unknown3 remainder", err)
		}
	}
	return nil
}
