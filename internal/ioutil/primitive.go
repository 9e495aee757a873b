package ioutil

import (
	"encoding/binary"
	"io"
	"math"
	"math/big"

	"github.com/scigolib/fbxcel/internal/utils"
)

// PrimitiveReader reads little-endian fixed-width primitives from an
// io.Reader. The underlying source may return any positive number of
// bytes per Read call; readFull accumulates until the target width is
// met rather than assuming one contiguous read, mirroring the
// accumulate-then-decode shape of the teacher's ReadUint64 helper.
type PrimitiveReader struct {
	r   io.Reader
	buf [16]byte
}

// NewPrimitiveReader wraps r for typed little-endian reads.
func NewPrimitiveReader(r io.Reader) *PrimitiveReader {
	return &PrimitiveReader{r: r}
}

func (p *PrimitiveReader) readFull(n int) ([]byte, error) {
	buf := p.buf[:n]
	if _, err := io.ReadFull(p.r, buf); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, utils.NewError(utils.KindIO, "read primitive", io.ErrUnexpectedEOF, nil)
		}
		return nil, utils.NewError(utils.KindIO, "read primitive", err, nil)
	}
	return buf, nil
}

// ReadU8 reads a single unsigned byte.
func (p *PrimitiveReader) ReadU8() (uint8, error) {
	b, err := p.readFull(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a single signed byte.
func (p *PrimitiveReader) ReadI8() (int8, error) {
	v, err := p.ReadU8()
	return int8(v), err
}

// ReadBool reads the FBX wire boolean byte verbatim. Decoding its
// meaning (Y/T vs. low-bit fallback) is the caller's responsibility
// (see internal/parser's boolean-warning handling).
func (p *PrimitiveReader) ReadBool() (byte, error) {
	return p.ReadU8()
}

// ReadU16 reads a little-endian uint16.
func (p *PrimitiveReader) ReadU16() (uint16, error) {
	b, err := p.readFull(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian int16.
func (p *PrimitiveReader) ReadI16() (int16, error) {
	v, err := p.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (p *PrimitiveReader) ReadU32() (uint32, error) {
	b, err := p.readFull(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian int32.
func (p *PrimitiveReader) ReadI32() (int32, error) {
	v, err := p.ReadU32()
	return int32(v), err
}

// ReadF32 reads a little-endian IEEE-754 float32.
func (p *PrimitiveReader) ReadF32() (float32, error) {
	v, err := p.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadU64 reads a little-endian uint64.
func (p *PrimitiveReader) ReadU64() (uint64, error) {
	b, err := p.readFull(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian int64.
func (p *PrimitiveReader) ReadI64() (int64, error) {
	v, err := p.ReadU64()
	return int64(v), err
}

// ReadF64 reads a little-endian IEEE-754 float64.
func (p *PrimitiveReader) ReadF64() (float64, error) {
	v, err := p.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadI128 reads a little-endian signed 128-bit integer (two's
// complement), returned as a *big.Int. No FBX wire attribute type code
// uses this width; it exists to complete the typed-primitive-reader
// contract i128 is named in alongside the other eleven widths.
func (p *PrimitiveReader) ReadI128() (*big.Int, error) {
	b, err := p.readFull(16)
	if err != nil {
		return nil, err
	}
	var be [16]byte
	for i := 0; i < 16; i++ {
		be[i] = b[15-i]
	}
	v := new(big.Int).SetBytes(be[:])
	if be[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return v, nil
}

// PrimitiveWriter writes little-endian fixed-width primitives to an
// io.Writer, using a pooled scratch buffer per write the way
// internal/utils.GetBuffer/ReleaseBuffer is used elsewhere in the
// codec rather than allocating a new slice per call.
type PrimitiveWriter struct {
	w io.Writer
}

// NewPrimitiveWriter wraps w for typed little-endian writes.
func NewPrimitiveWriter(w io.Writer) *PrimitiveWriter {
	return &PrimitiveWriter{w: w}
}

func (p *PrimitiveWriter) writeFull(n int, fill func([]byte)) error {
	buf := utils.GetBuffer(n)
	defer utils.ReleaseBuffer(buf)
	fill(buf)
	if _, err := p.w.Write(buf); err != nil {
		return utils.NewError(utils.KindIO, "write primitive", err, nil)
	}
	return nil
}

// WriteU8 writes a single unsigned byte.
func (p *PrimitiveWriter) WriteU8(v uint8) error {
	return p.writeFull(1, func(b []byte) { b[0] = v })
}

// WriteBool writes the FBX wire boolean byte verbatim (the caller
// decides 'Y'/'T' vs. some other byte).
func (p *PrimitiveWriter) WriteBool(v byte) error {
	return p.WriteU8(v)
}

// WriteI16 writes a little-endian int16.
func (p *PrimitiveWriter) WriteI16(v int16) error {
	return p.writeFull(2, func(b []byte) { binary.LittleEndian.PutUint16(b, uint16(v)) })
}

// WriteI32 writes a little-endian int32.
func (p *PrimitiveWriter) WriteI32(v int32) error {
	return p.writeFull(4, func(b []byte) { binary.LittleEndian.PutUint32(b, uint32(v)) })
}

// WriteI64 writes a little-endian int64.
func (p *PrimitiveWriter) WriteI64(v int64) error {
	return p.writeFull(8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(v)) })
}

// WriteF32 writes a little-endian IEEE-754 float32.
func (p *PrimitiveWriter) WriteF32(v float32) error {
	return p.writeFull(4, func(b []byte) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) })
}

// WriteF64 writes a little-endian IEEE-754 float64.
func (p *PrimitiveWriter) WriteF64(v float64) error {
	return p.writeFull(8, func(b []byte) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) })
}

// WriteI128 writes v as a little-endian signed 128-bit integer (two's
// complement). v must fit in 128 bits; mirrors ReadI128 to complete the
// writer side of the typed-primitive contract.
func (p *PrimitiveWriter) WriteI128(v *big.Int) error {
	return p.writeFull(16, func(b []byte) {
		bi := v
		if v.Sign() < 0 {
			bi = new(big.Int).Add(v, new(big.Int).Lsh(big.NewInt(1), 128))
		}
		var be [16]byte
		bi.FillBytes(be[:])
		for i := 0; i < 16; i++ {
			b[i] = be[15-i]
		}
	})
}

// ReadUint64At reads a uint64 in the given byte order from r, with no
// offset tracking of its own: a one-shot typed read over a bounded
// io.Reader without constructing a full PrimitiveReader.
func ReadUint64At(r io.Reader, order binary.ByteOrder) (uint64, error) {
	buf := utils.GetBuffer(8)
	defer utils.ReleaseBuffer(buf)

	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, utils.NewError(utils.KindIO, "read uint64", err, nil)
	}
	return order.Uint64(buf), nil
}
