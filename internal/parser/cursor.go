package parser

import (
	"io"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/lowlevel"
	"github.com/scigolib/fbxcel/internal/utils"
)

// AttributeCursor is a lazy cursor over one node's attribute region,
// handed to the caller as part of a NodeStart event. Calling LoadNext
// repeatedly drains the node's declared attributes in order; a cursor
// the caller never touches is skipped wholesale by the parser on its
// next next_event() call.
type AttributeCursor struct {
	p               *Parser
	total           int
	remaining       int
	nextStartOffset uint64
	attrsEnd        uint64
	index           int
}

func newAttributeCursor(p *Parser, total int, regionStart, attrsEnd uint64) *AttributeCursor {
	return &AttributeCursor{p: p, total: total, remaining: total, nextStartOffset: regionStart, attrsEnd: attrsEnd}
}

// Remaining reports how many attributes have not yet been loaded.
func (c *AttributeCursor) Remaining() int {
	return c.remaining
}

// Total reports the node's declared attribute count.
func (c *AttributeCursor) Total() int {
	return c.total
}

// skipRemaining advances past every attribute the caller never pulled,
// landing exactly on the node's declared attribute-region boundary
// (attrsEnd) rather than the last attribute the cursor happened to
// track -- otherwise an abandoned cursor with several unread attributes
// would leave the reader positioned mid-region instead of at the
// declared end. Called by the parser before moving past a node whose
// cursor was left partially (or entirely) unconsumed.
func (c *AttributeCursor) skipRemaining() error {
	if c.remaining == 0 {
		return nil
	}
	if c.p.pr.Position() >= c.attrsEnd {
		c.remaining = 0
		return nil
	}
	if err := c.p.pr.SkipTo(c.attrsEnd); err != nil {
		return utils.NewError(utils.KindIO, "skip unconsumed attributes", err, nil)
	}
	c.remaining = 0
	return nil
}

// LoadNext implements the load_next(loader) algorithm of spec.md §4.4.
// ok is false once the node's attribute region is exhausted; err is
// non-nil on any I/O, data, or loader failure. Failures from the type
// code onward carry a syntactic position, and loader/decode failures
// are additionally wrapped in a NodeAttributeError identifying the
// attribute's index. An error returned by the warning handler is passed
// through unwrapped, and a failed skip to the attribute's start carries
// no position.
func (c *AttributeCursor) LoadNext(loader Loader) (ok bool, err error) {
	if c.remaining == 0 {
		return false, nil
	}

	pr := c.p.pr
	if pr.Position() < c.nextStartOffset {
		if err := pr.SkipTo(c.nextStartOffset); err != nil {
			return false, utils.NewError(utils.KindIO, "skip to next attribute", err, nil)
		}
	}

	attrStart := pr.Position()
	index := c.index

	typeByte, err := ioutil.NewPrimitiveReader(pr).ReadU8()
	if err != nil {
		return false, utils.NewError(utils.KindIO, "read attribute type code", err, c.p.syntacticPosition(attrStart, &index))
	}

	attrType, err := lowlevel.AttributeTypeFromCode(typeByte)
	if err != nil {
		return false, utils.NewError(utils.KindData, "parse attribute type code", err, c.p.syntacticPosition(attrStart, &index))
	}

	if loadErr := c.dispatch(loader, attrType, attrStart, index); loadErr != nil {
		if _, ok := loadErr.(*warnAbortError); ok {
			return false, loadErr
		}
		wrapped := &NodeAttributeError{Index: index, Cause: loadErr}
		return false, utils.NewError(utils.KindData, "decode attribute", wrapped, c.p.syntacticPosition(attrStart, &index))
	}

	// Land on the attribute's declared end even when the loader stopped
	// short of it (a partially pulled array, or an unread zlib trailer).
	if pr.Position() < c.nextStartOffset {
		if err := pr.SkipTo(c.nextStartOffset); err != nil {
			return false, utils.NewError(utils.KindIO, "skip to end of attribute", err, c.p.syntacticPosition(attrStart, &index))
		}
	}

	c.remaining--
	c.index++
	return true, nil
}

func (c *AttributeCursor) dispatch(loader Loader, t lowlevel.AttributeType, attrStart uint64, index int) error {
	pr := c.p.pr
	prim := ioutil.NewPrimitiveReader(pr)

	switch t {
	case lowlevel.AttrBool:
		b, err := prim.ReadBool()
		if err != nil {
			return err
		}
		if b != 'Y' && b != 'T' {
			idx := index
			if werr := c.p.warn(lowlevel.NewWarning(lowlevel.WarnIncorrectBooleanRepresentation, c.p.syntacticPosition(attrStart, &idx))); werr != nil {
				return werr
			}
		}
		return loader.LoadBool(b&0x01 != 0)

	case lowlevel.AttrI16:
		v, err := prim.ReadI16()
		if err != nil {
			return err
		}
		return loader.LoadI16(v)

	case lowlevel.AttrI32:
		v, err := prim.ReadI32()
		if err != nil {
			return err
		}
		return loader.LoadI32(v)

	case lowlevel.AttrI64:
		v, err := prim.ReadI64()
		if err != nil {
			return err
		}
		return loader.LoadI64(v)

	case lowlevel.AttrF32:
		v, err := prim.ReadF32()
		if err != nil {
			return err
		}
		return loader.LoadF32(v)

	case lowlevel.AttrF64:
		v, err := prim.ReadF64()
		if err != nil {
			return err
		}
		return loader.LoadF64(v)

	case lowlevel.AttrArrBool, lowlevel.AttrArrI32, lowlevel.AttrArrI64, lowlevel.AttrArrF32, lowlevel.AttrArrF64:
		return c.dispatchArray(loader, t, pr, attrStart, index)

	case lowlevel.AttrBinary, lowlevel.AttrString:
		return c.dispatchSpecial(loader, t, pr)

	default:
		return &lowlevel.ErrInvalidAttributeTypeCode{Code: t.Code()}
	}
}

func (c *AttributeCursor) dispatchArray(loader Loader, t lowlevel.AttributeType, pr ioutil.PositionReader, attrStart uint64, index int) error {
	hdr, err := lowlevel.ReadArrayHeader(pr)
	if err != nil {
		return err
	}
	c.nextStartOffset = pr.Position() + uint64(hdr.PayloadSize)

	src, err := newArraySource(io.LimitReader(pr, int64(hdr.PayloadSize)), hdr.Encoding)
	if err != nil {
		return err
	}

	n := int(hdr.Count)
	warnOnce := func() error {
		idx := index
		return c.p.warn(lowlevel.NewWarning(lowlevel.WarnIncorrectBooleanRepresentation, c.p.syntacticPosition(attrStart, &idx)))
	}

	switch t {
	case lowlevel.AttrArrBool:
		return loader.LoadSeqBool(newBoolSequence(src, n, warnOnce), n)
	case lowlevel.AttrArrI32:
		return loader.LoadSeqI32(newI32Sequence(src, n), n)
	case lowlevel.AttrArrI64:
		return loader.LoadSeqI64(newI64Sequence(src, n), n)
	case lowlevel.AttrArrF32:
		return loader.LoadSeqF32(newF32Sequence(src, n), n)
	case lowlevel.AttrArrF64:
		return loader.LoadSeqF64(newF64Sequence(src, n), n)
	default:
		panic("parser: dispatchArray called with non-array type")
	}
}

func (c *AttributeCursor) dispatchSpecial(loader Loader, t lowlevel.AttributeType, pr ioutil.PositionReader) error {
	sh, err := lowlevel.ReadSpecialHeader(pr)
	if err != nil {
		return err
	}
	c.nextStartOffset = pr.Position() + uint64(sh.ByteLen)
	bounded := io.LimitReader(pr, int64(sh.ByteLen))

	if t == lowlevel.AttrBinary {
		return loader.LoadBinary(bounded, sh.ByteLen)
	}
	return loader.LoadString(bounded, sh.ByteLen)
}
