// Package parser implements the FBX binary pull parser: a state
// machine driven one event at a time by next_event(), built on top of
// internal/ioutil's position-tracking reader and internal/lowlevel's
// wire records.
package parser

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/scigolib/fbxcel/internal/lowlevel"
	"github.com/scigolib/fbxcel/internal/utils"
)

// State is the parser's lifecycle state (spec.md §4.3:
// Initial -> Healthy(depth) -> Finished | Aborted(position)).
type State int

const (
	StateInitial State = iota
	StateHealthy
	StateFinished
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateHealthy:
		return "Healthy"
	case StateFinished:
		return "Finished"
	case StateAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// frame is one entry in the parser's node-depth stack.
type frame struct {
	name          string
	endOffset     uint64
	numAttributes uint64
	hasChild      bool

	// attrsStart/attrsEnd bound the node's declared attribute region
	// (header.BytelenAttributes applied to the region start), so the
	// region's actual consumed length can be checked against its
	// declared length once the cursor finishes draining it.
	attrsStart uint64
	attrsEnd   uint64
}

// Parser drives the pull-parser state machine over a single byte
// source for its entire lifetime. It is not safe for concurrent use:
// the reader and the state machine are both exclusively owned by one
// goroutine at a time (spec.md §5, "Shared-resource policy").
type Parser struct {
	pr          ioutil.PositionReader
	version     lowlevel.Version
	wide        bool
	warnHandler lowlevel.WarningHandler

	state    State
	abortPos uint64

	stack  []frame
	cursor *AttributeCursor
}

// NewParser reads and validates the FBX header from r, then returns a
// Parser positioned at the first top-level node.
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		pr:          ioutil.NewPositionReader(r),
		warnHandler: ignoreWarnings,
		state:       StateInitial,
	}
	for _, opt := range opts {
		opt(p)
	}

	header, err := lowlevel.ReadHeader(p.pr)
	if err != nil {
		return nil, err
	}
	if verr := header.Version.Validate(); verr != nil {
		return nil, utils.NewError(utils.KindOperation, "validate FBX version", verr, nil)
	}

	p.version = header.Version
	p.wide = header.Version.IsWide()
	p.state = StateHealthy
	return p, nil
}

// Version reports the FBX version read from the file header.
func (p *Parser) Version() lowlevel.Version {
	return p.version
}

// State reports the parser's current lifecycle state.
func (p *Parser) State() State {
	return p.state
}

// Position reports the underlying reader's current absolute byte
// offset.
func (p *Parser) Position() uint64 {
	return p.pr.Position()
}

// warn routes w through the installed handler. If the handler returns
// an error, the parser transitions to Aborted at its current position
// and the returned error is marked so callers propagate it unchanged.
func (p *Parser) warn(w *lowlevel.Warning) error {
	if err := p.warnHandler(w); err != nil {
		p.abort()
		return &warnAbortError{cause: err}
	}
	return nil
}

func (p *Parser) abort() {
	p.state = StateAborted
	p.abortPos = p.pr.Position()
}

// NextEvent advances the parser by exactly one event. See spec.md
// §4.3 for the algorithm; the only divergence is the resolution of
// the node-end-marker expectation recorded in DESIGN.md.
func (p *Parser) NextEvent() (Event, error) {
	switch p.state {
	case StateAborted:
		return Event{}, ErrAlreadyAborted
	case StateFinished:
		return Event{}, ErrAlreadyFinished
	}

	if p.cursor != nil {
		if err := p.cursor.skipRemaining(); err != nil {
			p.abort()
			return Event{}, err
		}
		p.cursor = nil

		if n := len(p.stack); n > 0 {
			top := &p.stack[n-1]
			if p.pr.Position() != top.attrsEnd {
				p.abort()
				mismatch := &NodeLengthMismatchError{
					Expected: top.attrsEnd - top.attrsStart,
					Actual:   p.pr.Position() - top.attrsStart,
				}
				return Event{}, utils.NewError(utils.KindData, "verify node attribute region length", mismatch, p.syntacticPosition(p.pr.Position(), nil))
			}
		}
	}

	if n := len(p.stack); n > 0 {
		top := &p.stack[n-1]
		if p.pr.Position() == top.endOffset {
			if top.hasChild || top.numAttributes == 0 {
				if werr := p.warn(lowlevel.NewWarning(lowlevel.WarnMissingNodeEndMarker, p.syntacticPosition(top.endOffset, nil))); werr != nil {
					return Event{}, werr
				}
			}
			p.stack = p.stack[:n-1]
			return Event{Kind: EventNodeEnd}, nil
		}
	}

	headerStart := p.pr.Position()
	header, err := lowlevel.ReadNodeHeader(p.pr, p.wide)
	if err != nil {
		p.abort()
		return Event{}, utils.NewError(utils.KindIO, "read node header", err, p.syntacticPosition(headerStart, nil))
	}

	if header.IsNodeEnd() {
		if len(p.stack) == 0 {
			return p.finish()
		}
		top := &p.stack[len(p.stack)-1]
		expected := top.hasChild || top.numAttributes == 0
		if !expected {
			if werr := p.warn(lowlevel.NewWarning(lowlevel.WarnExtraNodeEndMarker, p.syntacticPosition(headerStart, nil))); werr != nil {
				return Event{}, werr
			}
		}
		p.stack = p.stack[:len(p.stack)-1]
		return Event{Kind: EventNodeEnd}, nil
	}

	name, err := p.readNodeName(header.BytelenName, headerStart)
	if err != nil {
		p.abort()
		return Event{}, err
	}

	if len(p.stack) > 0 {
		p.stack[len(p.stack)-1].hasChild = true
	}

	regionStart := p.pr.Position()
	attrsEnd := regionStart + header.BytelenAttributes
	p.stack = append(p.stack, frame{
		name:          name,
		endOffset:     header.EndOffset,
		numAttributes: header.NumAttributes,
		attrsStart:    regionStart,
		attrsEnd:      attrsEnd,
	})

	cursor := newAttributeCursor(p, int(header.NumAttributes), regionStart, attrsEnd)
	p.cursor = cursor

	return Event{Kind: EventNodeStart, NodeStart: NodeStartPayload{Name: name, Attrs: cursor}}, nil
}

func (p *Parser) readNodeName(length uint8, headerStart uint64) (string, error) {
	buf := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(p.pr, buf); err != nil {
			return "", utils.NewError(utils.KindIO, "read node name", err, p.syntacticPosition(headerStart, nil))
		}
	}
	if !utf8.Valid(buf) {
		return "", utils.NewError(utils.KindData, "decode node name", ErrInvalidNodeNameEncoding, p.syntacticPosition(headerStart, nil))
	}
	if length == 0 {
		if werr := p.warn(lowlevel.NewWarning(lowlevel.WarnEmptyNodeName, p.syntacticPosition(headerStart, nil))); werr != nil {
			return "", werr
		}
	}
	return string(buf), nil
}

// finish parses the trailing footer and emits EndOfFile. A footer
// problem never fails the call itself -- it is packaged as the event's
// FooterErr (spec.md §7, "Propagation") -- except that a warning the
// installed handler turned into an error also drives the parser to
// Aborted rather than Finished, per spec.md §8 scenario 6.
func (p *Parser) finish() (Event, error) {
	footer, ferr := lowlevel.ReadFooter(p.pr, p.version, p.warn)

	if p.state == StateAborted {
		var wae *warnAbortError
		cause := ferr
		if errors.As(ferr, &wae) {
			cause = wae.cause
		}
		return Event{Kind: EventEndOfFile, EndOfFile: EndOfFilePayload{Footer: footer, FooterErr: cause}}, nil
	}

	p.state = StateFinished
	return Event{Kind: EventEndOfFile, EndOfFile: EndOfFilePayload{Footer: footer, FooterErr: ferr}}, nil
}
