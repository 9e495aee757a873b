package parser

import "github.com/scigolib/fbxcel/internal/lowlevel"

// EventKind tags which variant of Event is populated.
type EventKind int

const (
	EventNodeStart EventKind = iota
	EventNodeEnd
	EventEndOfFile
)

// Event is the tagged union next_event() yields: exactly one of
// NodeStart/EndOfFile is meaningful, selected by Kind (NodeEnd carries
// no payload).
type Event struct {
	Kind      EventKind
	NodeStart NodeStartPayload
	EndOfFile EndOfFilePayload
}

// NodeStartPayload accompanies EventNodeStart. Attrs lets the caller
// pull the node's attributes through load_next-style calls; if the
// caller never touches it, the parser skips the whole attribute region
// on the next next_event() call.
type NodeStartPayload struct {
	Name  string
	Attrs *AttributeCursor
}

// EndOfFilePayload accompanies EventEndOfFile. Footer may itself carry
// a non-nil FooterErr without invalidating the EndOfFile event --
// footer problems are reported as the event's payload, not as a parser
// failure (spec.md §7, "Propagation").
type EndOfFilePayload struct {
	Footer    lowlevel.Footer
	FooterErr error
}
