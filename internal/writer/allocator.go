// Package writer implements the FBX binary writer: node-stack
// bookkeeping, back-patched node headers, zlib-compressed array
// attributes, and footer emission, over an arbitrary io.WriteSeeker.
package writer

import (
	"fmt"
	"sort"
)

// writtenRegion records a byte span that one closed node wrote itself:
// its header, name and attributes, or its node-end marker (the bytes of
// its child nodes are recorded by the children). Adapted from the teacher's end-of-file block
// allocator -- the FBX writer never allocates ahead of where it writes
// (it only seeks backward to patch a header it already wrote), so the
// only thing worth tracking here is a cheap post-hoc sanity check that
// the node stack never produced two closed nodes with overlapping
// spans.
type writtenRegion struct {
	Offset uint64
	Size   uint64
}

// regionTracker accumulates writtenRegions as nodes close. It is purely
// a debugging aid for Writer.Finalize; it does not influence where
// anything is written.
type regionTracker struct {
	regions []writtenRegion
}

func (t *regionTracker) track(offset, size uint64) {
	if size == 0 {
		return
	}
	t.regions = append(t.regions, writtenRegion{Offset: offset, Size: size})
}

func (t *regionTracker) sorted() []writtenRegion {
	out := make([]writtenRegion, len(t.regions))
	copy(out, t.regions)
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// validateNoOverlaps reports an error if any two tracked regions
// overlap, which would indicate a bug in the node-stack bookkeeping
// (the writer is append-only except for in-place header back-patches,
// so a correct run never produces overlapping regions).
func (t *regionTracker) validateNoOverlaps() error {
	regions := t.sorted()
	for i := 0; i < len(regions)-1; i++ {
		cur, next := regions[i], regions[i+1]
		if cur.Offset+cur.Size > next.Offset {
			return fmt.Errorf("writer: overlapping written regions at [%d, %d) and [%d, %d)",
				cur.Offset, cur.Offset+cur.Size, next.Offset, next.Offset+next.Size)
		}
	}
	return nil
}
