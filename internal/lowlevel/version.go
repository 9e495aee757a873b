// Package lowlevel implements the FBX binary wire records: the file
// header, the (version-dependent) node header, attribute type codes,
// array/special attribute headers, and the footer. It reads and writes
// these records but knows nothing about framing a whole file — that is
// internal/parser's and internal/writer's job.
package lowlevel

import "fmt"

// Version is a raw FBX format version number (e.g. 7400, 7500).
type Version uint32

// V7400Boundary is the version at which node-header offset/count fields
// widen from 32-bit to 64-bit (spec.md §3).
const V7400Boundary Version = 7500

// MinSupported is the lowest FBX version this codec accepts.
const MinSupported Version = 7400

// IsWide reports whether node headers at this version use the 64-bit
// field encoding (version >= 7500).
func (v Version) IsWide() bool {
	return v >= V7400Boundary
}

// Validate rejects FBX versions below 7400. Versions above the highest
// one this codec was written against are accepted on the assumption
// that the wire shape is forward compatible until proven otherwise --
// matching the original crate, which does not hard-cap the upper end.
func (v Version) Validate() error {
	if v < MinSupported {
		return fmt.Errorf("unsupported FBX version %d: versions below %d are not supported", v, MinSupported)
	}
	return nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d", uint32(v))
}
