// Package block implements the dyadic block geometry that underlies mass
// functions in this package: Side (a dyadic interval on one axis), Leaf (a
// weighted dyadic hyper-box), and LeafList (a multiset of leaves).
package block

import "github.com/fuscadan/gfs/internal/label"

// Side is the half-open dyadic interval [Endpoint, Endpoint+2^BitDepth).
// Endpoint is always a multiple of 2^BitDepth.
type Side struct {
	Endpoint uint64
	BitDepth uint64
}

// Length returns 2^BitDepth, the number of integer points the side covers.
func (s Side) Length() uint64 {
	return uint64(1) << s.BitDepth
}

// Contains reports whether v falls within the side's interval.
func (s Side) Contains(v uint64) bool {
	return v >= s.Endpoint && v < s.Endpoint+s.Length()
}

// Coordinate returns the concrete integer coordinate addressed by shift
// within this side. shift.BitDepth must equal s.BitDepth.
func (s Side) Coordinate(shift label.Label) uint64 {
	if shift.BitDepth != s.BitDepth {
		panic("block: Side.Coordinate bit depth mismatch")
	}
	return s.Endpoint + shift.Value
}
