package block

import "github.com/fuscadan/gfs/internal/label"

// Leaf is a weighted dyadic hyper-box: weight 2^Multiplicity, shape given
// by one Side per axis. All leaves in a LeafList share the same axis count.
type Leaf struct {
	Multiplicity uint64
	Sides        []Side
}

// BitDepth is the total bit depth of the leaf: sum of side bit depths plus
// Multiplicity. It is the binary log of the leaf's contribution to total
// mass.
func (l Leaf) BitDepth() uint64 {
	total := l.Multiplicity
	for _, s := range l.Sides {
		total += s.BitDepth
	}
	return total
}

// NBlocks returns 2^BitDepth, the number of unit-weight blocks the leaf
// represents.
func (l Leaf) NBlocks() uint64 {
	return uint64(1) << l.BitDepth()
}

// BlockCoordinates peels the leading Side-width bits off labelBlock, one
// axis at a time, to recover the integer coordinate on each axis. labelBlock
// must be at least as wide as the sum of the leaf's side bit depths; when it
// is wider (the tree passes the leaf's full BitDepth, multiplicity
// included), the trailing bits left over after the last axis are ignored.
func (l Leaf) BlockCoordinates(labelBlock label.Label) []uint64 {
	coords := make([]uint64, len(l.Sides))
	remaining := labelBlock
	for i, s := range l.Sides {
		var shift label.Label
		shift, remaining = remaining.PopLeft(s.BitDepth)
		coords[i] = s.Coordinate(shift)
	}
	return coords
}

// Clone returns a deep copy of the leaf (its Sides slice is not shared).
func (l Leaf) Clone() Leaf {
	sides := make([]Side, len(l.Sides))
	copy(sides, l.Sides)
	return Leaf{Multiplicity: l.Multiplicity, Sides: sides}
}
