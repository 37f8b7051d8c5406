// Package algebra implements the exact pointwise multiplication of two
// dyadic leaf lists: Multiply(A, B) represents the product mass function,
// via cartesian intersection of every pair of boxes.
package algebra

import "github.com/fuscadan/gfs/internal/block"

// lineSegmentToSides decomposes the integer segment [endpoint, endpoint+length)
// into dyadic sides, one per set bit of length, from least to most
// significant, each side's endpoint advancing by its own length.
func lineSegmentToSides(endpoint, length uint64) []block.Side {
	if length == 0 {
		return nil
	}
	var sides []block.Side
	for i := uint64(0); (length >> i) != 0; i++ {
		if (length>>i)&1 != 0 {
			sides = append(sides, block.Side{Endpoint: endpoint, BitDepth: i})
			endpoint += uint64(1) << i
		}
	}
	return sides
}

// intersectSides returns the dyadic decomposition of the intersection of
// s1 and s2, or nil if they do not overlap.
func intersectSides(s1, s2 block.Side) []block.Side {
	left1, right1 := s1.Endpoint, s1.Endpoint+s1.Length()
	left2, right2 := s2.Endpoint, s2.Endpoint+s2.Length()

	left := left1
	if left2 > left {
		left = left2
	}
	right := right1
	if right2 < right {
		right = right2
	}
	if right <= left {
		return nil
	}
	return lineSegmentToSides(left, right-left)
}

// intersectLeaves returns the cartesian product of the per-axis
// intersection decompositions of l1 and l2, each combination becoming a
// leaf with multiplicity l1.Multiplicity+l2.Multiplicity. Returns nil if
// any axis fails to intersect.
func intersectLeaves(l1, l2 block.Leaf) block.LeafList {
	byAxis := make([][]block.Side, len(l1.Sides))
	for i := range l1.Sides {
		sides := intersectSides(l1.Sides[i], l2.Sides[i])
		if len(sides) == 0 {
			return nil
		}
		byAxis[i] = sides
	}

	mult := l1.Multiplicity + l2.Multiplicity
	out := block.LeafList{{Multiplicity: mult, Sides: make([]block.Side, len(byAxis))}}
	for axis, choices := range byAxis {
		next := make(block.LeafList, 0, len(out)*len(choices))
		for _, leaf := range out {
			for _, side := range choices {
				sides := make([]block.Side, len(leaf.Sides))
				copy(sides, leaf.Sides)
				sides[axis] = side
				next = append(next, block.Leaf{Multiplicity: mult, Sides: sides})
			}
		}
		out = next
	}
	return out
}

// Multiply computes the pointwise product of two mass functions, given as
// leaf lists over the same number of axes. Result cardinality is bounded
// by len(a)*len(b)*prod(bit depths), but typically much smaller once
// Combine is applied. Peak memory during the call is O(len(a)*len(b))
// intermediate leaves; Multiply must be followed by Combine and pruning
// (spec.md §4.7) to keep that from growing unboundedly across an update
// chain.
func Multiply(a, b block.LeafList) block.LeafList {
	out := make(block.LeafList, 0, len(a)*len(b))
	for _, la := range a {
		for _, lb := range b {
			out = append(out, intersectLeaves(la, lb)...)
		}
	}
	return out
}
