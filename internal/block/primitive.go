package block

// Constant returns a single-leaf list spanning the whole grid described by
// bitDepths (one full-range side per axis), multiplicity zero: uniform mass
// over the grid.
func Constant(bitDepths []uint64) LeafList {
	sides := make([]Side, len(bitDepths))
	for i, d := range bitDepths {
		sides[i] = Side{Endpoint: 0, BitDepth: d}
	}
	return LeafList{{Multiplicity: 0, Sides: sides}}
}

// Linear returns a one-axis leaf list encoding the ramp f(x) = x+1 (or
// f(x) = 2^bitDepth - x when reverse), exact over the dyadic grid of the
// given bit depth. See spec.md §4.4 for the construction.
func Linear(bitDepth uint64, reverse bool) LeafList {
	r := uint64(1)
	if reverse {
		r = 0
	}
	var out LeafList
	for j := uint64(0); j < bitDepth; j++ {
		for i := uint64(0); i < uint64(1)<<(bitDepth-j-1); i++ {
			endpoint := (uint64(1) << j) * (2*i + r)
			out = append(out, Leaf{
				Multiplicity: j,
				Sides:        []Side{{Endpoint: endpoint, BitDepth: j}},
			})
		}
	}
	// The levels above sum to x (or 2^bitDepth-1-x); one full-range leaf
	// of multiplicity zero adds the ramp's +1.
	out = append(out, Leaf{Multiplicity: 0, Sides: []Side{{Endpoint: 0, BitDepth: bitDepth}}})
	return out
}
