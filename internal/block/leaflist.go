package block

import "golang.org/x/exp/slices"

// maxCombineAttempts bounds both the inner per-pass fixed-point loops and
// the outer round loop in Combine. Heuristic compaction need not be
// optimal; hitting the cap just means the list is used partially compacted.
const maxCombineAttempts = 100

// LeafList is a multiset of leaves representing sum(weight * indicator of
// box). Order is preserved for determinism but carries no meaning.
type LeafList []Leaf

// Clone returns a deep copy: the returned list and every leaf's Sides slice
// are independent of the receiver.
func (ll LeafList) Clone() LeafList {
	out := make(LeafList, len(ll))
	for i, l := range ll {
		out[i] = l.Clone()
	}
	return out
}

// Extend prepends/inserts a full-range (Endpoint=0) side of the given bit
// depth at axis on every leaf. A nil axis (negative) means "after the
// existing axes".
func (ll LeafList) Extend(bitDepth uint64, axis int) {
	for i := range ll {
		pos := axis
		if pos < 0 {
			pos = len(ll[i].Sides)
		}
		sides := ll[i].Sides
		sides = append(sides, Side{})
		copy(sides[pos+1:], sides[pos:])
		sides[pos] = Side{Endpoint: 0, BitDepth: bitDepth}
		ll[i].Sides = sides
	}
}

// Restrict reduces dimensionality by one: for every leaf whose side on axis
// contains value, that side is dropped; every other leaf is dropped
// entirely. Returns the restricted list.
func (ll LeafList) Restrict(value uint64, axis int) LeafList {
	out := ll[:0]
	for _, l := range ll {
		if l.Sides[axis].Contains(value) {
			sides := make([]Side, 0, len(l.Sides)-1)
			sides = append(sides, l.Sides[:axis]...)
			sides = append(sides, l.Sides[axis+1:]...)
			l.Sides = sides
			out = append(out, l)
		}
	}
	return out
}

// DropSmall deletes every leaf whose total bit depth is at most threshold.
// Returns the pruned list.
func (ll LeafList) DropSmall(threshold uint64) LeafList {
	out := ll[:0]
	for _, l := range ll {
		if l.BitDepth() > threshold {
			out = append(out, l)
		}
	}
	return out
}

// ReduceMultiplicity subtracts the minimum multiplicity across the list
// from every leaf's multiplicity. It is a no-op on an empty list.
func (ll LeafList) ReduceMultiplicity() {
	if len(ll) == 0 {
		return
	}
	min := ll[0].Multiplicity
	for _, l := range ll[1:] {
		if l.Multiplicity < min {
			min = l.Multiplicity
		}
	}
	if min == 0 {
		return
	}
	for i := range ll {
		ll[i].Multiplicity -= min
	}
}

func sidesEqualExcept(a, b []Side, skip int) bool {
	for i := range a {
		if i == skip {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sidesEqual(a, b []Side) bool {
	return slices.Equal(a, b)
}

// CombineOnMultiplicity greedily merges pairs of leaves with equal
// multiplicity and equal side tuples, incrementing one leaf's multiplicity
// (doubling its weight) and discarding the other. One merge per candidate
// scan, first match wins. Returns the compacted list.
func (ll LeafList) CombineOnMultiplicity() LeafList {
	toPop := make(map[int]bool)
	for i := range ll {
		if toPop[i] {
			continue
		}
		for j := i + 1; j < len(ll); j++ {
			if toPop[j] {
				continue
			}
			if ll[i].BitDepth() != ll[j].BitDepth() {
				continue
			}
			if !sidesEqual(ll[i].Sides, ll[j].Sides) {
				continue
			}
			ll[i].Multiplicity++
			toPop[j] = true
			break
		}
	}
	return dropIndices(ll, toPop)
}

// canCombineOnSide reports whether l1 and l2 are abutting, equal-width
// sides on axis whose union is a dyadic (aligned) interval, with identical
// sides on every other axis and equal total bit depth.
func canCombineOnSide(l1, l2 Leaf, axis int) bool {
	if l1.BitDepth() != l2.BitDepth() {
		return false
	}
	s1, s2 := l1.Sides[axis], l2.Sides[axis]
	if s1.BitDepth != s2.BitDepth {
		return false
	}
	s1Right := s1.Endpoint + s1.Length()
	s2Right := s2.Endpoint + s2.Length()
	if s1.Endpoint != s2Right && s1Right != s2.Endpoint {
		return false
	}
	lower := s1.Endpoint
	if s2.Endpoint < lower {
		lower = s2.Endpoint
	}
	if lower%(2*s1.Length()) != 0 {
		return false
	}
	return sidesEqualExcept(l1.Sides, l2.Sides, axis)
}

func combinePairOnSide(l1, l2 Leaf, axis int) Side {
	s1, s2 := l1.Sides[axis], l2.Sides[axis]
	s2Right := s2.Endpoint + s2.Length()
	endpoint := s1.Endpoint
	if s1.Endpoint == s2Right {
		endpoint = s2.Endpoint
	}
	return Side{Endpoint: endpoint, BitDepth: s1.BitDepth + 1}
}

// CombineOnSide greedily merges pairs of leaves that abut on axis (see
// spec: equal total bit depth, agree on every other side, and form
// adjacent equal-width intervals on axis), replacing the pair with one
// leaf whose axis side is one bit deeper. Returns the compacted list.
func (ll LeafList) CombineOnSide(axis int) LeafList {
	toPop := make(map[int]bool)
	for i := range ll {
		if toPop[i] {
			continue
		}
		for j := i + 1; j < len(ll); j++ {
			if toPop[j] {
				continue
			}
			if !canCombineOnSide(ll[i], ll[j], axis) {
				continue
			}
			merged := combinePairOnSide(ll[i], ll[j], axis)
			ll[i].Sides[axis] = merged
			toPop[j] = true
			break
		}
	}
	return dropIndices(ll, toPop)
}

func dropIndices(ll LeafList, toPop map[int]bool) LeafList {
	if len(toPop) == 0 {
		return ll
	}
	out := ll[:0]
	for i, l := range ll {
		if !toPop[i] {
			out = append(out, l)
		}
	}
	return out
}

// Combine runs the fixed-point compaction loop of spec.md §4.3: iterate
// CombineOnMultiplicity to a fixed point, then iterate CombineOnSide to a
// fixed point on each axis in turn, then repeat the whole round until no
// further shrinkage occurs. It returns the compacted list, the number of
// outer rounds actually used, and whether the maxCombineAttempts safety
// cap fired (in which case the list is used as-is, only partially
// compacted — see gfserr.CombineExhausted).
func (ll LeafList) Combine() (out LeafList, rounds int, exhausted bool) {
	if len(ll) == 0 {
		return ll, 0, false
	}
	cur := ll
	for round := 0; round < maxCombineAttempts; round++ {
		rounds = round + 1
		lenBeforeRound := len(cur)

		for i := 0; i < maxCombineAttempts; i++ {
			lenBefore := len(cur)
			cur = cur.CombineOnMultiplicity()
			if len(cur) == lenBefore {
				break
			}
			if i == maxCombineAttempts-1 {
				exhausted = true
			}
		}

		for axis := 0; axis < len(cur[0].Sides); axis++ {
			for i := 0; i < maxCombineAttempts; i++ {
				lenBefore := len(cur)
				cur = cur.CombineOnSide(axis)
				if len(cur) == lenBefore {
					break
				}
				if i == maxCombineAttempts-1 {
					exhausted = true
				}
			}
		}

		if len(cur) == lenBeforeRound {
			break
		}
		if round == maxCombineAttempts-1 {
			exhausted = true
		}
	}
	return cur, rounds, exhausted
}
