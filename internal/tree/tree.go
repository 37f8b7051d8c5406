// Package tree assigns each leaf of a leaf list a unique variable-length
// binary label covering a prefix range of [0, 2^depth), enabling
// near-rejection-free uniform sampling (spec.md §4.6).
package tree

import (
	"sort"

	"github.com/fuscadan/gfs/internal/block"
	"github.com/fuscadan/gfs/internal/label"
	"github.com/fuscadan/gfs/internal/xrand"
)

// maxSamplingRetries bounds the redraw loop in Sample. Hitting it means the
// leaf list's prefix code covers far less than half of [0, 2^depth) —
// pathological input; see gfserr.SamplingExhausted.
const maxSamplingRetries = 100000

// Tree is a labelled prefix code over a leaf list: Depth is the bit length
// of the total block count (one bit more than needed to address every block
// when that total is an exact power of two), and Labeled maps each leaf's
// assigned Label to the leaf.
type Tree struct {
	Depth   uint64
	Labeled map[label.Label]block.Leaf
}

// New builds a Tree from leaves, sorting a private copy by descending bit
// depth and assigning prefix labels greedily per spec.md §4.6. It does not
// mutate leaves.
func New(leaves block.LeafList) *Tree {
	sorted := make(block.LeafList, len(leaves))
	copy(sorted, leaves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BitDepth() > sorted[j].BitDepth()
	})

	var totalBlocks uint64
	for _, l := range sorted {
		totalBlocks += l.NBlocks()
	}
	depth := label.BitLength(totalBlocks)

	labeled := make(map[label.Label]block.Leaf, len(sorted))
	lastBitDepthLeaf := depth
	var lastLabel uint64
	first := true
	for _, l := range sorted {
		bitDepthLeaf := l.BitDepth()
		bitDepthLabel := depth - bitDepthLeaf
		var labelValue uint64
		if first {
			labelValue = 0
			first = false
		} else {
			labelValue = (lastLabel + 1) << (lastBitDepthLeaf - bitDepthLeaf)
		}
		labeled[label.Label{Value: labelValue, BitDepth: bitDepthLabel}] = l
		lastBitDepthLeaf = bitDepthLeaf
		lastLabel = labelValue
	}

	return &Tree{Depth: depth, Labeled: labeled}
}

// sampleOnce draws one uniform integer-coordinate tuple from the tree,
// retrying on prefix misses (possible because total n_blocks may be less
// than 2^depth). Returns (coords, true) on success, (nil, false) if
// maxSamplingRetries is exceeded.
func (t *Tree) sampleOnce(rng *xrand.Source) ([]uint64, bool) {
	if t.Depth == 0 {
		// Only reachable when the tree was built from an empty leaf
		// list: there is nothing to sample.
		return nil, false
	}
	for attempt := 0; attempt < maxSamplingRetries; attempt++ {
		r := label.Label{Value: rng.Uint64n(uint64(1) << t.Depth), BitDepth: t.Depth}
		for k := uint64(1); k <= t.Depth; k++ {
			labelLeaf, labelBlock := r.PopLeft(k)
			if leaf, ok := t.Labeled[labelLeaf]; ok {
				return leaf.BlockCoordinates(labelBlock), true
			}
		}
	}
	return nil, false
}

// Sample draws one uniform integer-coordinate tuple, or reports
// ok == false if the retry cap (spec.md §4.6) was exceeded.
func (t *Tree) Sample(rng *xrand.Source) (coords []uint64, ok bool) {
	return t.sampleOnce(rng)
}

// SampleN draws n independent samples. It stops and reports the index of
// the first exhausted draw if the retry cap fires.
func (t *Tree) SampleN(rng *xrand.Source, n int) (samples [][]uint64, exhaustedAt int, ok bool) {
	samples = make([][]uint64, 0, n)
	for i := 0; i < n; i++ {
		coords, ok := t.sampleOnce(rng)
		if !ok {
			return samples, i, false
		}
		samples = append(samples, coords)
	}
	return samples, -1, true
}
