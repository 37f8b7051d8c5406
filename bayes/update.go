package bayes

import (
	"github.com/fuscadan/gfs/gfserr"
	"github.com/fuscadan/gfs/internal/algebra"
	"github.com/fuscadan/gfs/internal/block"
	"github.com/fuscadan/gfs/internal/gfslog"
)

// UpdatePrior conditions prior on data via the exact multiplicative update
// of spec.md §4.7: multiply, compact equal boxes, prune leaves whose
// total bit depth is leafBitDepthRange or more below the dominant leaf's,
// then remove the common multiplicity factor. Partial
// failure (a malformed datum) aborts the whole update: no datum is
// silently skipped.
//
// The loop body never holds both the previous and the next leaves value
// live at once: each iteration rebinds leaves in place, so the previous
// generation becomes unreachable (and collectible) as soon as Multiply
// returns, satisfying the O(|A|*|B|) peak-memory bound of spec.md §5.
func UpdatePrior(prior Prior, likelihood Likelihood, data []DataPoint, leafBitDepthRange uint64) (Posterior, error) {
	leaves := prior
	for _, datum := range data {
		gfslog.Infof("updating prior with datum: %+v", datum)

		lkLeaves, err := likelihood.Leaves(datum)
		if err != nil {
			return nil, err
		}

		leaves = algebra.Multiply(lkLeaves, leaves)
		leaves = leaves.CombineOnMultiplicity()
		gfslog.Debugf("number of leaves: %d", len(leaves))

		if len(leaves) == 0 {
			continue
		}

		threshold := maxBitDepth(leaves) - int64(leafBitDepthRange)
		leaves = dropSmallSigned(leaves, threshold)
		leaves.ReduceMultiplicity()
	}
	return Posterior(leaves), nil
}

func maxBitDepth(leaves block.LeafList) int64 {
	max := int64(leaves[0].BitDepth())
	for _, l := range leaves[1:] {
		if b := int64(l.BitDepth()); b > max {
			max = b
		}
	}
	return max
}

// dropSmallSigned applies DropSmall with a threshold that may be negative
// (when leafBitDepthRange exceeds the dominant leaf's bit depth, in which
// case nothing is dropped: every real bit depth is >= 0).
func dropSmallSigned(leaves block.LeafList, threshold int64) block.LeafList {
	if threshold < 0 {
		return leaves
	}
	return leaves.DropSmall(uint64(threshold))
}

// FinalizePosterior runs the full Combine fixed-point loop (multiplicity
// merge plus per-axis side merge) once over a finished posterior, for
// callers that want a maximally compact leaf list before persisting it.
// UpdatePrior itself only compacts on multiplicity per step, per spec.md
// §4.7; this is the separate, heavier pass. Hitting the round cap is
// logged as a warning (gfserr.CombineExhausted) and is not an error: no
// observable behaviour depends on full compaction (spec.md §9).
func FinalizePosterior(posterior Posterior) Posterior {
	out, rounds, exhausted := block.LeafList(posterior).Combine()
	if exhausted {
		gfslog.Warningf("%s", (&gfserr.CombineExhausted{Rounds: rounds}).Error())
	}
	return Posterior(out)
}
