package tree

import (
	"testing"

	"github.com/fuscadan/gfs/internal/block"
	"github.com/fuscadan/gfs/internal/xrand"
)

// TestPrefixCodeDisjointAndCovering is invariant #6: every leaf's prefix
// range has length n_blocks(leaf), and all ranges are pairwise disjoint and
// union into a prefix of [0, 2^depth).
func TestPrefixCodeDisjointAndCovering(t *testing.T) {
	ll := block.Linear(5, false)
	tr := New(ll)

	type rng struct{ lo, hi uint64 }
	var ranges []rng
	for lbl, leaf := range tr.Labeled {
		width := tr.Depth - lbl.BitDepth
		lo := lbl.Value << width
		hi := lo + leaf.NBlocks()
		if hi-lo != leaf.NBlocks() {
			t.Fatalf("range length mismatch for %v", lbl)
		}
		ranges = append(ranges, rng{lo, hi})
	}

	for i := range ranges {
		for j := range ranges {
			if i == j {
				continue
			}
			if ranges[i].lo < ranges[j].hi && ranges[j].lo < ranges[i].hi {
				t.Fatalf("overlapping ranges %v and %v", ranges[i], ranges[j])
			}
		}
	}

	var total uint64
	for _, r := range ranges {
		total += r.hi - r.lo
	}
	maxHi := uint64(0)
	for _, r := range ranges {
		if r.hi > maxHi {
			maxHi = r.hi
		}
	}
	if total != maxHi {
		t.Fatalf("ranges do not union into a prefix: total=%d maxHi=%d", total, maxHi)
	}
}

// TestSamplerSucceedsOnExactPower is scenario S6: when total n_blocks is an
// exact power of two, depth is one bit larger than needed, so about half of
// the raw draws miss every label; the retry loop still makes every sample
// succeed.
func TestSamplerSucceedsOnExactPower(t *testing.T) {
	ll := block.Constant([]uint64{4}) // one leaf, n_blocks = 2^4
	tr := New(ll)
	if tr.Depth != 5 {
		// bit_length(16) == 5: the documented off-by-one (spec.md §9).
		t.Fatalf("depth = %d, want 5 (bit_length(16))", tr.Depth)
	}
	rng := xrand.New(1)
	for i := 0; i < 1000; i++ {
		if _, ok := tr.Sample(rng); !ok {
			t.Fatalf("sample failed on attempt %d", i)
		}
	}
}

// TestSamplerUniformity is invariant #7 (chi-squared smoke test at a
// coarser-than-spec sample size to keep the test fast).
func TestSamplerUniformity(t *testing.T) {
	const d = 8
	const n = 20000
	ll := block.Constant([]uint64{d})
	tr := New(ll)
	rng := xrand.New(42)

	buckets := make([]int, 1<<d)
	for i := 0; i < n; i++ {
		coords, ok := tr.Sample(rng)
		if !ok {
			t.Fatalf("sample failed on draw %d", i)
		}
		buckets[coords[0]]++
	}

	expected := float64(n) / float64(len(buckets))
	var chiSq float64
	for _, c := range buckets {
		diff := float64(c) - expected
		chiSq += diff * diff / expected
	}
	// 255 degrees of freedom; a generous upper bound well above the
	// p=0.001 critical value (~330) catches gross non-uniformity without
	// making the test flaky.
	if chiSq > 400 {
		t.Fatalf("chi-squared statistic %f too high for uniform sampling", chiSq)
	}
}

func TestEmptyTreeSampleFails(t *testing.T) {
	tr := New(nil)
	if _, ok := tr.Sample(xrand.New(1)); ok {
		t.Fatal("expected sampling an empty tree to fail")
	}
}
