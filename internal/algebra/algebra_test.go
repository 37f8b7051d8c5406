package algebra

import (
	"testing"

	"github.com/fuscadan/gfs/internal/block"
)

func totalMass(ll block.LeafList) uint64 {
	var total uint64
	for _, l := range ll {
		total += l.NBlocks()
	}
	return total
}

// TestDecomposeNonDyadicInterval is scenario S4: intersecting
// Side(0, 3) with Side(2, 2) produces [2,6), a single Side(2, 2).
func TestDecomposeNonDyadicInterval(t *testing.T) {
	got := intersectSides(block.Side{Endpoint: 0, BitDepth: 3}, block.Side{Endpoint: 2, BitDepth: 2})
	want := []block.Side{{Endpoint: 2, BitDepth: 2}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("intersectSides = %+v, want %+v", got, want)
	}
}

func TestMultiplyByConstantIsIdentity(t *testing.T) {
	l := block.Linear(4, false)
	c := block.Constant([]uint64{4})
	got, _, _ := Multiply(c, l).Combine()
	want, _, _ := l.Clone().Combine()
	if totalMass(got) != totalMass(want) {
		t.Fatalf("multiply-by-constant changed total mass: got=%d want=%d", totalMass(got), totalMass(want))
	}
	if len(got) != len(want) {
		t.Fatalf("multiply-by-constant changed leaf count: got=%d want=%d", len(got), len(want))
	}
}

func TestMultiplyCommutative(t *testing.T) {
	a := block.Linear(3, false)
	b := block.Linear(3, true)
	ab := Multiply(a, b)
	ba := Multiply(b, a)
	if totalMass(ab) != totalMass(ba) {
		t.Fatalf("multiply not commutative by mass: ab=%d ba=%d", totalMass(ab), totalMass(ba))
	}
	if len(ab) != len(ba) {
		t.Fatalf("multiply not commutative by leaf count: ab=%d ba=%d", len(ab), len(ba))
	}
}

func TestIntersectSidesDisjoint(t *testing.T) {
	got := intersectSides(block.Side{Endpoint: 0, BitDepth: 1}, block.Side{Endpoint: 4, BitDepth: 1})
	if got != nil {
		t.Fatalf("expected no intersection, got %+v", got)
	}
}

func TestLineSegmentToSides(t *testing.T) {
	// length 5 = 0b101 -> side of depth 0 then depth 2
	sides := lineSegmentToSides(10, 5)
	want := []block.Side{{Endpoint: 10, BitDepth: 0}, {Endpoint: 11, BitDepth: 2}}
	if len(sides) != 2 || sides[0] != want[0] || sides[1] != want[1] {
		t.Fatalf("lineSegmentToSides(10, 5) = %+v, want %+v", sides, want)
	}
}
