package bayes

import (
	"math"
	"testing"

	"github.com/fuscadan/gfs/domain"
	"github.com/fuscadan/gfs/internal/block"
	"github.com/fuscadan/gfs/internal/xrand"
)

// binomialLikelihood is a minimal stand-in for models/binomial.Likelihood,
// kept local to avoid an import cycle with the models package under test.
type binomialLikelihood struct {
	dom domain.Domain
}

func (l binomialLikelihood) Domain() domain.Domain { return l.dom }

func (l binomialLikelihood) Leaves(datum DataPoint) (block.LeafList, error) {
	switch *datum.Y {
	case 0:
		return block.Linear(l.dom.BitDepth(), true), nil
	case 1:
		return block.Linear(l.dom.BitDepth(), false), nil
	default:
		panic("invalid y")
	}
}

func yData(ys ...int) []DataPoint {
	data := make([]DataPoint, len(ys))
	for i, y := range ys {
		y := y
		data[i] = DataPoint{ID: i, Y: &y}
	}
	return data
}

func meanOf(samples ParameterSamples) float64 {
	var sum float64
	for _, s := range samples {
		sum += s[0]
	}
	return sum / float64(len(samples))
}

// TestUpdatePriorTenHeads exercises the rule-of-succession scenario: a
// uniform prior over bias, updated with 10 heads and 0 tails, concentrates
// around (10+1)/(10+2) = 0.9167.
func TestUpdatePriorTenHeads(t *testing.T) {
	const bitDepth = 6
	dom := domain.Domain{{Name: "bias_towards_heads", Left: 0, Right: 1, BitDepth: bitDepth}}
	prior := block.Constant([]uint64{bitDepth})
	likelihood := binomialLikelihood{dom: dom}

	heads := make([]int, 10)
	for i := range heads {
		heads[i] = 1
	}
	posterior, err := UpdatePrior(prior, likelihood, yData(heads...), 10)
	if err != nil {
		t.Fatalf("UpdatePrior: %s", err)
	}
	posterior = FinalizePosterior(posterior)

	rng := xrand.New(1)
	samples, err := Sample(posterior, dom, 4000, rng)
	if err != nil {
		t.Fatalf("Sample: %s", err)
	}

	got := meanOf(samples)
	want := 11.0 / 12.0
	if math.Abs(got-want) > 0.03 {
		t.Fatalf("posterior mean = %v, want approximately %v", got, want)
	}
}

// TestUpdatePriorEmptyDataIsIdentity covers spec scenario S2: updating on no
// data leaves the prior's mean (0.5 for a uniform prior) unchanged.
func TestUpdatePriorEmptyDataIsIdentity(t *testing.T) {
	const bitDepth = 5
	dom := domain.Domain{{Name: "bias_towards_heads", Left: 0, Right: 1, BitDepth: bitDepth}}
	prior := block.Constant([]uint64{bitDepth})
	likelihood := binomialLikelihood{dom: dom}

	posterior, err := UpdatePrior(prior, likelihood, nil, 10)
	if err != nil {
		t.Fatalf("UpdatePrior: %s", err)
	}
	posterior = FinalizePosterior(posterior)

	rng := xrand.New(2)
	samples, err := Sample(posterior, dom, 4000, rng)
	if err != nil {
		t.Fatalf("Sample: %s", err)
	}

	got := meanOf(samples)
	if math.Abs(got-0.5) > 0.03 {
		t.Fatalf("posterior mean = %v, want approximately 0.5", got)
	}
}

// TestUpdatePriorAlternatingObservations covers spec scenario S3:
// contradictory alternating heads/tails observations should not empty the
// leaf list, and should concentrate the posterior near 0.5.
func TestUpdatePriorAlternatingObservations(t *testing.T) {
	const bitDepth = 6
	dom := domain.Domain{{Name: "bias_towards_heads", Left: 0, Right: 1, BitDepth: bitDepth}}
	prior := block.Constant([]uint64{bitDepth})
	likelihood := binomialLikelihood{dom: dom}

	ys := make([]int, 20)
	for i := range ys {
		ys[i] = i % 2
	}
	posterior, err := UpdatePrior(prior, likelihood, yData(ys...), 10)
	if err != nil {
		t.Fatalf("UpdatePrior: %s", err)
	}
	if len(posterior) == 0 {
		t.Fatal("posterior is empty after alternating observations")
	}
	posterior = FinalizePosterior(posterior)

	rng := xrand.New(3)
	samples, err := Sample(posterior, dom, 4000, rng)
	if err != nil {
		t.Fatalf("Sample: %s", err)
	}

	got := meanOf(samples)
	if math.Abs(got-0.5) > 0.05 {
		t.Fatalf("posterior mean = %v, want approximately 0.5", got)
	}
}
