// Package binomial implements the one built-in model: inferring a biased
// coin's bias towards heads from a stream of heads/tails trials.
package binomial

import (
	"fmt"

	"github.com/fuscadan/gfs/bayes"
	"github.com/fuscadan/gfs/domain"
	"github.com/fuscadan/gfs/gfserr"
	"github.com/fuscadan/gfs/internal/block"
)

// Likelihood is the Binomial trial likelihood: y=1 ("heads") favours high
// parameter values via an ascending ramp, y=0 ("tails") a descending one.
type Likelihood struct {
	dom domain.Domain
}

func (l Likelihood) Domain() domain.Domain { return l.dom }

// Leaves implements bayes.Likelihood. Only y in {0, 1} is accepted.
func (l Likelihood) Leaves(datum bayes.DataPoint) (block.LeafList, error) {
	if datum.Y == nil {
		return nil, &gfserr.DataError{Row: datum.ID, Msg: "binomial likelihood requires an observed y"}
	}
	switch *datum.Y {
	case 0:
		return block.Linear(l.dom.BitDepth(), true), nil
	case 1:
		return block.Linear(l.dom.BitDepth(), false), nil
	default:
		return nil, &gfserr.DataError{Row: datum.ID, Msg: fmt.Sprintf("invalid binomial observation y=%d, want 0 or 1", *datum.Y)}
	}
}

// Model is the Binomial model: a single parameter axis, "bias_towards_heads",
// over [0, 1], with categories (tails, heads).
type Model struct {
	paramDomain domain.Domain
	prior       bayes.Prior
	likelihood  Likelihood
}

// New builds a Binomial model discretising the bias parameter into
// 2^bitDepth grid cells.
func New(bitDepth uint64) *Model {
	paramDomain := domain.Domain{{
		Name:     "bias_towards_heads",
		Left:     0.0,
		Right:    1.0,
		BitDepth: bitDepth,
	}}
	return &Model{
		paramDomain: paramDomain,
		prior:       block.Constant([]uint64{paramDomain.BitDepth()}),
		likelihood:  Likelihood{dom: paramDomain},
	}
}

func (m *Model) ParamDomain() domain.Domain   { return m.paramDomain }
func (m *Model) Prior() bayes.Prior           { return m.prior }
func (m *Model) Likelihood() bayes.Likelihood { return m.likelihood }
func (m *Model) Categories() []string         { return []string{"tails", "heads"} }

// Dist implements bayes.Model: the predictive distribution over
// (tails, heads) given a sampled bias.
func (m *Model) Dist(param bayes.Parameter, x *int) (bayes.Distribution, error) {
	if len(param) != 1 {
		return nil, &gfserr.DomainError{Msg: fmt.Sprintf("binomial model expects a 1-axis parameter, got %d", len(param))}
	}
	bias := param[0]
	return bayes.NewDistribution([]float64{1 - bias, bias})
}
