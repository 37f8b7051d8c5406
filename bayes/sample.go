package bayes

import (
	"github.com/fuscadan/gfs/domain"
	"github.com/fuscadan/gfs/gfserr"
	"github.com/fuscadan/gfs/internal/gfslog"
	"github.com/fuscadan/gfs/internal/tree"
	"github.com/fuscadan/gfs/internal/xrand"
)

// Sample builds a labelled prefix tree over posterior and draws n
// independent integer-coordinate samples, rescaling each to dom's units.
func Sample(posterior Posterior, dom domain.Domain, n int, rng *xrand.Source) (ParameterSamples, error) {
	gfslog.Infof("sampling posterior: n=%d", n)
	t := tree.New(posterior)
	gfslog.Debugf("sampling posterior: tree depth=%d", t.Depth)

	coordSamples, exhaustedAt, ok := t.SampleN(rng, n)
	if !ok {
		return nil, &gfserr.SamplingExhausted{Attempts: exhaustedAt}
	}

	samples := make(ParameterSamples, len(coordSamples))
	for i, coords := range coordSamples {
		scaled, err := dom.Scale(coords)
		if err != nil {
			return nil, err
		}
		samples[i] = Parameter(scaled)
	}
	return samples, nil
}
