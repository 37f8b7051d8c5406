package bayes

import (
	"github.com/fuscadan/gfs/domain"
	"github.com/fuscadan/gfs/internal/block"
)

// Prior is a leaf list over a model's parameter domain, before any
// observations have been incorporated.
type Prior = block.LeafList

// Posterior is a leaf list over a model's parameter domain, after
// conditioning on a stream of observations.
type Posterior = block.LeafList

// Likelihood gives, for one datum, the pointwise likelihood function on
// the parameter grid.
type Likelihood interface {
	// Domain is the parameter domain the returned leaf lists are over.
	Domain() domain.Domain
	// Leaves returns datum's pointwise likelihood as a leaf list over
	// Domain's axes. Implementations return a *gfserr.DataError for an
	// observation outside the accepted values.
	Leaves(datum DataPoint) (block.LeafList, error)
}

// Model bundles a parameter domain, a prior, a likelihood, the category
// names of a classification-style predictive distribution, and the
// predictive function itself. The core (UpdatePrior/Sample) does not
// require Dist; it exists for the predict CLI subcommand.
type Model interface {
	ParamDomain() domain.Domain
	Prior() Prior
	Likelihood() Likelihood
	Categories() []string
	// Dist returns the predictive distribution for one posterior sample
	// param, optionally conditioned on covariate x.
	Dist(param Parameter, x *int) (Distribution, error)
}
