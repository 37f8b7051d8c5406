// Package bayes is the Bayesian driver: it conditions a prior leaf list on
// a stream of observations via exact multiplicative update, samples the
// resulting posterior, and averages per-sample predictive distributions
// (spec.md §4.7).
package bayes

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fuscadan/gfs/gfserr"
)

// DataPoint is one observation: an id, an optional covariate X, and an
// optional observed value Y (nil for predict-only rows). original_source's
// (id, x?, y?) tuple.
type DataPoint struct {
	ID int
	X  *int
	Y  *int
}

// Parameter is a non-empty point in a parameter domain, one float per axis.
type Parameter []float64

// NewParameter validates that values is non-empty before returning it as a
// Parameter.
func NewParameter(values []float64) (Parameter, error) {
	if len(values) == 0 {
		return nil, &gfserr.DomainError{Msg: "parameter cannot be empty"}
	}
	return Parameter(values), nil
}

// Distribution is a non-negative tuple of floats summing to 1 within 1e-6.
type Distribution []float64

const distributionTolerance = 1e-6

// NewDistribution validates that values sums to 1 within tolerance.
func NewDistribution(values []float64) (Distribution, error) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	if diff := sum - 1; diff < -distributionTolerance || diff > distributionTolerance {
		return nil, &gfserr.DomainError{Msg: fmt.Sprintf("distribution sums to %v, not 1", sum)}
	}
	return Distribution(values), nil
}

// ParameterSamples is a sequence of samples drawn from a posterior.
type ParameterSamples []Parameter

// HistogramEntry is one distinct sampled parameter and its occurrence count.
type HistogramEntry struct {
	Parameter Parameter
	Count     int
}

func paramKey(p Parameter) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, "|")
}

// Histogram builds the occurrence count of each distinct sampled
// parameter, in first-seen order (covering only the grid points that
// occurred, per spec.md §6).
func (s ParameterSamples) Histogram() []HistogramEntry {
	index := make(map[string]int, len(s))
	var entries []HistogramEntry
	for _, p := range s {
		k := paramKey(p)
		if i, ok := index[k]; ok {
			entries[i].Count++
			continue
		}
		index[k] = len(entries)
		entries = append(entries, HistogramEntry{Parameter: p, Count: 1})
	}
	return entries
}

// PredictiveDists is the sequence of per-sample predictive distributions
// produced by Predict, tagged with the category names they're over.
type PredictiveDists struct {
	Categories []string
	Dists      []Distribution
}

// Mean returns the average predictive distribution across all samples.
func (p PredictiveDists) Mean() (Distribution, error) {
	if len(p.Dists) == 0 {
		return nil, &gfserr.DomainError{Msg: "cannot average zero predictive distributions"}
	}
	means := make([]float64, len(p.Categories))
	for _, dist := range p.Dists {
		for i := range means {
			means[i] += dist[i]
		}
	}
	for i := range means {
		means[i] /= float64(len(p.Dists))
	}
	return NewDistribution(means)
}

// SortedEntries returns a copy of entries sorted by parameter value. Used
// by callers that want a stable secondary ordering (e.g. golden tests)
// instead of Histogram's default first-seen order.
func SortedEntries(entries []HistogramEntry) []HistogramEntry {
	out := append([]HistogramEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Parameter, out[j].Parameter
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return out
}
