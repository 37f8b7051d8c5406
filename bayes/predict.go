package bayes

import "github.com/fuscadan/gfs/internal/gfslog"

// Predict averages model's predictive distribution over every posterior
// sample, for an optional covariate x shared by every row.
func Predict(model Model, samples ParameterSamples, x *int) (PredictiveDists, error) {
	gfslog.Infof("predicting: n_samples=%d", len(samples))
	dists := PredictiveDists{Categories: model.Categories(), Dists: make([]Distribution, 0, len(samples))}
	for _, param := range samples {
		dist, err := model.Dist(param, x)
		if err != nil {
			return PredictiveDists{}, err
		}
		dists.Dists = append(dists.Dists, dist)
	}
	return dists, nil
}
