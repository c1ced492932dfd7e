package estimator

import (
	"github.com/montanaflynn/stats"

	"stratsim/internal/errors"
)

// Neyman computes the plain stratified sample mean: the population-proportion
// weighted sum of per-stratum means over the contaminated realizations. It
// carries no robustness at all, every outlier enters its stratum mean at full
// weight, so it serves as the baseline that degrades under contamination.
// With a zero outlier proportion the mixed realization equals the clean one
// and this reduces to the classical stratified estimator.
func (s *Suite) Neyman(in Inputs) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	means := make([]float64, len(in.Mixed))
	for h, values := range in.Mixed {
		m, err := stats.Mean(values)
		if err != nil {
			return 0, errors.Wrapf(err, "stratum %d mean", h)
		}
		means[h] = m
	}
	return combine(in.Weights, means), nil
}
