package estimator

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"stratsim/internal/errors"
)

// TrimmedHybrid sorts each mixed stratum, drops round(trimWeight * length)
// order statistics from each tail and averages the remainder, then combines
// the per-stratum trimmed means by population proportion. With a trim weight
// of zero it degenerates to the plain mean of the mixed realizations.
func (s *Suite) TrimmedHybrid(in Inputs) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	estimates := make([]float64, len(in.Mixed))
	for h, values := range in.Mixed {
		tm, err := trimmedMean(values, s.trimWeight)
		if err != nil {
			return 0, errors.Wrapf(err, "stratum %d", h)
		}
		estimates[h] = tm
	}
	return combine(in.Weights, estimates), nil
}

// trimmedMean averages values after symmetric tail trimming. An allocation
// that would leave nothing to average is an input error, never a silent NaN.
func trimmedMean(values []float64, trimWeight float64) (float64, error) {
	k := int(math.Round(trimWeight * float64(len(values))))
	if 2*k >= len(values) {
		return 0, errors.InvalidInput(fmt.Sprintf("trimming %d values from each tail empties a slice of %d", k, len(values)))
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	m, err := stats.Mean(sorted[k : len(sorted)-k])
	if err != nil {
		return 0, errors.Wrap(err, "trimmed mean")
	}
	return m, nil
}
