package estimator

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"stratsim/internal/errors"
)

// WeightedHybrid down-weights each mixed observation by its distance from the
// clean stratum mean relative to the clean spread:
//
//	weight(x) = 1 / (1 + |x - mean_h| / sd_h)
//
// Distant values approach weight zero but never reach it. The per-stratum
// weighted averages are then combined by population proportion.
func (s *Suite) WeightedHybrid(in Inputs) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	estimates := make([]float64, len(in.Mixed))
	for h := range in.Mixed {
		mean, err := stats.Mean(in.Clean[h])
		if err != nil {
			return 0, errors.Wrapf(err, "stratum %d clean mean", h)
		}
		sd, err := stats.StandardDeviation(in.Clean[h])
		if err != nil {
			return 0, errors.Wrapf(err, "stratum %d clean standard deviation", h)
		}
		if sd == 0 {
			return 0, errors.DegenerateStratum(fmt.Sprintf("stratum %d has zero standard deviation", h))
		}
		var num, den float64
		for _, x := range in.Mixed[h] {
			w := 1 / (1 + math.Abs(x-mean)/sd)
			num += w * x
			den += w
		}
		estimates[h] = num / den
	}
	return combine(in.Weights, estimates), nil
}
