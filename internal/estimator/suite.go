package estimator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"stratsim/domain/study"
	"stratsim/internal/errors"
)

// Inputs carries the per-stratum data consumed by the estimator suite for one
// replication. Strata are addressed by position; Weights, Clean and Mixed are
// parallel slices.
type Inputs struct {
	Weights []float64   // population proportion per stratum, summing to 1
	Clean   [][]float64 // clean realization per stratum
	Mixed   [][]float64 // contaminated realization per stratum
}

// Validate checks the structural preconditions shared by all three estimators
func (in Inputs) Validate() error {
	if len(in.Weights) == 0 {
		return errors.InvalidInput("estimator inputs declare no strata")
	}
	if len(in.Clean) != len(in.Weights) || len(in.Mixed) != len(in.Weights) {
		return errors.InvalidInput(fmt.Sprintf("mismatched stratum counts: %d weights, %d clean, %d mixed",
			len(in.Weights), len(in.Clean), len(in.Mixed)))
	}
	sum := 0.0
	for h, w := range in.Weights {
		if len(in.Clean[h]) == 0 || len(in.Mixed[h]) == 0 {
			return errors.InvalidInput(fmt.Sprintf("stratum %d has an empty realization", h))
		}
		sum += w
	}
	if math.Abs(sum-1) > study.WeightTolerance {
		return errors.InvalidInput(fmt.Sprintf("stratum weights sum to %.12f, want 1", sum))
	}
	return nil
}

// Suite runs the three competing population-mean estimators over one
// replication's strata
type Suite struct {
	trimWeight float64
}

// NewSuite creates an estimator suite with the given tail-trimming proportion
// for the trimmed hybrid. Values at or above 0.5 would always empty the
// trimmed slice and are rejected up front.
func NewSuite(trimWeight float64) (*Suite, error) {
	if trimWeight < 0 || trimWeight >= 0.5 {
		return nil, errors.InvalidParameter(fmt.Sprintf("trim weight must be in [0, 0.5), got %g", trimWeight))
	}
	return &Suite{trimWeight: trimWeight}, nil
}

// TrimWeight returns the configured tail-trimming proportion
func (s *Suite) TrimWeight() float64 {
	return s.trimWeight
}

// EstimateAll runs all three estimators and returns their outputs for one
// replication. Any estimator failure fails the whole replication.
func (s *Suite) EstimateAll(in Inputs) (study.EstimateTriple, error) {
	if err := in.Validate(); err != nil {
		return study.EstimateTriple{}, err
	}
	neyman, err := s.Neyman(in)
	if err != nil {
		return study.EstimateTriple{}, errors.Wrap(err, "neyman estimator")
	}
	weighted, err := s.WeightedHybrid(in)
	if err != nil {
		return study.EstimateTriple{}, errors.Wrap(err, "weighted hybrid estimator")
	}
	trimmed, err := s.TrimmedHybrid(in)
	if err != nil {
		return study.EstimateTriple{}, errors.Wrap(err, "trimmed hybrid estimator")
	}
	return study.EstimateTriple{
		Neyman:         neyman,
		WeightedHybrid: weighted,
		TrimmedHybrid:  trimmed,
	}, nil
}

// combine computes the population-proportion weighted sum of stratum
// estimates. Weights sum to 1, so the gonum weighted mean reduces to exactly
// that sum.
func combine(weights, estimates []float64) float64 {
	return stat.Mean(estimates, weights)
}
