package sampling

import (
	"fmt"
	"math"
	"math/rand/v2"

	"stratsim/domain/study"
	"stratsim/internal/errors"
	"stratsim/internal/population"
)

// Source selects which realization a sample is drawn from
type Source int

const (
	SourceClean Source = iota
	SourceMixed
)

// Sampler draws proportionally allocated sub-samples across strata. It is a
// standalone sampling primitive: the estimator suite does not consume its
// output, but the scenario pipeline exercises it for diagnostics.
type Sampler struct{}

// NewSampler creates a stratified sampler
func NewSampler() *Sampler {
	return &Sampler{}
}

// Allocate returns per-stratum sample sizes for an overall target of n,
// proportional to each stratum's share of the total population. The allocation
// sums to n up to rounding.
func (s *Sampler) Allocate(scenario study.Scenario, n int) ([]int, error) {
	if n <= 0 {
		return nil, errors.InvalidParameter(fmt.Sprintf("sample size must be positive, got %d", n))
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	weights := scenario.Weights()
	alloc := make([]int, len(weights))
	for h, w := range weights {
		alloc[h] = int(math.Round(w * float64(n)))
	}
	return alloc, nil
}

// Draw samples the allocated counts without replacement from each stratum's
// clean or mixed realization and returns the pooled values. Stratum origin is
// not retained in the output.
func (s *Sampler) Draw(scenario study.Scenario, realizations []population.Realization, n int, source Source, rng *rand.Rand) ([]float64, error) {
	if len(realizations) != len(scenario.Strata) {
		return nil, errors.InvalidInput(fmt.Sprintf("got %d realizations for %d strata", len(realizations), len(scenario.Strata)))
	}
	alloc, err := s.Allocate(scenario, n)
	if err != nil {
		return nil, err
	}
	sample := make([]float64, 0, n)
	for h, k := range alloc {
		values := realizations[h].Clean
		if source == SourceMixed {
			values = realizations[h].Mixed
		}
		if k > len(values) {
			return nil, errors.InsufficientData(fmt.Sprintf("stratum %d: allocation %d exceeds %d available values", h, k, len(values)))
		}
		for _, idx := range rng.Perm(len(values))[:k] {
			sample = append(sample, values[idx])
		}
	}
	return sample, nil
}
