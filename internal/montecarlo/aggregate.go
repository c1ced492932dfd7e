package montecarlo

import (
	"github.com/montanaflynn/stats"

	"stratsim/domain/study"
	"stratsim/internal/errors"
)

// aggregate computes the per-estimator bias, variance and MSE of the
// replicated estimates against the scenario's reference mean
func aggregate(estimates []study.EstimateTriple, trueValue float64) (study.ScenarioSummary, error) {
	neyman := make([]float64, len(estimates))
	weighted := make([]float64, len(estimates))
	trimmed := make([]float64, len(estimates))
	for i, e := range estimates {
		neyman[i] = e.Neyman
		weighted[i] = e.WeightedHybrid
		trimmed[i] = e.TrimmedHybrid
	}

	var summary study.ScenarioSummary
	var err error
	if summary.Neyman, err = summarizeEstimator(neyman, trueValue); err != nil {
		return study.ScenarioSummary{}, errors.Wrap(err, "neyman")
	}
	if summary.WeightedHybrid, err = summarizeEstimator(weighted, trueValue); err != nil {
		return study.ScenarioSummary{}, errors.Wrap(err, "weighted hybrid")
	}
	if summary.TrimmedHybrid, err = summarizeEstimator(trimmed, trueValue); err != nil {
		return study.ScenarioSummary{}, errors.Wrap(err, "trimmed hybrid")
	}
	return summary, nil
}

// summarizeEstimator computes empirical bias, population variance (divisor R)
// and MSE = variance + bias^2 for one estimator's replicated estimates
func summarizeEstimator(estimates []float64, trueValue float64) (study.EstimatorSummary, error) {
	mean, err := stats.Mean(estimates)
	if err != nil {
		return study.EstimatorSummary{}, errors.Wrap(err, "estimate mean")
	}
	variance, err := stats.PopulationVariance(estimates)
	if err != nil {
		return study.EstimatorSummary{}, errors.Wrap(err, "estimate variance")
	}
	bias := mean - trueValue
	return study.EstimatorSummary{
		Bias:     bias,
		Variance: variance,
		MSE:      variance + bias*bias,
	}, nil
}

// summarizeValues computes the descriptive statistics exposed for diagnostics
func summarizeValues(values []float64) (study.ValueSummary, error) {
	max, err := stats.Max(values)
	if err != nil {
		return study.ValueSummary{}, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return study.ValueSummary{}, err
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return study.ValueSummary{}, err
	}
	sd, err := stats.StandardDeviation(values)
	if err != nil {
		return study.ValueSummary{}, err
	}
	return study.ValueSummary{Max: max, Min: min, Mean: mean, SD: sd}, nil
}
