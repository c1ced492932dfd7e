package study

import (
	"fmt"

	"stratsim/internal/errors"
)

// WeightTolerance is the floating-point slack allowed when stratum population
// proportions are checked against 1.
const WeightTolerance = 1e-9

// StratumSpec defines one population stratum: its size and the parameters of
// the normal distribution its clean values are drawn from
type StratumSpec struct {
	Size int     `json:"size"`
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
}

// Validate checks the stratum parameters eagerly, before any random draws
func (s StratumSpec) Validate() error {
	if s.Size <= 0 {
		return errors.InvalidParameter(fmt.Sprintf("stratum size must be positive, got %d", s.Size))
	}
	if s.SD <= 0 {
		return errors.InvalidParameter(fmt.Sprintf("stratum standard deviation must be positive, got %g", s.SD))
	}
	return nil
}

// Scenario identifies one experiment cell: an outlier proportion applied to an
// ordered sequence of strata, replicated a fixed number of times
type Scenario struct {
	OutlierProportion float64       `json:"outlier_proportion"`
	Strata            []StratumSpec `json:"strata"`
	Replications      int           `json:"replications"`

	// TrueValue optionally overrides the reference population mean used for the
	// bias computation. When nil the reference is derived from the strata specs.
	TrueValue *float64 `json:"true_value,omitempty"`
}

// Validate checks the full scenario configuration eagerly
func (sc Scenario) Validate() error {
	if sc.OutlierProportion < 0 || sc.OutlierProportion > 1 {
		return errors.InvalidParameter(fmt.Sprintf("outlier proportion must be in [0,1], got %g", sc.OutlierProportion))
	}
	if sc.Replications <= 0 {
		return errors.InvalidParameter(fmt.Sprintf("replications must be positive, got %d", sc.Replications))
	}
	if len(sc.Strata) == 0 {
		return errors.InvalidParameter("scenario must declare at least one stratum")
	}
	for h, spec := range sc.Strata {
		if err := spec.Validate(); err != nil {
			return errors.Wrapf(err, "stratum %d", h)
		}
	}
	return nil
}

// TotalSize returns the finite population size, the sum of all stratum sizes
func (sc Scenario) TotalSize() int {
	total := 0
	for _, spec := range sc.Strata {
		total += spec.Size
	}
	return total
}

// Weights returns each stratum's proportion of the total population, in
// stratum order. The proportions sum to 1 up to floating-point error.
func (sc Scenario) Weights() []float64 {
	total := float64(sc.TotalSize())
	weights := make([]float64, len(sc.Strata))
	for h, spec := range sc.Strata {
		weights[h] = float64(spec.Size) / total
	}
	return weights
}

// ReferenceMean returns the true population mean the bias is measured against:
// the explicit override when one is set, otherwise the population-proportion
// weighted sum of the stratum means
func (sc Scenario) ReferenceMean() float64 {
	if sc.TrueValue != nil {
		return *sc.TrueValue
	}
	weights := sc.Weights()
	mean := 0.0
	for h, spec := range sc.Strata {
		mean += weights[h] * spec.Mean
	}
	return mean
}

// EstimateTriple holds the three estimators' outputs for one replication
type EstimateTriple struct {
	Neyman         float64 `json:"neyman"`
	WeightedHybrid float64 `json:"weighted_hybrid"`
	TrimmedHybrid  float64 `json:"trimmed_hybrid"`
}

// EstimatorSummary aggregates one estimator's replicated estimates against the
// scenario's reference mean. MSE is variance + bias^2 by construction.
type EstimatorSummary struct {
	Bias     float64 `json:"bias"`
	Variance float64 `json:"variance"`
	MSE      float64 `json:"mse"`
}

// ScenarioSummary holds the per-estimator aggregates for one scenario
type ScenarioSummary struct {
	Neyman         EstimatorSummary `json:"neyman"`
	WeightedHybrid EstimatorSummary `json:"weighted_hybrid"`
	TrimmedHybrid  EstimatorSummary `json:"trimmed_hybrid"`
}

// ValueSummary holds descriptive statistics for one sequence of values
type ValueSummary struct {
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
}

// StratumDiagnostics captures clean and mixed descriptive statistics for one
// stratum of the designated diagnostic replication. Strata are addressed by
// ordinal position in the scenario's stratum sequence.
type StratumDiagnostics struct {
	Stratum int          `json:"stratum"`
	Clean   ValueSummary `json:"clean"`
	Mixed   ValueSummary `json:"mixed"`
}
