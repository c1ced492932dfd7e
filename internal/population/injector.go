package population

import (
	"fmt"
	"math/rand/v2"

	"stratsim/domain/study"
	"stratsim/internal/errors"
)

// Injector replaces randomly chosen clean values with generated outliers
type Injector struct{}

// NewInjector creates a contamination injector
func NewInjector() *Injector {
	return &Injector{}
}

// Mix removes len(outliers) distinct positions from clean, chosen uniformly at
// random without replacement, and appends the outliers to the remainder. The
// result always has the same length as clean. Downstream estimators are
// permutation-invariant per stratum, so the resulting order carries no meaning.
func (inj *Injector) Mix(clean, outliers []float64, rng *rand.Rand) ([]float64, error) {
	k := len(outliers)
	if k > len(clean) {
		return nil, errors.InsufficientData(fmt.Sprintf("%d outliers cannot replace values in a stratum of %d", k, len(clean)))
	}
	mixed := make([]float64, 0, len(clean))
	if k == 0 {
		return append(mixed, clean...), nil
	}
	drop := make(map[int]struct{}, k)
	for _, idx := range rng.Perm(len(clean))[:k] {
		drop[idx] = struct{}{}
	}
	for i, v := range clean {
		if _, removed := drop[i]; !removed {
			mixed = append(mixed, v)
		}
	}
	return append(mixed, outliers...), nil
}

// Factory builds complete stratum realizations: clean draws plus the
// contaminated mixture for a given outlier proportion
type Factory struct {
	gen *Generator
	inj *Injector
}

// NewFactory creates a realization factory
func NewFactory() *Factory {
	return &Factory{gen: NewGenerator(), inj: NewInjector()}
}

// Realize generates one stratum realization end to end
func (f *Factory) Realize(spec study.StratumSpec, proportion float64, rng *rand.Rand) (Realization, error) {
	clean, err := f.gen.DrawClean(spec, rng)
	if err != nil {
		return Realization{}, err
	}
	count, err := OutlierCount(proportion, spec.Size)
	if err != nil {
		return Realization{}, err
	}
	outliers, err := f.gen.DrawOutliers(clean, count, rng)
	if err != nil {
		return Realization{}, err
	}
	mixed, err := f.inj.Mix(clean, outliers, rng)
	if err != nil {
		return Realization{}, err
	}
	return Realization{Clean: clean, Mixed: mixed}, nil
}
