package population

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"stratsim/domain/study"
	"stratsim/internal/errors"
)

// Realization holds one stratum's generated values for a single replication.
// Mixed always has the same length as Clean: outliers replace values, they are
// never appended on top.
type Realization struct {
	Clean []float64
	Mixed []float64
}

// Generator draws stratum values from the configured distributions
type Generator struct{}

// NewGenerator creates a stratum value generator
func NewGenerator() *Generator {
	return &Generator{}
}

// DrawClean samples spec.Size values independently from Normal(spec.Mean, spec.SD)
func (g *Generator) DrawClean(spec study.StratumSpec, rng *rand.Rand) ([]float64, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	dist := distuv.Normal{Mu: spec.Mean, Sigma: spec.SD, Src: rng}
	values := make([]float64, spec.Size)
	for i := range values {
		values[i] = dist.Rand()
	}
	return values, nil
}

// DrawOutliers samples count heavy-tailed contamination values: Student-t with
// one degree of freedom, shifted by the empirical mean of the clean values.
// count may equal len(clean); a fully replaced stratum is legal.
func (g *Generator) DrawOutliers(clean []float64, count int, rng *rand.Rand) ([]float64, error) {
	if count < 0 {
		return nil, errors.InvalidParameter(fmt.Sprintf("outlier count must be non-negative, got %d", count))
	}
	if count > len(clean) {
		return nil, errors.InsufficientData(fmt.Sprintf("outlier count %d exceeds stratum size %d", count, len(clean)))
	}
	if count == 0 {
		return nil, nil
	}
	shift, err := stats.Mean(clean)
	if err != nil {
		return nil, errors.Wrap(err, "empirical mean of clean values")
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: 1, Src: rng}
	values := make([]float64, count)
	for i := range values {
		values[i] = shift + dist.Rand()
	}
	return values, nil
}

// OutlierCount returns round(proportion * size), the number of values the
// contamination step replaces in a stratum of the given size
func OutlierCount(proportion float64, size int) (int, error) {
	if proportion < 0 || proportion > 1 {
		return 0, errors.InvalidParameter(fmt.Sprintf("outlier proportion must be in [0,1], got %g", proportion))
	}
	return int(math.Round(proportion * float64(size))), nil
}
