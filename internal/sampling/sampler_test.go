package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratsim/adapters/rng"
	"stratsim/domain/study"
	"stratsim/internal/errors"
	"stratsim/internal/population"
)

func twoStrataScenario() study.Scenario {
	return study.Scenario{
		OutlierProportion: 0.1,
		Strata: []study.StratumSpec{
			{Size: 60, Mean: 1, SD: 1},
			{Size: 40, Mean: 2, SD: 1},
		},
		Replications: 1,
	}
}

// constantRealizations builds strata whose values identify their origin
func constantRealizations(sc study.Scenario) []population.Realization {
	realizations := make([]population.Realization, len(sc.Strata))
	for h, spec := range sc.Strata {
		clean := make([]float64, spec.Size)
		mixed := make([]float64, spec.Size)
		// Clean values carry the stratum ordinal; mixed values are shifted by
		// 0.5 so the source modes are tellable apart.
		for i := range clean {
			clean[i] = float64(h + 1)
			mixed[i] = float64(h+1) + 0.5
		}
		realizations[h] = population.Realization{Clean: clean, Mixed: mixed}
	}
	return realizations
}

func TestAllocateIsProportional(t *testing.T) {
	sampler := NewSampler()
	alloc, err := sampler.Allocate(twoStrataScenario(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 4}, alloc)
}

func TestAllocateSumsToTargetUpToRounding(t *testing.T) {
	sampler := NewSampler()
	sc := study.Scenario{
		OutlierProportion: 0,
		Strata: []study.StratumSpec{
			{Size: 32145, Mean: 1, SD: 2},
			{Size: 28734, Mean: 1.5, SD: 3},
			{Size: 39121, Mean: 2, SD: 4},
		},
		Replications: 1,
	}
	for _, n := range []int{10, 97, 1000, 12345} {
		alloc, err := sampler.Allocate(sc, n)
		require.NoError(t, err)
		total := 0
		for _, k := range alloc {
			total += k
		}
		// Each stratum rounds by at most half a unit.
		assert.LessOrEqual(t, abs(total-n), len(sc.Strata)/2+1, "n=%d alloc=%v", n, alloc)
	}
}

func TestAllocateRejectsNonPositiveTarget(t *testing.T) {
	sampler := NewSampler()
	_, err := sampler.Allocate(twoStrataScenario(), 0)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidParameter, errors.GetCode(err))
}

func TestDrawPoolsProportionally(t *testing.T) {
	sampler := NewSampler()
	sc := twoStrataScenario()
	realizations := constantRealizations(sc)
	stream := rng.New().SeededStream("draw-clean", 42)

	sample, err := sampler.Draw(sc, realizations, 10, SourceClean, stream)
	require.NoError(t, err)
	require.Len(t, sample, 10)

	counts := map[float64]int{}
	for _, v := range sample {
		counts[v]++
	}
	assert.Equal(t, 6, counts[1], "stratum 0 share")
	assert.Equal(t, 4, counts[2], "stratum 1 share")
}

func TestDrawRespectsSourceMode(t *testing.T) {
	sampler := NewSampler()
	sc := twoStrataScenario()
	realizations := constantRealizations(sc)
	stream := rng.New().SeededStream("draw-mixed", 42)

	sample, err := sampler.Draw(sc, realizations, 10, SourceMixed, stream)
	require.NoError(t, err)
	for _, v := range sample {
		assert.Contains(t, []float64{1.5, 2.5}, v)
	}
}

func TestDrawRejectsOversizedAllocation(t *testing.T) {
	sampler := NewSampler()
	sc := twoStrataScenario()

	// Hand-built realizations shorter than the specs promise.
	realizations := []population.Realization{
		{Clean: []float64{1, 1}, Mixed: []float64{1, 1}},
		{Clean: []float64{2, 2}, Mixed: []float64{2, 2}},
	}
	stream := rng.New().SeededStream("draw-short", 1)

	_, err := sampler.Draw(sc, realizations, 10, SourceClean, stream)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientData, errors.GetCode(err))
}

func TestDrawRejectsMismatchedRealizations(t *testing.T) {
	sampler := NewSampler()
	sc := twoStrataScenario()
	stream := rng.New().SeededStream("draw-mismatch", 1)

	_, err := sampler.Draw(sc, nil, 10, SourceClean, stream)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
