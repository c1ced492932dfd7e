package study

// Reference experiment defaults
const (
	DefaultReplications = 100
	DefaultTrimWeight   = 0.05
)

// referenceProportions are the contamination levels of the study grid
var referenceProportions = []float64{0.05, 0.10, 0.20}

// threeStrata is the 3-stratum reference population, 100,000 units total
var threeStrata = []StratumSpec{
	{Size: 32145, Mean: 1.0, SD: 2.0},
	{Size: 28734, Mean: 1.5, SD: 3.0},
	{Size: 39121, Mean: 2.0, SD: 4.0},
}

// sixStrata is the 6-stratum reference population, 100,000 units total
var sixStrata = []StratumSpec{
	{Size: 15230, Mean: 1.0, SD: 2.0},
	{Size: 17890, Mean: 1.5, SD: 2.5},
	{Size: 16445, Mean: 2.0, SD: 3.0},
	{Size: 17120, Mean: 2.5, SD: 3.5},
	{Size: 16880, Mean: 3.0, SD: 4.0},
	{Size: 16435, Mean: 3.5, SD: 4.5},
}

// ReferenceGrid returns the six study scenarios in their declared reporting
// order: contamination level major, stratum count minor. The order is fixed so
// results stay addressable by index regardless of execution scheduling.
func ReferenceGrid(replications int) []Scenario {
	if replications <= 0 {
		replications = DefaultReplications
	}
	grid := make([]Scenario, 0, len(referenceProportions)*2)
	for _, p := range referenceProportions {
		for _, strata := range [][]StratumSpec{threeStrata, sixStrata} {
			grid = append(grid, Scenario{
				OutlierProportion: p,
				Strata:            cloneSpecs(strata),
				Replications:      replications,
			})
		}
	}
	return grid
}

func cloneSpecs(specs []StratumSpec) []StratumSpec {
	out := make([]StratumSpec, len(specs))
	copy(out, specs)
	return out
}
