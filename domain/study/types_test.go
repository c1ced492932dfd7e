package study

import (
	"math"
	"testing"

	"stratsim/internal/errors"
)

func TestScenarioValidate(t *testing.T) {
	valid := Scenario{
		OutlierProportion: 0.05,
		Strata: []StratumSpec{
			{Size: 100, Mean: 1, SD: 2},
			{Size: 200, Mean: 2, SD: 3},
		},
		Replications: 10,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	cases := map[string]Scenario{
		"negative proportion": func() Scenario { s := valid; s.OutlierProportion = -0.1; return s }(),
		"proportion above 1":  func() Scenario { s := valid; s.OutlierProportion = 1.5; return s }(),
		"zero replications":   func() Scenario { s := valid; s.Replications = 0; return s }(),
		"no strata":           func() Scenario { s := valid; s.Strata = nil; return s }(),
		"zero stratum size": func() Scenario {
			s := valid
			s.Strata = []StratumSpec{{Size: 0, Mean: 1, SD: 2}}
			return s
		}(),
		"zero stratum sd": func() Scenario {
			s := valid
			s.Strata = []StratumSpec{{Size: 10, Mean: 1, SD: 0}}
			return s
		}(),
	}
	for name, sc := range cases {
		if err := sc.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		} else if errors.GetCode(err) != errors.CodeInvalidParameter {
			t.Errorf("%s: expected %s, got %s", name, errors.CodeInvalidParameter, errors.GetCode(err))
		}
	}
}

func TestScenarioWeightsSumToOne(t *testing.T) {
	sc := Scenario{
		OutlierProportion: 0.05,
		Strata: []StratumSpec{
			{Size: 32145, Mean: 1, SD: 2},
			{Size: 28734, Mean: 1.5, SD: 3},
			{Size: 39121, Mean: 2, SD: 4},
		},
		Replications: 100,
	}
	if sc.TotalSize() != 100000 {
		t.Fatalf("expected total size 100000, got %d", sc.TotalSize())
	}
	sum := 0.0
	for _, w := range sc.Weights() {
		sum += w
	}
	if math.Abs(sum-1) > WeightTolerance {
		t.Errorf("weights sum to %.15f, want 1", sum)
	}
}

func TestScenarioReferenceMean(t *testing.T) {
	sc := Scenario{
		OutlierProportion: 0,
		Strata: []StratumSpec{
			{Size: 60, Mean: 1, SD: 1},
			{Size: 40, Mean: 2, SD: 1},
		},
		Replications: 1,
	}
	// 0.6*1 + 0.4*2
	if got, want := sc.ReferenceMean(), 1.4; math.Abs(got-want) > 1e-12 {
		t.Errorf("derived reference mean = %g, want %g", got, want)
	}

	override := 3.5
	sc.TrueValue = &override
	if got := sc.ReferenceMean(); got != override {
		t.Errorf("override reference mean = %g, want %g", got, override)
	}
}

func TestReferenceGrid(t *testing.T) {
	grid := ReferenceGrid(0)
	if len(grid) != 6 {
		t.Fatalf("expected 6 scenarios, got %d", len(grid))
	}
	for i, sc := range grid {
		if err := sc.Validate(); err != nil {
			t.Errorf("scenario %d invalid: %v", i, err)
		}
		if sc.TotalSize() != 100000 {
			t.Errorf("scenario %d total size = %d, want 100000", i, sc.TotalSize())
		}
		if sc.Replications != DefaultReplications {
			t.Errorf("scenario %d replications = %d, want %d", i, sc.Replications, DefaultReplications)
		}
	}

	// Declared order is contamination level major, stratum count minor.
	wantProportions := []float64{0.05, 0.05, 0.10, 0.10, 0.20, 0.20}
	wantStrata := []int{3, 6, 3, 6, 3, 6}
	for i, sc := range grid {
		if sc.OutlierProportion != wantProportions[i] {
			t.Errorf("scenario %d proportion = %g, want %g", i, sc.OutlierProportion, wantProportions[i])
		}
		if len(sc.Strata) != wantStrata[i] {
			t.Errorf("scenario %d strata = %d, want %d", i, len(sc.Strata), wantStrata[i])
		}
	}
}
