package montecarlo

import (
	"context"
	"math/rand/v2"
	"sync"

	"stratsim/domain/study"
	"stratsim/internal"
	"stratsim/internal/errors"
	"stratsim/internal/estimator"
	"stratsim/internal/population"
	"stratsim/internal/sampling"
	"stratsim/ports"
)

// Config controls replication execution for a runner
type Config struct {
	BaseSeed int64

	// Workers is the replication worker count; 1 runs sequentially. Results are
	// identical either way because every replication owns an independent RNG
	// stream and a fixed slot in the outcome slice.
	Workers int

	// MaxFailureRate is the per-scenario replication failure rate above which
	// the summary is flagged unreliable instead of silently aggregating fewer
	// samples than requested.
	MaxFailureRate float64

	// DiagnosticSample is the size of the proportional sub-sample drawn through
	// the stratified sampler during the designated diagnostic replication.
	// Zero disables the draw.
	DiagnosticSample int
}

// Result is the complete outcome of one scenario's replication loop: the
// aggregate summary, the raw estimate sequences for distributional inspection,
// and the designated replication's per-stratum diagnostics.
type Result struct {
	Scenario study.Scenario `json:"scenario"`

	// Estimates holds the successful replications' outputs in replication order.
	Estimates []study.EstimateTriple `json:"estimates"`

	Summary     study.ScenarioSummary      `json:"summary"`
	Diagnostics []study.StratumDiagnostics `json:"diagnostics"`

	// SampleSummary describes the diagnostic sub-sample drawn from the mixed
	// population of the designated replication (zero value when disabled).
	SampleSummary study.ValueSummary `json:"sample_summary"`

	Failed     int  `json:"failed"`
	Unreliable bool `json:"unreliable"`
}

// Runner executes the Monte Carlo replication loop for one scenario at a time.
// Scenarios are independent; a single Runner may be shared across them.
type Runner struct {
	cfg     Config
	rng     ports.RNGPort
	suite   ports.EstimatorPort
	factory *population.Factory
	sampler *sampling.Sampler
	logger  *internal.Logger
}

var _ ports.EstimatorPort = (*estimator.Suite)(nil)

// NewRunner creates a Monte Carlo runner
func NewRunner(cfg Config, rngPort ports.RNGPort, suite ports.EstimatorPort, logger *internal.Logger) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Runner{
		cfg:     cfg,
		rng:     rngPort,
		suite:   suite,
		factory: population.NewFactory(),
		sampler: sampling.NewSampler(),
		logger:  logger,
	}
}

// replicationOutcome is one replication's slot in the outcome slice
type replicationOutcome struct {
	estimate study.EstimateTriple
	err      error
}

// Run executes all replications of one scenario and aggregates them.
// scenarioIndex is the scenario's ordinal in the study grid; together with the
// base seed and replication index it determines every random stream, so two
// runs with the same configuration are bit-identical.
func (r *Runner) Run(ctx context.Context, scenarioIndex int, sc study.Scenario) (*Result, error) {
	// Fail before any random draws on bad configuration.
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	weights := sc.Weights()

	outcomes := make([]replicationOutcome, sc.Replications)
	var diagnostics []study.StratumDiagnostics
	var sampleSummary study.ValueSummary

	runOne := func(rep int) {
		if err := ctx.Err(); err != nil {
			outcomes[rep] = replicationOutcome{err: err}
			return
		}
		stream := r.rng.ReplicationStream(scenarioIndex, rep, r.cfg.BaseSeed)

		realizations := make([]population.Realization, len(sc.Strata))
		for h, spec := range sc.Strata {
			realization, err := r.factory.Realize(spec, sc.OutlierProportion, stream)
			if err != nil {
				outcomes[rep] = replicationOutcome{err: errors.Wrapf(err, "stratum %d", h)}
				return
			}
			realizations[h] = realization
		}

		inputs := estimator.Inputs{
			Weights: weights,
			Clean:   make([][]float64, len(realizations)),
			Mixed:   make([][]float64, len(realizations)),
		}
		for h, realization := range realizations {
			inputs.Clean[h] = realization.Clean
			inputs.Mixed[h] = realization.Mixed
		}

		triple, err := r.suite.EstimateAll(inputs)
		if err != nil {
			outcomes[rep] = replicationOutcome{err: err}
			return
		}
		outcomes[rep] = replicationOutcome{estimate: triple}

		// Replication 0 is the designated diagnostic replication.
		if rep == 0 {
			diags, sample, err := r.diagnose(sc, realizations, stream)
			if err != nil {
				r.logger.Warn("scenario %d: diagnostics failed: %v", scenarioIndex, err)
				return
			}
			diagnostics = diags
			sampleSummary = sample
		}
	}

	if r.cfg.Workers == 1 {
		for rep := 0; rep < sc.Replications; rep++ {
			runOne(rep)
		}
	} else {
		workChan := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < r.cfg.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for rep := range workChan {
					runOne(rep)
				}
			}()
		}
		for rep := 0; rep < sc.Replications; rep++ {
			workChan <- rep
		}
		close(workChan)
		wg.Wait()
	}

	estimates := make([]study.EstimateTriple, 0, sc.Replications)
	failed := 0
	for rep, outcome := range outcomes {
		if outcome.err != nil {
			failed++
			r.logger.Warn("scenario %d replication %d failed: %v", scenarioIndex, rep, outcome.err)
			continue
		}
		estimates = append(estimates, outcome.estimate)
	}
	if len(estimates) == 0 {
		return nil, errors.InsufficientData("every replication failed")
	}

	summary, err := aggregate(estimates, sc.ReferenceMean())
	if err != nil {
		return nil, errors.Wrap(err, "scenario aggregation")
	}

	failureRate := float64(failed) / float64(sc.Replications)
	return &Result{
		Scenario:      sc,
		Estimates:     estimates,
		Summary:       summary,
		Diagnostics:   diagnostics,
		SampleSummary: sampleSummary,
		Failed:        failed,
		Unreliable:    failureRate > r.cfg.MaxFailureRate,
	}, nil
}

// diagnose summarizes each stratum's clean and mixed realization and exercises
// the stratified sampler on a proportional mixed sub-sample
func (r *Runner) diagnose(sc study.Scenario, realizations []population.Realization, stream *rand.Rand) ([]study.StratumDiagnostics, study.ValueSummary, error) {
	diags := make([]study.StratumDiagnostics, len(realizations))
	for h, realization := range realizations {
		clean, err := summarizeValues(realization.Clean)
		if err != nil {
			return nil, study.ValueSummary{}, errors.Wrapf(err, "stratum %d clean summary", h)
		}
		mixed, err := summarizeValues(realization.Mixed)
		if err != nil {
			return nil, study.ValueSummary{}, errors.Wrapf(err, "stratum %d mixed summary", h)
		}
		diags[h] = study.StratumDiagnostics{Stratum: h, Clean: clean, Mixed: mixed}
	}

	var sampleSummary study.ValueSummary
	if r.cfg.DiagnosticSample > 0 {
		sample, err := r.sampler.Draw(sc, realizations, r.cfg.DiagnosticSample, sampling.SourceMixed, stream)
		if err != nil {
			return nil, study.ValueSummary{}, errors.Wrap(err, "diagnostic sub-sample")
		}
		sampleSummary, err = summarizeValues(sample)
		if err != nil {
			return nil, study.ValueSummary{}, errors.Wrap(err, "diagnostic sub-sample summary")
		}
	}
	return diags, sampleSummary, nil
}
