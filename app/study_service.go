package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"stratsim/domain/core"
	"stratsim/domain/study"
	"stratsim/internal"
	"stratsim/internal/errors"
	"stratsim/internal/montecarlo"
)

// StudyService runs a full scenario grid and assembles the result surface
// consumed by reporting collaborators
type StudyService struct {
	runner      *montecarlo.Runner
	logger      *internal.Logger
	parallelism int64
}

// StudyRequest defines the inputs for one study run
type StudyRequest struct {
	Scenarios []study.Scenario
	StudyID   core.StudyID // optional, generated if empty
}

// ScenarioResult is the outcome of one scenario cell. Err is set when the
// scenario could not produce a summary at all; other scenarios are unaffected.
// Err does not marshal, so the code and message carry the failure across
// serialization boundaries for the reporting collaborator.
type ScenarioResult struct {
	Index        int                `json:"index"`
	Result       *montecarlo.Result `json:"result,omitempty"`
	Err          error              `json:"-"`
	ErrorCode    string             `json:"error_code,omitempty"`
	ErrorMessage string             `json:"error,omitempty"`
}

func newScenarioResult(index int, result *montecarlo.Result, err error) ScenarioResult {
	sr := ScenarioResult{Index: index, Result: result, Err: err}
	if err != nil {
		sr.ErrorCode = errors.GetCode(err)
		sr.ErrorMessage = err.Error()
	}
	return sr
}

// StudyResult contains the complete output of a study run. Scenarios appear in
// the declared request order regardless of execution scheduling.
type StudyResult struct {
	StudyID   core.StudyID     `json:"study_id"`
	Scenarios []ScenarioResult `json:"scenarios"`
	StartedAt core.Timestamp   `json:"started_at"`
	RuntimeMs int64            `json:"runtime_ms"`
}

// NewStudyService creates a study service. parallelism bounds the number of
// scenarios executed concurrently.
func NewStudyService(runner *montecarlo.Runner, logger *internal.Logger, parallelism int) *StudyService {
	if parallelism < 1 {
		parallelism = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StudyService{
		runner:      runner,
		logger:      logger,
		parallelism: int64(parallelism),
	}
}

// RunStudy executes every scenario of the request. Scenarios may run
// concurrently under the configured bound; each writes only its own slot, so
// the output order always follows the request.
func (s *StudyService) RunStudy(ctx context.Context, req StudyRequest) (*StudyResult, error) {
	if len(req.Scenarios) == 0 {
		return nil, errors.InvalidInput("study request declares no scenarios")
	}

	studyID := req.StudyID
	if studyID == "" {
		studyID = core.StudyID(core.NewID())
	}
	startedAt := core.Now()
	start := time.Now()

	results := make([]ScenarioResult, len(req.Scenarios))
	sem := semaphore.NewWeighted(s.parallelism)
	var wg sync.WaitGroup
	for i, sc := range req.Scenarios {
		wg.Add(1)
		go func(index int, sc study.Scenario) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[index] = newScenarioResult(index, nil, err)
				return
			}
			defer sem.Release(1)

			result, err := s.runner.Run(ctx, index, sc)
			results[index] = newScenarioResult(index, result, err)
		}(i, sc)
	}
	wg.Wait()

	for _, r := range results {
		switch {
		case r.Err != nil:
			s.logger.Warn("scenario %d failed: %v", r.Index, r.Err)
		case r.Result.Unreliable:
			s.logger.Warn("scenario %d unreliable: %d of %d replications failed",
				r.Index, r.Result.Failed, r.Result.Scenario.Replications)
		default:
			s.logger.Info("scenario %d complete: %d replications, %d failed",
				r.Index, r.Result.Scenario.Replications, r.Result.Failed)
		}
	}

	return &StudyResult{
		StudyID:   studyID,
		Scenarios: results,
		StartedAt: startedAt,
		RuntimeMs: time.Since(start).Milliseconds(),
	}, nil
}
