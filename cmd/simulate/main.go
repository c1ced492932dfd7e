package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stratsim/adapters/rng"
	"stratsim/app"
	"stratsim/domain/study"
	"stratsim/internal"
	"stratsim/internal/config"
	"stratsim/internal/estimator"
	"stratsim/internal/montecarlo"
)

func main() {
	var (
		replications        int
		scenarioParallelism int
	)

	rootCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Monte Carlo comparison of stratified mean estimators under outlier contamination",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudy(cmd, replications, scenarioParallelism)
		},
	}
	rootCmd.Flags().IntVar(&replications, "replications", study.DefaultReplications, "replications per scenario")
	rootCmd.Flags().IntVar(&scenarioParallelism, "scenario-parallelism", 2, "scenarios executed concurrently")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runStudy(cmd *cobra.Command, replications, scenarioParallelism int) error {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewDefaultLogger()

	suite, err := estimator.NewSuite(cfg.TrimWeight)
	if err != nil {
		return err
	}
	runner := montecarlo.NewRunner(montecarlo.Config{
		BaseSeed:         cfg.Seed,
		Workers:          cfg.Workers,
		MaxFailureRate:   cfg.MaxFailureRate,
		DiagnosticSample: cfg.DiagnosticSample,
	}, rng.New(), suite, logger)
	service := app.NewStudyService(runner, logger, scenarioParallelism)

	logger.Info("starting study: seed=%d trim_weight=%g workers=%d", cfg.Seed, cfg.TrimWeight, cfg.Workers)
	result, err := service.RunStudy(cmd.Context(), app.StudyRequest{
		Scenarios: study.ReferenceGrid(replications),
	})
	if err != nil {
		return err
	}

	fmt.Printf("study %s finished in %dms\n", result.StudyID, result.RuntimeMs)
	for _, sr := range result.Scenarios {
		if sr.Err != nil {
			fmt.Printf("scenario %d: FAILED: %v\n", sr.Index, sr.Err)
			continue
		}
		sc := sr.Result.Scenario
		fmt.Printf("scenario %d: %d strata, %.0f%% outliers, R=%d (failed=%d unreliable=%v)\n",
			sr.Index, len(sc.Strata), sc.OutlierProportion*100, sc.Replications, sr.Result.Failed, sr.Result.Unreliable)
		printEstimator("neyman", sr.Result.Summary.Neyman)
		printEstimator("weighted-hybrid", sr.Result.Summary.WeightedHybrid)
		printEstimator("trimmed-hybrid", sr.Result.Summary.TrimmedHybrid)
	}
	return nil
}

func printEstimator(name string, s study.EstimatorSummary) {
	fmt.Printf("  %-16s bias=%+.6f variance=%.6f mse=%.6f\n", name, s.Bias, s.Variance, s.MSE)
}
