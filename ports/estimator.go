package ports

import (
	"stratsim/domain/study"
	"stratsim/internal/estimator"
)

// EstimatorPort runs the competing population-mean estimators over one
// replication's stratum inputs. Satisfied by *estimator.Suite.
type EstimatorPort interface {
	EstimateAll(in estimator.Inputs) (study.EstimateTriple, error)
}
