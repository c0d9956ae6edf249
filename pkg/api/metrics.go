package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statusMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gameday",
		Name:      "status_mutations_total",
		Help:      "Attendance status mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	matrixLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gameday",
		Name:      "matrix_loads_total",
		Help:      "Attendance matrix loads by outcome.",
	}, []string{"outcome"})
)

func recordMutation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	statusMutations.WithLabelValues(operation, outcome).Inc()
}
