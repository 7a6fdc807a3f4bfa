package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// queryDuration is labelled with the repository method name.
var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "sql_query_duration_seconds",
	Help:    "Duration of sql queries in seconds",
	Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
}, []string{"query"})
