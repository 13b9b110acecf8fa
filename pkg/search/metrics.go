package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	indexWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_index_writes_total",
			Help: "The total number of documents written to the search index",
		},
		[]string{"type"},
	)
	indexRemovals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_index_removals_total",
			Help: "The total number of documents removed from the search index",
		},
		[]string{"type"},
	)
	indexWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_index_write_failures_total",
			Help: "The total number of failed search index writes after a successful commit",
		},
		[]string{"type"},
	)
)
