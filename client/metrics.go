package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	listSourceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "study_client",
			Name:      "list_source_total",
			Help:      "ListStudies answers by source (cache, mirror, remote).",
		},
		[]string{"source"},
	)

	invalidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "study_client",
			Name:      "cache_invalidations_total",
			Help:      "Cache and mirror invalidations after successful writes.",
		},
	)
)
