package api

import (
	"github.com/prometheus/client_golang/prometheus"          // Metric types
	"github.com/prometheus/client_golang/prometheus/promauto" // Auto registration
)

var (
	transactionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sharewallet_transactions_created_total",
		Help: "Transactions stored with their splits.",
	})

	transactionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sharewallet_transactions_rejected_total",
		Help: "Create requests rejected, by error code.",
	}, []string{"code"})

	statsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sharewallet_stats_cache_lookups_total",
		Help: "Stats cache lookups by result.",
	}, []string{"result"})
)
