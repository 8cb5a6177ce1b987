package reconcile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultError   = "error"
	resultDryRun  = "dry_run"
)

var (
	changesTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "pdns_rrset_changes_total",
			Help: "Number of RRset changes, differentiated by verb and result.",
		},
		[]string{"verb", "result"},
	)

	changeDuration = promauto.NewHistogramVec( //nolint:gochecknoglobals
		prometheus.HistogramOpts{
			Name:    "pdns_rrset_change_duration_seconds",
			Help:    "Duration of RRset changes including the zone read of add.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"verb"},
	)
)
