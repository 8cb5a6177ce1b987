package logger

import "github.com/prometheus/client_golang/prometheus"

// Counter exposes the log statement counter to tests.
func Counter() *prometheus.CounterVec {
	return counter
}
