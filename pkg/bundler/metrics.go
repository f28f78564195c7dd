/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package bundler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sysgrab_run_duration_seconds",
			Help:    "Time taken for a complete collection run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysgrab_run_total",
			Help: "Total number of collection run attempts",
		},
		[]string{"status"}, // success or error
	)

	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sysgrab_step_duration_seconds",
			Help:    "Time taken by individual diagnostic steps",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"step"},
	)

	resolvedLogFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sysgrab_resolved_log_files",
			Help: "Number of log files resolved in the last collection run",
		},
	)
)
