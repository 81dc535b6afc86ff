// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides Prometheus instrumentation for go-webcrypto. It
// counts validation outcomes per algorithm family and operation, rejections
// per error kind, provider hand-offs, and HTTP traffic of the dry-run
// validation service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all webcrypto metrics
	Namespace = "webcrypto"

	// Label names
	LabelAlgorithm  = "algorithm"
	LabelOperation  = "operation"
	LabelStatus     = "status"
	LabelKind       = "kind"
	LabelProtocol   = "protocol"
	LabelMethod     = "method"
	LabelStatusCode = "status_code"

	// Status values
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusError    = "error"
)

var (
	// ValidationsTotal counts validation pipeline runs by family, verb and outcome.
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "validations_total",
			Help:      "Total number of validation pipeline runs by algorithm, operation, and status",
		},
		[]string{LabelAlgorithm, LabelOperation, LabelStatus},
	)

	// ValidationDuration tracks time spent in the validation pipeline.
	// Checks are pure, so buckets start in the microsecond range.
	ValidationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "validation_duration_seconds",
			Help:      "Duration of validation pipelines in seconds",
			Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .005},
		},
		[]string{LabelAlgorithm, LabelOperation},
	)

	// RejectionsTotal counts rejected requests by the kind of the first failing check.
	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rejections_total",
			Help:      "Total number of rejected requests by algorithm, operation, and error kind",
		},
		[]string{LabelAlgorithm, LabelOperation, LabelKind},
	)

	// ProviderCallsTotal counts hand-offs to the cryptographic provider.
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "provider_calls_total",
			Help:      "Total number of provider calls by algorithm, operation, and status",
		},
		[]string{LabelAlgorithm, LabelOperation, LabelStatus},
	)

	// ActiveConnections tracks in-flight requests by protocol.
	ActiveConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_connections",
			Help:      "Number of active connections by protocol",
		},
		[]string{LabelProtocol},
	)

	// HTTPRequestsTotal tracks the total number of HTTP requests by method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method and status code",
		},
		[]string{LabelMethod, LabelStatusCode},
	)

	// HTTPRequestDuration tracks the duration of HTTP requests in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod},
	)

	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// RecordValidation records a completed validation pipeline.
//
// Example:
//
//	start := time.Now()
//	err := runChecks()
//	status := metrics.StatusSuccess
//	if err != nil {
//	    status = metrics.StatusRejected
//	}
//	metrics.RecordValidation("RSA-PSS", "sign", status, time.Since(start).Seconds())
func RecordValidation(algorithm, operation, status string, duration float64) {
	if !enabled.Load() {
		return
	}
	ValidationsTotal.WithLabelValues(algorithm, operation, status).Inc()
	ValidationDuration.WithLabelValues(algorithm, operation).Observe(duration)
}

// RecordRejection records the error kind that stopped a pipeline.
func RecordRejection(algorithm, operation, kind string) {
	if !enabled.Load() {
		return
	}
	RejectionsTotal.WithLabelValues(algorithm, operation, kind).Inc()
}

// RecordProviderCall records a provider hand-off and whether it failed.
func RecordProviderCall(algorithm, operation, status string) {
	if !enabled.Load() {
		return
	}
	ProviderCallsTotal.WithLabelValues(algorithm, operation, status).Inc()
}

// RecordHTTPRequest records an HTTP request with its duration and status.
func RecordHTTPRequest(method, statusCode string, duration float64) {
	if !enabled.Load() {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(duration)
}

// IncrementActiveConnections increments the active connection count for a protocol.
func IncrementActiveConnections(protocol string) {
	if !enabled.Load() {
		return
	}
	ActiveConnections.WithLabelValues(protocol).Inc()
}

// DecrementActiveConnections decrements the active connection count for a protocol.
func DecrementActiveConnections(protocol string) {
	if !enabled.Load() {
		return
	}
	ActiveConnections.WithLabelValues(protocol).Dec()
}

// Enable enables metrics collection.
func Enable() {
	enabled.Store(true)
}

// Disable disables metrics collection.
func Disable() {
	enabled.Store(false)
}

// IsEnabled returns whether metrics collection is currently enabled.
func IsEnabled() bool {
	return enabled.Load()
}
