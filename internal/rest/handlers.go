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

package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jeremyhahn/go-webcrypto/pkg/health"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

// HandlerContext holds the dependencies shared by the HTTP handlers.
type HandlerContext struct {
	Registry        *webcrypto.Registry
	HealthChecker   *health.Checker
	Version         string
	MaxRequestBytes int64
}

// AlgorithmsResponse is the body of GET /api/v1/algorithms.
type AlgorithmsResponse struct {
	Version    string                    `json:"version"`
	Algorithms []webcrypto.AlgorithmInfo `json:"algorithms"`
}

// HealthCheckResponse represents the response for health check endpoints.
type HealthCheckResponse struct {
	Status  health.Status        `json:"status"`
	Message string               `json:"message,omitempty"`
	Checks  []health.CheckResult `json:"checks,omitempty"`
}

// ValidateHandler handles POST /api/v1/validate. The body is a single
// webcrypto.Request document; the response is the webcrypto.Result.
func (h *HandlerContext) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.MaxRequestBytes)
	defer body.Close()

	var req webcrypto.Request
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(w, fmt.Errorf("%w: limit is %d bytes", ErrRequestTooLarge, tooLarge.Limit))
			return
		}
		handleError(w, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	result, err := h.Registry.Dispatch(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// AlgorithmsHandler handles GET /api/v1/algorithms.
func (h *HandlerContext) AlgorithmsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, AlgorithmsResponse{
		Version:    h.Version,
		Algorithms: h.Registry.Algorithms(),
	}, http.StatusOK)
}

// LivenessHandler handles GET /health and GET /health/live.
func (h *HandlerContext) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	result := h.HealthChecker.Live(r.Context())
	writeJSON(w, HealthCheckResponse{Status: result.Status, Message: result.Message}, http.StatusOK)
}

// ReadinessHandler handles GET /health/ready. Degraded still serves
// traffic; unhealthy answers 503.
func (h *HandlerContext) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	results := h.HealthChecker.Ready(r.Context())
	resp := HealthCheckResponse{
		Status: health.AggregateStatus(results),
		Checks: results,
	}

	statusCode := http.StatusOK
	switch resp.Status {
	case health.StatusHealthy:
		resp.Message = "All checks passed"
	case health.StatusDegraded:
		resp.Message = "Service is degraded"
	case health.StatusUnhealthy:
		resp.Message = "One or more checks failed"
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, resp, statusCode)
}

// StartupHandler handles GET /health/startup.
func (h *HandlerContext) StartupHandler(w http.ResponseWriter, r *http.Request) {
	result := h.HealthChecker.Startup(r.Context())
	statusCode := http.StatusOK
	if result.Status == health.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, HealthCheckResponse{Status: result.Status, Message: result.Message}, statusCode)
}
