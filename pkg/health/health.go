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

// Package health implements liveness, readiness and startup probes for the
// validation service.
package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a component.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name    string        `json:"name"`
	Status  Status        `json:"status"`
	Message string        `json:"message,omitempty"`
	Latency time.Duration `json:"latency"`
	Error   string        `json:"error,omitempty"`
}

// CheckFunc performs a single readiness check. It should return quickly.
type CheckFunc func(ctx context.Context) CheckResult

// FromError adapts fn into a CheckFunc: a nil error is healthy, anything
// else unhealthy.
func FromError(fn func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) CheckResult {
		if err := fn(ctx); err != nil {
			return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
		}
		return CheckResult{Status: StatusHealthy}
	}
}

// Checker manages health checks following Kubernetes probe semantics.
type Checker struct {
	mu        sync.RWMutex
	started   bool
	startTime time.Time
	checks    map[string]CheckFunc
}

// NewChecker creates a new health checker.
func NewChecker() *Checker {
	return &Checker{
		checks:    make(map[string]CheckFunc),
		startTime: time.Now(),
	}
}

// RegisterCheck adds a readiness check, replacing any check with the same
// name. A nil check is ignored.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	if check == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// UnregisterCheck removes a health check.
func (c *Checker) UnregisterCheck(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checks, name)
}

// MarkStarted marks initialization as complete.
func (c *Checker) MarkStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
}

// MarkNotStarted clears the started flag, e.g. during shutdown.
func (c *Checker) MarkNotStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = false
}

// Live reports that the process is running. It never fails.
func (c *Checker) Live(ctx context.Context) CheckResult {
	return CheckResult{
		Name:    "liveness",
		Status:  StatusHealthy,
		Message: "Service is alive",
	}
}

// Ready runs every registered check, ordered by name. With no checks
// registered it reports a single healthy "default" result.
func (c *Checker) Ready(ctx context.Context) []CheckResult {
	c.mu.RLock()
	names := make([]string, 0, len(c.checks))
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		names = append(names, name)
		checks[name] = check
	}
	c.mu.RUnlock()

	if len(names) == 0 {
		return []CheckResult{{
			Name:    "default",
			Status:  StatusHealthy,
			Message: "No readiness checks configured",
		}}
	}

	sort.Strings(names)
	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		start := time.Now()
		result := checks[name](ctx)
		result.Latency = time.Since(start)
		if result.Name == "" {
			result.Name = name
		}
		results = append(results, result)
	}
	return results
}

// Startup fails until MarkStarted is called.
func (c *Checker) Startup(ctx context.Context) CheckResult {
	c.mu.RLock()
	started := c.started
	startTime := c.startTime
	c.mu.RUnlock()

	if !started {
		return CheckResult{
			Name:    "startup",
			Status:  StatusUnhealthy,
			Message: "Service initialization not complete",
		}
	}
	return CheckResult{
		Name:    "startup",
		Status:  StatusHealthy,
		Message: fmt.Sprintf("Service fully initialized (uptime: %s)", time.Since(startTime).Round(time.Second)),
	}
}

// IsHealthy returns true if all readiness checks pass.
func (c *Checker) IsHealthy(ctx context.Context) bool {
	return AggregateStatus(c.Ready(ctx)) == StatusHealthy
}

// Uptime returns how long the checker has existed.
func (c *Checker) Uptime() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Since(c.startTime)
}

// AggregateStatus returns unhealthy if any result is unhealthy, degraded
// if any is degraded, and healthy otherwise.
func AggregateStatus(results []CheckResult) Status {
	status := StatusHealthy
	for _, result := range results {
		switch result.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
