// Package health provides liveness and readiness probe endpoints.
//
// Checks run on demand when a probe endpoint is hit, each bounded by its own
// timeout. Readiness additionally gates on an explicit ready flag so the
// server can drain before shutdown.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc is a health check function. It returns nil when the checked
// component is healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

// Health manages liveness and readiness checks for a service.
type Health struct {
	ready atomic.Bool

	mu              sync.RWMutex
	livenessChecks  []check
	readinessChecks []check
}

// New creates a Health instance. The service starts not ready; call
// SetReady(true) once initialization has finished.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a liveness check with a per-probe timeout.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.livenessChecks = append(h.livenessChecks, check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a readiness check with a per-probe timeout.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readinessChecks = append(h.readinessChecks, check{name: name, timeout: timeout, fn: fn})
}

// SetReady flips the explicit readiness flag. A false flag makes the ready
// endpoint fail regardless of check results, which is how shutdown drains
// load balancer traffic.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// LiveEndpoint is the HTTP handler for the liveness probe.
func (h *Health) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := append([]check(nil), h.livenessChecks...)
	h.mu.RUnlock()

	writeProbe(w, r, runChecks(r.Context(), checks))
}

// ReadyEndpoint is the HTTP handler for the readiness probe.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		writeProbe(w, r, map[string]string{"service": "not ready"})
		return
	}

	h.mu.RLock()
	checks := append([]check(nil), h.readinessChecks...)
	h.mu.RUnlock()

	writeProbe(w, r, runChecks(r.Context(), checks))
}

// runChecks executes each check and returns a map of failures by name.
func runChecks(ctx context.Context, checks []check) map[string]string {
	failures := map[string]string{}
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.fn(checkCtx)
		cancel()
		if err != nil {
			failures[c.name] = err.Error()
		}
	}
	return failures
}

func writeProbe(w http.ResponseWriter, _ *http.Request, failures map[string]string) {
	status := http.StatusOK
	body := map[string]any{"status": "ok"}
	if len(failures) > 0 {
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
		body["checks"] = failures
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
