package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"crm-relay.io/relay/internal/pkg/logger"
	"crm-relay.io/relay/internal/pkg/worker"
)

// CollaboratorStatus represents remote collaborator health.
type CollaboratorStatus string

const (
	StatusUnknown   CollaboratorStatus = "UNKNOWN"
	StatusHealthy   CollaboratorStatus = "HEALTHY"
	StatusUnhealthy CollaboratorStatus = "UNHEALTHY"
)

// CollaboratorHealth contains one probe result.
type CollaboratorHealth struct {
	Name        string             `json:"name"`
	Status      CollaboratorStatus `json:"status"`
	LastChecked time.Time          `json:"last_checked"`
	Error       string             `json:"error,omitempty"`
}

// Pinger is the probe contract; both the CRM backend and the mail server
// client satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker performs periodic health probes of registered
// collaborators. Probe loops run detached on the worker pool and respect
// graceful shutdown.
type HealthChecker struct {
	interval time.Duration
	timeout  time.Duration
	pools    *worker.Pools

	mu       sync.RWMutex
	targets  map[string]Pinger
	results  map[string]*CollaboratorHealth
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHealthChecker creates a HealthChecker.
func NewHealthChecker(interval, timeout time.Duration, pools *worker.Pools) *HealthChecker {
	return &HealthChecker{
		interval: interval,
		timeout:  timeout,
		pools:    pools,
		targets:  make(map[string]Pinger),
		results:  make(map[string]*CollaboratorHealth),
		stopCh:   make(chan struct{}),
	}
}

// Register adds a collaborator to the probe set.
func (h *HealthChecker) Register(name string, p Pinger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.targets[name] = p
	h.results[name] = &CollaboratorHealth{Name: name, Status: StatusUnknown}
}

// Check performs a single probe of one collaborator and stores the result.
func (h *HealthChecker) Check(ctx context.Context, name string) *CollaboratorHealth {
	h.mu.RLock()
	target := h.targets[name]
	h.mu.RUnlock()

	health := &CollaboratorHealth{Name: name, LastChecked: time.Now()}
	if target == nil {
		health.Status = StatusUnknown
		health.Error = "not registered"
		return health
	}

	probeCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := target.Ping(probeCtx); err != nil {
		health.Status = StatusUnhealthy
		health.Error = fmt.Sprintf("ping failed: %v", err)
		logger.Warn("Collaborator health probe failed",
			zap.String("collaborator", name),
			zap.Error(err),
		)
	} else {
		health.Status = StatusHealthy
	}

	h.mu.Lock()
	h.results[name] = health
	h.mu.Unlock()
	return health
}

// Snapshot returns a copy of the latest probe results.
func (h *HealthChecker) Snapshot() map[string]CollaboratorHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]CollaboratorHealth, len(h.results))
	for name, res := range h.results {
		out[name] = *res
	}
	return out
}

// Healthy reports whether every registered collaborator's last probe
// succeeded.
func (h *HealthChecker) Healthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, res := range h.results {
		if res.Status != StatusHealthy {
			return false
		}
	}
	return true
}

// Start begins periodic probing. The ticker loop runs detached on the
// backend pool; individual probes fan out on the general pool.
func (h *HealthChecker) Start() error {
	return h.pools.SubmitDetached("backend", func(ctx context.Context) {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		h.checkAll(ctx)

		for {
			select {
			case <-ticker.C:
				h.checkAll(ctx)
			case <-h.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	})
}

// Stop terminates the probe loop. Safe to call more than once.
func (h *HealthChecker) Stop() {
	h.stopOnce.Do(func() { close(h.stopCh) })
}

// checkAll submits one probe per collaborator and returns without waiting;
// Check stores each result as it lands and the per-probe timeout bounds
// stragglers before the next tick.
func (h *HealthChecker) checkAll(ctx context.Context) {
	h.mu.RLock()
	names := make([]string, 0, len(h.targets))
	for name := range h.targets {
		names = append(names, name)
	}
	h.mu.RUnlock()

	for _, name := range names {
		name := name
		err := h.pools.General.Submit(ctx, func(ctx context.Context) {
			h.Check(ctx, name)
		})
		if err != nil {
			logger.Warn("Health probe submission failed",
				zap.String("collaborator", name),
				zap.Error(err),
			)
		}
	}
}
