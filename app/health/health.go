// Package health serves liveness and readiness probes for a swapverse node.
//
// The checker inspects the engine directly rather than a remote RPC:
// - /health reports liveness only
// - /health/ready checks the store, the invariants and the lifecycle sweeper
// - /health/detailed adds registry metrics
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"

	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Source is the engine view the checker probes
type Source interface {
	GlobalState(ctx context.Context) (swaptypes.GlobalState, error)
	CheckInvariants(ctx context.Context) (string, bool)
	LastEndBlock() time.Time
	Now() time.Time
}

// Checker performs health checks on the engine
type Checker struct {
	logger  log.Logger
	source  Source
	version string

	maxResponseTime time.Duration
	maxSweepAge     time.Duration

	mu            sync.RWMutex
	lastCheck     time.Time
	cachedHealth  *HealthCheck
	cacheDuration time.Duration
}

// Config holds configuration for the health checker
type Config struct {
	// MaxResponseTime is the store read latency above which the store is degraded
	MaxResponseTime time.Duration

	// MaxSweepAge is how stale the last lifecycle sweep may be before the
	// sweeper is degraded. Zero disables the check.
	MaxSweepAge time.Duration

	// CacheDuration is how long to cache readiness results
	CacheDuration time.Duration

	// Version is reported in every readiness response
	Version string
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		MaxResponseTime: time.Second,
		MaxSweepAge:     5 * time.Minute,
		CacheDuration:   5 * time.Second,
	}
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, cfg Config, source Source) (*Checker, error) {
	if source == nil {
		return nil, fmt.Errorf("health source is required")
	}
	if cfg.MaxResponseTime <= 0 {
		return nil, fmt.Errorf("max response time must be positive")
	}

	return &Checker{
		logger:          logger.With("module", "health"),
		source:          source,
		version:         cfg.Version,
		maxResponseTime: cfg.MaxResponseTime,
		maxSweepAge:     cfg.MaxSweepAge,
		cacheDuration:   cfg.CacheDuration,
	}, nil
}

// Check runs every probe. Non-detailed results are cached for CacheDuration.
func (c *Checker) Check(ctx context.Context, detailed bool) *HealthCheck {
	if !detailed && c.shouldUseCached() {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.cachedHealth
	}

	health := &HealthCheck{
		Timestamp:  time.Now(),
		Version:    c.version,
		Components: make(map[string]ComponentHealth),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	checks := map[string]func(context.Context) ComponentHealth{
		"store":      c.checkStore,
		"invariants": c.checkInvariants,
		"sweeper":    c.checkSweeper,
	}
	if detailed {
		checks["registry"] = c.checkRegistry
	}

	for name, fn := range checks {
		wg.Add(1)
		go func(name string, fn func(context.Context) ComponentHealth) {
			defer wg.Done()
			result := fn(ctx)
			mu.Lock()
			health.Components[name] = result
			mu.Unlock()
		}(name, fn)
	}

	wg.Wait()

	health.Status = c.calculateOverallStatus(health.Components)

	if !detailed {
		c.mu.Lock()
		c.lastCheck = time.Now()
		c.cachedHealth = health
		c.mu.Unlock()
	}

	return health
}

// checkStore reads the registry and times the read
func (c *Checker) checkStore(ctx context.Context) ComponentHealth {
	start := time.Now()
	_, err := c.source.GlobalState(ctx)
	duration := time.Since(start)

	metrics := map[string]interface{}{
		"query_time_ms": duration.Milliseconds(),
	}

	switch {
	case errors.Is(err, swaptypes.ErrNotInitialized):
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   "Registry is not initialized",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	case err != nil:
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("Store read failed: %v", err),
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	case duration > c.maxResponseTime:
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   "Store response time is degraded",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	}

	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "Store is responsive",
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// checkInvariants fails the node when any accounting invariant is broken
func (c *Checker) checkInvariants(ctx context.Context) ComponentHealth {
	msg, broken := c.source.CheckInvariants(ctx)
	if broken {
		c.logger.Error("invariant broken", "details", msg)
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   msg,
			Timestamp: time.Now(),
		}
	}
	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "All invariants hold",
		Timestamp: time.Now(),
	}
}

// checkSweeper verifies the lifecycle sweep keeps up with block time
func (c *Checker) checkSweeper(_ context.Context) ComponentHealth {
	last := c.source.LastEndBlock()
	if last.IsZero() {
		return ComponentHealth{
			Status:    StatusUnknown,
			Message:   "No sweep has run yet",
			Timestamp: time.Now(),
		}
	}

	age := c.source.Now().Sub(last)
	metrics := map[string]interface{}{
		"last_sweep":        last.Format(time.RFC3339),
		"sweep_age_seconds": age.Seconds(),
	}

	if c.maxSweepAge > 0 && age > c.maxSweepAge {
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   fmt.Sprintf("Sweeper is stale (last sweep %.1f minutes ago)", age.Minutes()),
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	}

	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "Sweeper is running",
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// checkRegistry reports registry metrics
func (c *Checker) checkRegistry(ctx context.Context) ComponentHealth {
	gs, err := c.source.GlobalState(ctx)
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnknown,
			Message:   err.Error(),
			Timestamp: time.Now(),
		}
	}

	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "Registry initialized",
		Timestamp: time.Now(),
		Metrics: map[string]interface{}{
			"owner":        gs.Owner,
			"pools":        gs.NoOfSwapPools,
			"token_denoms": gs.TokenDenoms,
		},
	}
}

// calculateOverallStatus determines the overall health status based on component statuses
func (c *Checker) calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasUnhealthy := false
	hasDegraded := false

	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return StatusUnhealthy
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// shouldUseCached determines if cached health check results should be used
func (c *Checker) shouldUseCached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedHealth == nil {
		return false
	}

	return time.Since(c.lastCheck) < c.cacheDuration
}

// RegisterRoutes registers health check endpoints on router
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", c.handleHealthReady).Methods(http.MethodGet)
	router.HandleFunc("/health/detailed", c.handleHealthDetailed).Methods(http.MethodGet)
}

// handleHealth handles the basic liveness check endpoint
func (c *Checker) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleHealthReady reports 503 only when a component is unhealthy
func (c *Checker) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	health := c.Check(r.Context(), false)

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

// handleHealthDetailed handles the detailed health check endpoint
func (c *Checker) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	health := c.Check(r.Context(), true)

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
