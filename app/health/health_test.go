package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

type fakeSource struct {
	mu        sync.Mutex
	gs        swaptypes.GlobalState
	gsErr     error
	broken    string
	lastSweep time.Time
	now       time.Time
	reads     int
}

func (f *fakeSource) GlobalState(context.Context) (swaptypes.GlobalState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.gs, f.gsErr
}

func (f *fakeSource) CheckInvariants(context.Context) (string, bool) {
	return f.broken, f.broken != ""
}

func (f *fakeSource) LastEndBlock() time.Time { return f.lastSweep }
func (f *fakeSource) Now() time.Time          { return f.now }

func healthySource() *fakeSource {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return &fakeSource{
		gs: swaptypes.GlobalState{
			Owner:         "owner",
			TokenDenoms:   swaptypes.DefaultTokenDenoms,
			NoOfSwapPools: 2,
		},
		lastSweep: now.Add(-time.Second),
		now:       now,
	}
}

func newTestChecker(t *testing.T, src Source) *Checker {
	t.Helper()
	checker, err := NewChecker(log.NewNopLogger(), DefaultConfig(), src)
	require.NoError(t, err)
	return checker
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, time.Second, cfg.MaxResponseTime)
	require.Equal(t, 5*time.Minute, cfg.MaxSweepAge)
	require.Equal(t, 5*time.Second, cfg.CacheDuration)
}

func TestNewChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   Config
		source   Source
		errorMsg string
	}{
		{
			name:   "valid config",
			config: DefaultConfig(),
			source: healthySource(),
		},
		{
			name:     "missing source",
			config:   DefaultConfig(),
			errorMsg: "health source is required",
		},
		{
			name:     "zero response time",
			config:   Config{CacheDuration: time.Second},
			source:   healthySource(),
			errorMsg: "max response time must be positive",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checker, err := NewChecker(log.NewNopLogger(), tt.config, tt.source)
			if tt.errorMsg != "" {
				require.ErrorContains(t, err, tt.errorMsg)
				require.Nil(t, checker)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.config.MaxSweepAge, checker.maxSweepAge)
		})
	}
}

func TestCheckHealthy(t *testing.T) {
	t.Parallel()

	health := newTestChecker(t, healthySource()).Check(context.Background(), false)

	require.Equal(t, StatusHealthy, health.Status)
	require.Len(t, health.Components, 3)
	require.Equal(t, StatusHealthy, health.Components["store"].Status)
	require.Equal(t, StatusHealthy, health.Components["invariants"].Status)
	require.Equal(t, StatusHealthy, health.Components["sweeper"].Status)
}

func TestCheckDetailedIncludesRegistry(t *testing.T) {
	t.Parallel()

	health := newTestChecker(t, healthySource()).Check(context.Background(), true)

	registry, ok := health.Components["registry"]
	require.True(t, ok)
	require.Equal(t, StatusHealthy, registry.Status)
	require.Equal(t, uint64(2), registry.Metrics["pools"])
}

func TestCheckComponentFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*fakeSource)
		component string
		expected  Status
		overall   Status
	}{
		{
			name:      "uninitialized registry",
			mutate:    func(f *fakeSource) { f.gsErr = swaptypes.ErrNotInitialized },
			component: "store",
			expected:  StatusDegraded,
			overall:   StatusDegraded,
		},
		{
			name:      "store error",
			mutate:    func(f *fakeSource) { f.gsErr = fmt.Errorf("disk gone") },
			component: "store",
			expected:  StatusUnhealthy,
			overall:   StatusUnhealthy,
		},
		{
			name:      "broken invariant",
			mutate:    func(f *fakeSource) { f.broken = "vault-balance: pool 0 short" },
			component: "invariants",
			expected:  StatusUnhealthy,
			overall:   StatusUnhealthy,
		},
		{
			name:      "stale sweeper",
			mutate:    func(f *fakeSource) { f.lastSweep = f.now.Add(-time.Hour) },
			component: "sweeper",
			expected:  StatusDegraded,
			overall:   StatusDegraded,
		},
		{
			name:      "sweeper never ran",
			mutate:    func(f *fakeSource) { f.lastSweep = time.Time{} },
			component: "sweeper",
			expected:  StatusUnknown,
			overall:   StatusHealthy,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := healthySource()
			tt.mutate(src)
			health := newTestChecker(t, src).Check(context.Background(), false)

			require.Equal(t, tt.expected, health.Components[tt.component].Status)
			require.Equal(t, tt.overall, health.Status)
		})
	}
}

func TestCalculateOverallStatus(t *testing.T) {
	t.Parallel()

	checker := newTestChecker(t, healthySource())

	tests := []struct {
		name       string
		components map[string]ComponentHealth
		expected   Status
	}{
		{
			name: "all healthy",
			components: map[string]ComponentHealth{
				"store":      {Status: StatusHealthy},
				"invariants": {Status: StatusHealthy},
			},
			expected: StatusHealthy,
		},
		{
			name: "one degraded",
			components: map[string]ComponentHealth{
				"store":   {Status: StatusHealthy},
				"sweeper": {Status: StatusDegraded},
			},
			expected: StatusDegraded,
		},
		{
			name: "unhealthy takes precedence over degraded",
			components: map[string]ComponentHealth{
				"store":      {Status: StatusDegraded},
				"invariants": {Status: StatusUnhealthy},
			},
			expected: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, checker.calculateOverallStatus(tt.components))
		})
	}
}

func TestCheckUsesCache(t *testing.T) {
	t.Parallel()

	src := healthySource()
	checker := newTestChecker(t, src)

	require.False(t, checker.shouldUseCached())
	first := checker.Check(context.Background(), false)
	require.True(t, checker.shouldUseCached())

	second := checker.Check(context.Background(), false)
	require.Same(t, first, second)
	require.Equal(t, 1, src.reads)

	checker.mu.Lock()
	checker.lastCheck = time.Now().Add(-time.Minute)
	checker.mu.Unlock()
	require.False(t, checker.shouldUseCached())
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	checker := newTestChecker(t, healthySource())

	w := httptest.NewRecorder()
	checker.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, "ok", response["status"])
	require.NotEmpty(t, response["timestamp"])
}

func TestHandleHealthReadyUnhealthy(t *testing.T) {
	t.Parallel()

	src := healthySource()
	src.broken = "share-supply: mismatch"
	checker := newTestChecker(t, src)

	w := httptest.NewRecorder()
	checker.handleHealthReady(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var health HealthCheck
	require.NoError(t, json.NewDecoder(w.Body).Decode(&health))
	require.Equal(t, StatusUnhealthy, health.Status)
	require.Equal(t, "share-supply: mismatch", health.Components["invariants"].Message)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	router := mux.NewRouter()
	newTestChecker(t, healthySource()).RegisterRoutes(router)

	for _, route := range []string{"/health", "/health/ready", "/health/detailed"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, route, nil))
		require.Equal(t, http.StatusOK, w.Code, "route %s", route)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestConcurrentHealthChecks(t *testing.T) {
	t.Parallel()

	checker := newTestChecker(t, healthySource())

	const numRequests = 10
	results := make(chan error, numRequests)

	for i := 0; i < numRequests; i++ {
		go func() {
			w := httptest.NewRecorder()
			checker.handleHealthReady(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if w.Code != http.StatusOK {
				results <- fmt.Errorf("unexpected status %d", w.Code)
				return
			}
			results <- nil
		}()
	}

	for i := 0; i < numRequests; i++ {
		require.NoError(t, <-results, "concurrent request %d failed", i)
	}
}

func BenchmarkCalculateOverallStatus(b *testing.B) {
	checker, err := NewChecker(log.NewNopLogger(), DefaultConfig(), healthySource())
	require.NoError(b, err)

	components := map[string]ComponentHealth{
		"store":      {Status: StatusHealthy},
		"invariants": {Status: StatusHealthy},
		"sweeper":    {Status: StatusDegraded},
		"registry":   {Status: StatusHealthy},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = checker.calculateOverallStatus(components)
	}
}
