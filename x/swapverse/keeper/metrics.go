package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SwapverseMetrics holds all Prometheus metrics for the swapverse module
type SwapverseMetrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapLatency       prometheus.Histogram
	SwapFeesCollected *prometheus.CounterVec

	// Investment metrics
	Investments   *prometheus.CounterVec
	SharesMinted  *prometheus.CounterVec
	Withdrawals   *prometheus.CounterVec
	ProfitClaimed *prometheus.CounterVec
	PoolReserves  *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal       prometheus.Gauge
	PoolTransitions  *prometheus.CounterVec
	TestTokensMinted *prometheus.CounterVec
}

var (
	swapverseMetricsOnce sync.Once
	swapverseMetrics     *SwapverseMetrics
)

// NewSwapverseMetrics creates and registers swapverse metrics (singleton pattern)
func NewSwapverseMetrics() *SwapverseMetrics {
	swapverseMetricsOnce.Do(func() {
		swapverseMetrics = &SwapverseMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "swaps_total",
					Help:      "Total number of swaps attempted",
				},
				[]string{"pool_index", "direction", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_index", "denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency",
					Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
				},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "treasury_fees_total",
					Help:      "Fees routed to pool treasuries",
				},
				[]string{"pool_index", "denom"},
			),
			Investments: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "investments_total",
					Help:      "Total deposited principal in base units",
				},
				[]string{"pool_index", "denom"},
			),
			SharesMinted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "shares_minted_total",
					Help:      "Total pool share tokens minted",
				},
				[]string{"pool_index", "side"},
			),
			Withdrawals: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "withdrawn_total",
					Help:      "Total principal redeemed in base units",
				},
				[]string{"pool_index", "denom"},
			),
			ProfitClaimed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "profit_claimed_total",
					Help:      "Total treasury profit paid to investors",
				},
				[]string{"pool_index", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool_index", "denom"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "swapverse",
					Subsystem: "registry",
					Name:      "pools_total",
					Help:      "Number of swap pools created",
				},
			),
			PoolTransitions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "pool",
					Name:      "lifecycle_transitions_total",
					Help:      "Pool lifecycle transitions",
				},
				[]string{"transition"},
			),
			TestTokensMinted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "swapverse",
					Subsystem: "registry",
					Name:      "test_tokens_minted_total",
					Help:      "Test tokens minted through the faucet",
				},
				[]string{"denom"},
			),
		}
	})
	return swapverseMetrics
}
