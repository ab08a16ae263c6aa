package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestDefaultTelemetryConfig(t *testing.T) {
	cfg := DefaultTelemetryConfig()
	require.False(t, cfg.Enabled)
	require.True(t, cfg.PrometheusEnabled)
	require.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitTelemetryDisabled(t *testing.T) {
	tel, err := InitTelemetry(DefaultTelemetryConfig())
	require.NoError(t, err)

	ctx, end := tel.StartOperation(context.Background(), "swap", attribute.String("pool", "0"))
	require.NotNil(t, ctx)
	end(nil)

	_, end = tel.StartOperation(context.Background(), "swap")
	end(errors.New("slippage"))

	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)
	require.Equal(t, start, clock.Now())

	clock.Advance(36 * time.Hour)
	require.Equal(t, start.Add(36*time.Hour), clock.Now())

	clock.Set(start)
	require.Equal(t, start, clock.Now())
}
