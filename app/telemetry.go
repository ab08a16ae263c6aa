package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "swapverse"

// TelemetryConfig holds the configuration for telemetry
type TelemetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	OTLPEndpoint      string  `mapstructure:"otlp-endpoint"`
	PrometheusEnabled bool    `mapstructure:"prometheus-enabled"`
	SampleRate        float64 `mapstructure:"sample-rate"`
	Environment       string  `mapstructure:"environment"`
}

// DefaultTelemetryConfig disables export; spans and counters are no-ops
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:           false,
		OTLPEndpoint:      "localhost:4318",
		PrometheusEnabled: true,
		SampleRate:        1.0,
		Environment:       "devnet",
	}
}

// Telemetry manages OpenTelemetry tracing and operation metrics
type Telemetry struct {
	tracer       trace.Tracer
	opCounter    metric.Int64Counter
	opDuration   metric.Float64Histogram
	config       TelemetryConfig
	shutdownFunc []func(context.Context) error
}

// NewNopTelemetry returns telemetry that records nothing
func NewNopTelemetry() *Telemetry {
	t := &Telemetry{config: TelemetryConfig{}}
	t.tracer = otel.GetTracerProvider().Tracer(serviceName)
	t.mustInstruments(noop.NewMeterProvider().Meter(serviceName))
	return t
}

// InitTelemetry initializes OpenTelemetry tracing and metrics
func InitTelemetry(cfg TelemetryConfig) (*Telemetry, error) {
	if !cfg.Enabled {
		t := NewNopTelemetry()
		t.config = cfg
		return t, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tel := &Telemetry{config: cfg}
	if err := tel.initTracing(res); err != nil {
		return nil, err
	}
	if err := tel.initMetrics(res); err != nil {
		return nil, err
	}
	return tel, nil
}

// initTracing sets up OTLP/HTTP tracing
func (t *Telemetry) initTracing(res *resource.Resource) error {
	if _, err := url.Parse(t.config.OTLPEndpoint); err != nil {
		return err
	}

	endpoint := strings.TrimPrefix(t.config.OTLPEndpoint, "http://")
	exp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(
			sdktrace.TraceIDRatioBased(t.config.SampleRate),
		)),
	)

	otel.SetTracerProvider(tp)
	t.tracer = tp.Tracer(serviceName)
	t.shutdownFunc = append(t.shutdownFunc, tp.Shutdown)
	return nil
}

// initMetrics exports operation metrics through the Prometheus default registry
func (t *Telemetry) initMetrics(res *resource.Resource) error {
	if !t.config.PrometheusEnabled {
		t.mustInstruments(noop.NewMeterProvider().Meter(serviceName))
		return nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return err
	}
	provider := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)
	t.shutdownFunc = append(t.shutdownFunc, provider.Shutdown)

	return t.instruments(provider.Meter(serviceName))
}

func (t *Telemetry) instruments(meter metric.Meter) error {
	var err error
	t.opCounter, err = meter.Int64Counter(
		"swapverse.operations",
		metric.WithDescription("Operations executed by the application"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return err
	}
	t.opDuration, err = meter.Float64Histogram(
		"swapverse.operation.duration",
		metric.WithDescription("Operation processing time"),
		metric.WithUnit("ms"),
	)
	return err
}

func (t *Telemetry) mustInstruments(meter metric.Meter) {
	if err := t.instruments(meter); err != nil {
		panic(err)
	}
}

// StartOperation opens a span for op and returns a func that ends it and
// records the outcome.
func (t *Telemetry) StartOperation(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := t.tracer.Start(ctx, op, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		status := "success"
		if err != nil {
			status = "failed"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		set := metric.WithAttributes(attribute.String("operation", op), attribute.String("status", status))
		t.opCounter.Add(ctx, 1, set)
		t.opDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000.0, set)
	}
}

// Shutdown gracefully shuts down telemetry
func (t *Telemetry) Shutdown(ctx context.Context) error {
	for _, fn := range t.shutdownFunc {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}
