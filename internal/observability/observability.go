package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resumeforge/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Manager owns the OpenTelemetry tracer and meter providers and the
// application metrics built on top of them.
type Manager struct {
	cfg            *config.Config
	serviceVersion string
	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
	shutdownFuncs  []func(context.Context) error
}

// NewManager initializes tracing and metrics from the observability section
// of the configuration. When observability is disabled the manager is inert:
// every method is safe to call and does nothing.
func NewManager(cfg *config.Config, version string) (*Manager, error) {
	m := &Manager{cfg: cfg, serviceVersion: version}

	if cfg == nil || !cfg.Observability.Enabled {
		return m, nil
	}

	res, err := m.buildResource()
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if cfg.Observability.Tracing.Enabled {
		if err := m.initTracing(res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.Observability.Metrics.Enabled {
		if err := m.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Manager) buildResource() (*resource.Resource, error) {
	obs := m.cfg.Observability

	serviceVersion := obs.ServiceVersion
	if serviceVersion == "" {
		serviceVersion = m.serviceVersion
	}

	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(obs.ServiceName),
			semconv.ServiceVersion(serviceVersion),
			semconv.ServiceInstanceID(obs.ServiceInstance),
		),
	)
}

func (m *Manager) initTracing(res *resource.Resource) error {
	var exporter trace.SpanExporter
	var err error

	obs := m.cfg.Observability
	switch {
	case obs.Console.Enabled:
		opts := []stdouttrace.Option{}
		if obs.Console.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	case obs.OTLP.Enabled:
		exporter, err = m.createOTLPTraceExporter()
	default:
		exporter = discardSpanExporter{}
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(obs.Tracing.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)
	return nil
}

func (m *Manager) initMetrics(res *resource.Resource) error {
	readers, err := m.buildMetricReaders()
	if err != nil {
		return err
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, reader := range readers {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)

	m.meterProvider = mp
	m.shutdownFuncs = append(m.shutdownFuncs, mp.Shutdown)

	metrics, err := newMetrics(mp.Meter(m.cfg.Observability.ServiceName))
	if err != nil {
		return err
	}
	m.metrics = metrics
	return nil
}

func (m *Manager) buildMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader
	obs := m.cfg.Observability

	if obs.Console.Enabled {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(m.collectionInterval())))
	}

	if obs.OTLP.Enabled {
		reader, err := m.createOTLPMetricReader()
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metric reader: %w", err)
		}
		readers = append(readers, reader)
	}

	if obs.Prometheus.Enabled {
		reader, err := startPrometheus(obs.Prometheus)
		if err != nil {
			return nil, fmt.Errorf("failed to set up Prometheus exporter: %w", err)
		}
		readers = append(readers, reader)
	}

	// A manual reader keeps the meter provider functional when no
	// exporter is configured.
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

func (m *Manager) createOTLPTraceExporter() (trace.SpanExporter, error) {
	otlp := m.cfg.Observability.OTLP

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlp.Endpoint),
	}
	if otlp.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(otlp.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlp.Headers))
	}

	return otlptracehttp.New(context.Background(), opts...)
}

func (m *Manager) createOTLPMetricReader() (sdkmetric.Reader, error) {
	otlp := m.cfg.Observability.OTLP

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlp.Endpoint),
	}
	if otlp.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(otlp.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlp.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	return sdkmetric.NewPeriodicReader(exporter,
		sdkmetric.WithInterval(m.collectionInterval())), nil
}

func (m *Manager) collectionInterval() time.Duration {
	if interval := m.cfg.Observability.Metrics.CollectionInterval; interval > 0 {
		return interval
	}
	return 15 * time.Second
}

// Metrics returns the application metrics. The result is never nil; when
// metrics are not initialized all instruments are nil and recording is a
// no-op.
func (m *Manager) Metrics() *Metrics {
	if m.metrics == nil {
		return &Metrics{}
	}
	return m.metrics
}

// Tracer returns a tracer for the given instrumentation name, or a no-op
// tracer when observability is disabled.
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if m.tracerProvider == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// HTTPMiddleware instruments incoming HTTP requests with traces and metrics.
func (m *Manager) HTTPMiddleware() func(http.Handler) http.Handler {
	if m.cfg == nil || !m.cfg.Observability.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		m.cfg.Observability.ServiceName,
		otelhttp.WithTracerProvider(m.tracerProvider),
		otelhttp.WithMeterProvider(m.meterProvider),
	)
}

// Shutdown flushes and stops all exporters.
func (m *Manager) Shutdown(ctx context.Context) error {
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// discardSpanExporter drops spans when no trace exporter is configured.
type discardSpanExporter struct{}

func (discardSpanExporter) ExportSpans(context.Context, []trace.ReadOnlySpan) error { return nil }
func (discardSpanExporter) Shutdown(context.Context) error                          { return nil }
