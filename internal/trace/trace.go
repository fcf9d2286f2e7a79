// Package trace wraps the OpenTelemetry SDK behind a small process-wide
// facade. Spans export to stdout; set TRACE_ENABLED=false to turn the
// whole thing into a no-op.
package trace

import (
	"context"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "llm-stock-analyst"
	serviceVersion = "1.0.0"
	enabledEnvVar  = "TRACE_ENABLED"
)

var (
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	active   bool
)

// Init wires the global tracer. Tracing defaults to on; any value of
// TRACE_ENABLED that strconv.ParseBool reads as false disables it.
func Init() error {
	active = envBool(enabledEnvVar, true)
	if !active {
		return nil
	}

	p, err := newProvider()
	if err != nil {
		return err
	}
	provider = p
	otel.SetTracerProvider(provider)
	tracer = otel.Tracer(serviceName)
	return nil
}

func newProvider() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}

// Shutdown flushes any buffered spans. Safe to call when Init never ran.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	return provider.Shutdown(ctx)
}

// StartSpan opens a span when tracing is enabled; otherwise it returns the
// span already on the context so callers never branch on the flag.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !active || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

func Enabled() bool {
	return active
}

// GetTraceFields extracts the trace and span IDs for log correlation.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !active {
		return "", "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
