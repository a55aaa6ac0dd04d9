// Package tracing wraps OpenTelemetry spans behind a small Scope API.
package tracing

import (
	"context"
	"fmt"

	"table-booking/internal/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

type Tracer interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
}

type tracerImpl struct {
	provider trace.TracerProvider
}

func (t *tracerImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := t.provider.Tracer(scopeName).Start(ctx, spanName)
	return ctx, NewScope(span)
}

// NewNoop returns a tracer whose spans record nothing.
func NewNoop() Tracer {
	return &tracerImpl{provider: noop.NewTracerProvider()}
}

// New exports spans over OTLP/gRPC. Without an endpoint it returns a no-op
// tracer and a no-op shutdown.
func New(ctx context.Context, cfg config.TracingConfig) (Tracer, func(context.Context) error, error) {
	if cfg.Endpoint == "" {
		return NewNoop(), func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(provider)

	return &tracerImpl{provider: provider}, provider.Shutdown, nil
}
