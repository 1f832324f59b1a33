// Package otelhelper wires OpenTelemetry tracing for action execution and
// chat dispatch.
package otelhelper

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Common attribute keys.
	ActionIDKey    = "mira.action.id"
	ActionNameKey  = "mira.action.name"
	HandlerKeyKey  = "mira.action.handler_key"
	AgentIDKey     = "mira.agent.id"
	IntentKey      = "mira.intent"
	ModuleKey      = "mira.module"
	ToolNameKey    = "mira.tool.name"
	AdvisorIDKey   = "mira.advisor.id"
	SessionIDKey   = "mira.session.id"
	EventIDKey     = "mira.event.id"
	ServiceIDKey   = "mira.service.id"
	ExecutionIDKey = "mira.execution.id"
)

// InitTracer installs a global OTLP/HTTP tracer provider for the service.
// The exporter endpoint comes from the standard OTEL_EXPORTER_OTLP_*
// environment variables. Callers own the returned provider and must shut it
// down on exit.
func InitTracer(ctx context.Context, serviceName string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}))

	return provider, nil
}

// Tracer returns a tracer scoped to the given component, backed by the
// globally installed provider.
//
// nolint:ireturn // Returning interface is intentional for OpenTelemetry tracing
func Tracer(component string) trace.Tracer {
	return otel.Tracer(component)
}

// StartSpan opens a child span carrying the given attributes.
//
// nolint:ireturn,spancheck // Returning interface is intentional for OpenTelemetry tracing
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
