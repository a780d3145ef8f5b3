package otel

import (
	"context"
	"sync"

	"github.com/Xemius/graphql-platform/internal/eventbus"
	"github.com/Xemius/graphql-platform/internal/events"
	"github.com/Xemius/graphql-platform/internal/runid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("fusion")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer       trace.Tracer
	composeSpans sync.Map // run id -> trace.Span
	buildSpans   sync.Map // run id -> trace.Span
	loadSpans    sync.Map // run id + subgraph -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.ComposeStart) {
		rid, _ := runid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "compose.run")
		span.SetAttributes(attribute.String("compose.target", e.Target))
		s.composeSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.ComposeFinish) {
		rid, _ := runid.FromContext(ctx)
		v, ok := s.composeSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("compose.subgraph_count", e.Subgraphs),
			attribute.Int("compose.output_bytes", e.Bytes),
		)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.SubgraphLoadStart) {
		rid, _ := runid.FromContext(ctx)
		parent := ctx
		if v, ok := s.composeSpans.Load(rid); ok {
			parent = trace.ContextWithSpan(ctx, v.(trace.Span))
		}
		_, span := s.tracer.Start(parent, "subgraph.load")
		span.SetAttributes(attribute.String("subgraph.name", e.Subgraph))
		s.loadSpans.Store(rid+"/"+e.Subgraph, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.SubgraphLoadFinish) {
		rid, _ := runid.FromContext(ctx)
		v, ok := s.loadSpans.LoadAndDelete(rid + "/" + e.Subgraph)
		if !ok {
			return
		}
		span := v.(trace.Span)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.BuildStart) {
		rid, _ := runid.FromContext(ctx)
		parent := ctx
		if v, ok := s.composeSpans.Load(rid); ok {
			parent = trace.ContextWithSpan(ctx, v.(trace.Span))
		}
		_, span := s.tracer.Start(parent, "compose.build")
		span.SetAttributes(attribute.Int("compose.subgraph_count", e.Subgraphs))
		s.buildSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.BuildFinish) {
		rid, _ := runid.FromContext(ctx)
		v, ok := s.buildSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("compose.type_count", e.Types),
			attribute.Int("compose.entity_count", e.Entities),
		)
		span.End()
	})
}
