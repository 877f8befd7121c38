package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/servio/internal/domain"
)

// TracingDispatcher wraps a domain.TaskDispatcher with OpenTelemetry tracing.
type TracingDispatcher struct {
	next   domain.TaskDispatcher
	tracer trace.Tracer
}

// Compile-time check: TracingDispatcher implements domain.TaskDispatcher.
var _ domain.TaskDispatcher = (*TracingDispatcher)(nil)

// NewTracingDispatcher creates a tracing decorator around the given dispatcher.
func NewTracingDispatcher(next domain.TaskDispatcher) *TracingDispatcher {
	return &TracingDispatcher{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (d *TracingDispatcher) Schedule(ctx context.Context, serverID int64) error {
	ctx, span := d.tracer.Start(ctx, "TaskDispatcher.Schedule",
		trace.WithAttributes(attribute.Int64("server.id", serverID)),
	)
	defer span.End()

	err := d.next.Schedule(ctx, serverID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
