package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/servio/internal/domain"
)

const tracerName = "github.com/neomorfeo/servio/internal/adapter/otel"

// TracingRepository wraps a domain.ServerRepository with OpenTelemetry tracing.
// Each method creates a span with semantic attributes and records errors.
// A not-found result is recorded as an error on the span even though the
// domain treats it as a normal condition; it is useful when tracing worker
// early terminations.
type TracingRepository struct {
	next   domain.ServerRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRepository implements domain.ServerRepository.
var _ domain.ServerRepository = (*TracingRepository)(nil)

// NewTracingRepository creates a tracing decorator around the given repository.
func NewTracingRepository(next domain.ServerRepository) *TracingRepository {
	return &TracingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRepository) Create(ctx context.Context, tenantID int64, name string) (domain.Server, error) {
	ctx, span := r.tracer.Start(ctx, "ServerRepository.Create",
		trace.WithAttributes(
			attribute.Int64("tenant.id", tenantID),
			attribute.String("server.name", name),
		),
	)
	defer span.End()

	server, err := r.next.Create(ctx, tenantID, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int64("server.id", server.ID))
	}
	return server, err
}

func (r *TracingRepository) Get(ctx context.Context, tenantID, id int64) (domain.Server, error) {
	ctx, span := r.tracer.Start(ctx, "ServerRepository.Get",
		trace.WithAttributes(
			attribute.Int64("tenant.id", tenantID),
			attribute.Int64("server.id", id),
		),
	)
	defer span.End()

	server, err := r.next.Get(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return server, err
}

func (r *TracingRepository) GetByID(ctx context.Context, id int64) (domain.Server, error) {
	ctx, span := r.tracer.Start(ctx, "ServerRepository.GetByID",
		trace.WithAttributes(attribute.Int64("server.id", id)),
	)
	defer span.End()

	server, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return server, err
}

func (r *TracingRepository) List(ctx context.Context, tenantID int64) ([]domain.Server, error) {
	ctx, span := r.tracer.Start(ctx, "ServerRepository.List",
		trace.WithAttributes(attribute.Int64("tenant.id", tenantID)),
	)
	defer span.End()

	servers, err := r.next.List(ctx, tenantID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(servers)))
	}
	return servers, err
}

func (r *TracingRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "ServerRepository.UpdateStatus",
		trace.WithAttributes(
			attribute.Int64("server.id", id),
			attribute.String("server.status", string(status)),
		),
	)
	defer span.End()

	ok, err := r.next.UpdateStatus(ctx, id, status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Bool("server.updated", ok))
	}
	return ok, err
}

func (r *TracingRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "ServerRepository.Delete",
		trace.WithAttributes(
			attribute.Int64("tenant.id", tenantID),
			attribute.Int64("server.id", id),
		),
	)
	defer span.End()

	ok, err := r.next.Delete(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Bool("server.deleted", ok))
	}
	return ok, err
}
