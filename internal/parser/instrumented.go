package parser

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"medexplain/internal/observability/metrics"
	"medexplain/internal/port"
)

// InstrumentedParser records a span and request metrics for every provider call.
type InstrumentedParser struct {
	next    port.DocumentParser
	name    string
	tracer  trace.Tracer
	metrics *metrics.Metrics
}

// NewInstrumentedParser wraps next with tracing and metrics labelled by provider name.
func NewInstrumentedParser(name string, next port.DocumentParser, m *metrics.Metrics) *InstrumentedParser {
	return &InstrumentedParser{
		next:    next,
		name:    name,
		tracer:  otel.Tracer("medexplain/parser"),
		metrics: m,
	}
}

func (p *InstrumentedParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	ctx, span := p.tracer.Start(ctx, "llm."+input.Task,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", p.name),
			attribute.String("llm.task", input.Task),
			attribute.Bool("llm.has_document", input.HasDocument()),
		))
	defer span.End()

	start := time.Now()
	out, err := p.next.Parse(ctx, input)
	p.metrics.ObserveLLM(p.name, input.Task, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("llm.model", out.ModelUsed))
	return out, nil
}
