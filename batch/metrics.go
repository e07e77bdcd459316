package batch

import (
	"context"

	St "github.com/austencloud/tka-scribe-sub004/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("scribe.batch")

// startRunSpan creates the parent span of one batch run
func startRunSpan(ctx context.Context, runID, mode, target string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Runner.Run",
		trace.WithAttributes(
			attribute.String("batch.run_id", runID),
			attribute.String("batch.mode", mode),
			attribute.String("batch.target", target),
		),
	)
}

// startClassifySpan creates a span for a single sequence
func startClassifySpan(ctx context.Context, sequenceID string, beats int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Classify",
		trace.WithAttributes(
			attribute.String("sequence.id", sequenceID),
			attribute.Int("sequence.beats", beats),
		),
	)
}

func setClassifySpanResult(span trace.Span, res St.ClassificationResult) {
	span.SetAttributes(
		attribute.Bool("sequence.circular", res.IsCircular),
		attribute.String("sequence.loop_type", res.LoopType),
		attribute.Int("sequence.candidates", len(res.CandidateDesignations)),
	)
}

func setRunSpanResult(span trace.Span, rep *Report, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int("batch.total", rep.Total),
		attribute.Int("batch.classified", rep.Classified),
	)
}
