package obvy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/honeycombio/otel-config-go/otelconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracing backends selectable with SCRIBE_OTEL
const (
	OTelNone      = "none"
	OTelHoneycomb = "honeycomb"
	OTelOTLP      = "otlp"
)

// InitOTel installs the named tracing backend and returns its shutdown.
// With no backend the global no-op tracer stays in place.
func InitOTel(mode string) (func(), error) {
	switch mode {
	case "", OTelNone:
		return func() {}, nil
	case OTelHoneycomb:
		return InitOTelHNY()
	case OTelOTLP:
		tp, err := InitOTelGRF()
		if err != nil {
			return nil, err
		}
		return func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				slog.Error("Tracer provider shutdown failed", slog.Any("error", err))
			}
		}, nil
	default:
		return nil, fmt.Errorf("unknown otel mode: %s", mode)
	}
}

// InitOTelHNY uses the Honeycomb library to interface with OTel
func InitOTelHNY() (func(), error) {
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		return nil, fmt.Errorf("failed to configure OpenTelemetry: %w", err)
	}
	return func() { otelShutdown() }, nil
}

// InitOTelGRF exports over OTLP/HTTP, including Baggage for propagation.
// The endpoint comes from the standard OTEL_EXPORTER_OTLP_* variables.
func InitOTelGRF() (*sdktrace.TracerProvider, error) {
	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))
	return tp, nil
}
