package app

import (
	"context"
	"fmt"
	"time"

	"kanban/internal/config"
	"kanban/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const tracerShutdownTimeout = 5 * time.Second

// initTracing installs an SDK tracer provider as the global one. It returns
// nil when tracing is disabled, leaving the no-op global in place.
func (a *App) initTracing() (*sdktrace.TracerProvider, error) {
	cfg := a.config.Tracing
	if !cfg.Enabled {
		return nil, nil
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
	}
	if cfg.Exporter == config.TraceExporterStdout {
		exporter, err := stdouttrace.New()
		if err != nil {
			return nil, fmt.Errorf("stdout trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	for _, sp := range a.spanProcessors {
		opts = append(opts, sdktrace.WithSpanProcessor(sp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	a.shutdowns = append(a.shutdowns, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()

		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("App: tracer provider shutdown failed", err)
		}
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})

	logger.Info("App: tracing enabled",
		zap.String("exporter", cfg.Exporter),
		zap.String("service", cfg.ServiceName))
	return tp, nil
}
