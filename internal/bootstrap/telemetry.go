package bootstrap

import (
	"context"
	"io"
	"os"
	"web-ui-harness/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const serviceName = "web-ui-harness"

// newTraceProvider exports spans to TRACE_FILE. Without one, spans are
// recorded but discarded.
func newTraceProvider(lc fx.Lifecycle, config *config.Config, logger *zap.Logger) (*sdktrace.TracerProvider, error) {
	var (
		out     io.Writer = io.Discard
		closers []io.Closer
	)

	if path := config.AppConfig.TraceFile; path != "" {
		file, err := os.Create(path)
		if err != nil {
			return nil, err
		}

		out = file
		closers = append(closers, file)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(out),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := tp.Shutdown(ctx); err != nil {
				logger.Error("Failed to shut down tracer provider", zap.Error(err))
			}

			for _, c := range closers {
				if err := c.Close(); err != nil {
					return err
				}
			}

			return nil
		},
	})

	return tp, nil
}
