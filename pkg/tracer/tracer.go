package tracer

import (
	"context"
	"sync"

	"github.com/astro-web3/dashboard-authgate/pkg/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	defaultTracer trace.Tracer
	initOnce      sync.Once
	errInit       error
)

//nolint:gochecknoglobals // Used until InitTracer succeeds
var fallback = noop.NewTracerProvider().Tracer("noop")

func InitTracer(serviceName string, cfg otel.Config) error {
	initOnce.Do(func() {
		cfg.ServiceName = serviceName
		defaultTracer, errInit = otel.InitTracer(cfg)
	})
	return errInit
}

// Start opens a span on the service tracer, or a noop span before initialization.
func Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if defaultTracer == nil {
		return fallback.Start(ctx, spanName, opts...)
	}
	return defaultTracer.Start(ctx, spanName, opts...)
}
