package http

import (
	"context"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

// requestCarrier adapts a resty request to propagation.TextMapCarrier.
type requestCarrier struct {
	request *resty.Request
}

func (c requestCarrier) Get(key string) string {
	return c.request.Header.Get(key)
}

func (c requestCarrier) Set(key, value string) {
	c.request.SetHeader(key, value)
}

func (c requestCarrier) Keys() []string {
	keys := make([]string, 0, len(c.request.Header))
	for k := range c.request.Header {
		keys = append(keys, k)
	}
	return keys
}

func injectTracingHeaders(ctx context.Context, request *resty.Request) {
	otel.GetTextMapPropagator().Inject(ctx, requestCarrier{request: request})
}
