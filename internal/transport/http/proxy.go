package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/astro-web3/dashboard-authgate/pkg/logger"
	"github.com/gin-gonic/gin"
)

// NewUpstreamProxy returns the handler that serves every request the gateway
// does not answer itself. An empty URL yields a handler that always fails.
func NewUpstreamProxy(rawURL string) (http.Handler, error) {
	if rawURL == "" {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSONError(w, http.StatusBadGateway, "upstream not configured")
		}), nil
	}

	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upstream URL: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("upstream URL %q must be absolute", rawURL)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "upstream request failed",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			writeJSONError(w, http.StatusBadGateway, "bad gateway")
		},
	}, nil
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, "{\"error\":%q}", msg)
}

func upstreamHandler(upstream http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		// gin presets 404 for unmatched routes; the upstream decides the status.
		c.Status(http.StatusOK)
		upstream.ServeHTTP(c.Writer, c.Request)
	}
}
