package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	sessionapp "github.com/astro-web3/dashboard-authgate/internal/app/session"
	"github.com/astro-web3/dashboard-authgate/internal/config"
	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
	httpclient "github.com/astro-web3/dashboard-authgate/pkg/http"
	"github.com/astro-web3/dashboard-authgate/pkg/logger"
	"github.com/astro-web3/dashboard-authgate/pkg/tracer"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const (
	logoutSucceededMessage = "Logged out successfully"
	logoutFailedMessage    = "Logout failed"
)

type Handler struct {
	sessions         sessionapp.Service
	resolver         session.Resolver
	credentialCookie string
	trustForwarded   bool
	upstreamHealth   string
}

func NewHandler(sessions sessionapp.Service, resolver session.Resolver, cfg *config.Config) *Handler {
	h := &Handler{
		sessions:         sessions,
		resolver:         resolver,
		credentialCookie: cfg.Auth.CredentialCookie,
		trustForwarded:   cfg.Server.TrustForwardedHeaders,
	}
	if cfg.Upstream.URL != "" {
		h.upstreamHealth = strings.TrimSuffix(cfg.Upstream.URL, "/") + "/" + strings.TrimPrefix(cfg.Upstream.HealthPath, "/")
	}
	return h
}

// Logout terminates the session and expires the credential cookie.
// Failures are answered with a generic body; details stay in the logs.
func (h *Handler) Logout(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.Logout")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "logout panicked", slog.Any("panic", r))
			span.SetAttributes(attribute.Bool("logout.panic", true))
			if !c.Writer.Written() {
				c.Writer.Header().Del("Set-Cookie")
				c.JSON(http.StatusInternalServerError, gin.H{"message": logoutFailedMessage})
			}
		}
	}()

	sess := h.resolver.Resolve(c.Request)
	if err := h.sessions.Terminate(ctx, sess); err != nil {
		span.RecordError(err)
		logger.ErrorContext(ctx, "failed to terminate session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": logoutFailedMessage})
		return
	}

	http.SetCookie(c.Writer, h.expiredCredentialCookie(c.Request))
	c.JSON(http.StatusOK, gin.H{"message": logoutSucceededMessage})
}

func (h *Handler) expiredCredentialCookie(r *http.Request) *http.Cookie {
	return &http.Cookie{
		Name:     h.credentialCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1, // serialized as Max-Age=0
		HttpOnly: true,
		Secure:   isHTTPS(r, h.trustForwarded),
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Ready reports whether the upstream dashboard answers its health endpoint.
func (h *Handler) Ready(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.Ready")
	defer span.End()

	if h.upstreamHealth == "" {
		c.String(http.StatusServiceUnavailable, "upstream not configured")
		return
	}

	resp, err := httpclient.Get(ctx, h.upstreamHealth)
	if err != nil {
		span.RecordError(err)
		logger.WarnContext(ctx, "upstream health check failed", slog.String("error", err.Error()))
		c.String(http.StatusServiceUnavailable, "upstream unavailable")
		return
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		logger.WarnContext(ctx, "upstream unhealthy", slog.Int("status", resp.StatusCode()))
		c.String(http.StatusServiceUnavailable, "upstream unavailable")
		return
	}

	c.String(http.StatusOK, "ready")
}
