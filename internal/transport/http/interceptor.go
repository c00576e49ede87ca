package http

import (
	"log/slog"
	"net/http"

	gateapp "github.com/astro-web3/dashboard-authgate/internal/app/gate"
	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/astro-web3/dashboard-authgate/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// CredentialPropagator forwards the session credential as a bearer token.
// Requests without a credential pass through untouched.
func CredentialPropagator() Interceptor {
	return func(c *gin.Context, sess session.Context) bool {
		credential, ok := sess.Credential()
		if !ok {
			return true
		}

		headers := c.Request.Header.Clone()
		if headers == nil {
			headers = make(http.Header)
		}
		headers.Set(headerAuthorization, bearerPrefix+credential)
		c.Request.Header = headers
		return true
	}
}

// RoleGate redirects requests whose identity lacks an authorized role.
func RoleGate(svc gateapp.Service, unauthorizedPath string, trustForwarded bool) Interceptor {
	return func(c *gin.Context, sess session.Context) bool {
		ctx := c.Request.Context()

		decision := svc.Authorize(ctx, sess)
		if decision.Allow {
			return true
		}

		logger.WarnContext(ctx, "access denied",
			slog.String("path", c.Request.URL.Path),
			slog.String("reason", decision.Reason),
			slog.String("role", decision.Role),
		)
		c.Redirect(http.StatusTemporaryRedirect, originURL(c.Request, unauthorizedPath, trustForwarded))
		return false
	}
}
