package http

import (
	"fmt"
	"net/http"

	gateapp "github.com/astro-web3/dashboard-authgate/internal/app/gate"
	"github.com/astro-web3/dashboard-authgate/internal/config"
	"github.com/astro-web3/dashboard-authgate/internal/domain/route"
	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	bindingPropagator = "credential-propagator"
	bindingRoleGate   = "role-gate"
)

// Bindings builds the interceptor table from configuration. Propagation runs
// before gating; neither depends on the other's effects.
func Bindings(cfg *config.Config, gate gateapp.Service) ([]Binding, error) {
	propagatorRoutes, err := route.ParseSet(cfg.Auth.Propagator.Routes)
	if err != nil {
		return nil, fmt.Errorf("auth.propagator.routes: %w", err)
	}
	gateRoutes, err := route.ParseSet(cfg.Auth.Gate.Routes)
	if err != nil {
		return nil, fmt.Errorf("auth.gate.routes: %w", err)
	}

	return []Binding{
		{
			Name:      bindingPropagator,
			Routes:    propagatorRoutes,
			Intercept: CredentialPropagator(),
		},
		{
			Name:      bindingRoleGate,
			Routes:    gateRoutes,
			Intercept: RoleGate(gate, cfg.Auth.UnauthorizedPath, cfg.Server.TrustForwardedHeaders),
		},
	}, nil
}

func NewRouter(
	handler *Handler,
	cfg *config.Config,
	bindings []Binding,
	resolver session.Resolver,
	upstream http.Handler,
) *gin.Engine {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Server.Mode != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	if cfg.Observability.TraceEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(loggingMiddleware())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	}

	// Probes are registered before the interceptors so they stay ungated.
	router.GET("/healthz", handler.Health)
	router.GET("/readyz", handler.Ready)

	router.Use(Dispatch(bindings, resolver))

	router.POST(cfg.Auth.LogoutPath, handler.Logout)
	router.NoRoute(upstreamHandler(upstream))

	return router
}
