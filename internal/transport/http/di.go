package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	gateapp "github.com/astro-web3/dashboard-authgate/internal/app/gate"
	sessionapp "github.com/astro-web3/dashboard-authgate/internal/app/session"
	"github.com/astro-web3/dashboard-authgate/internal/config"
	gatedomain "github.com/astro-web3/dashboard-authgate/internal/domain/gate"
	sessiondomain "github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/astro-web3/dashboard-authgate/internal/infra/cache"
	"github.com/astro-web3/dashboard-authgate/internal/infra/session"
	"github.com/astro-web3/dashboard-authgate/pkg/logger"
	"github.com/astro-web3/dashboard-authgate/pkg/otel"
	"github.com/astro-web3/dashboard-authgate/pkg/tracer"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	httpServer *http.Server
	closers    []func() error
}

const (
	idleTimeoutMultiplier = 2
	serviceName           = "dashboard-authgate"
)

func NewServer(cfg *config.Config) (*Server, error) {
	logger.InitLogger(cfg.Observability.LogLevel, cfg.Observability.Format, cfg.Observability.LogSource)

	otelCfg := otel.DefaultConfig(serviceName)
	otelCfg.EndpointURL = cfg.Observability.TracingEndpointURL
	otelCfg.Enabled = cfg.Observability.TraceEnabled
	if err := tracer.InitTracer(serviceName, otelCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	srv := &Server{}

	resolver, revoker, err := srv.sessionBackend(cfg)
	if err != nil {
		return nil, err
	}

	gateService := gateapp.NewService(
		gatedomain.NewService(gatedomain.NewRoleSet(cfg.Auth.Gate.AuthorizedRoles...)),
	)
	sessionService := sessionapp.NewService(revoker)

	bindings, err := Bindings(cfg, gateService)
	if err != nil {
		return nil, err
	}
	for _, b := range bindings {
		logger.InfoContext(context.Background(), "interceptor bound",
			slog.String("name", b.Name),
			slog.Any("routes", b.Routes.Strings()),
		)
	}

	upstream, err := NewUpstreamProxy(cfg.Upstream.URL)
	if err != nil {
		return nil, err
	}

	handler := NewHandler(sessionService, resolver, cfg)
	router := NewRouter(handler, cfg, bindings, resolver, upstream)

	srv.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout * idleTimeoutMultiplier,
	}
	return srv, nil
}

// sessionBackend wires the configured identity source. Only the redis source
// keeps server-side state, so it is the only one with a revoker.
func (s *Server) sessionBackend(cfg *config.Config) (sessiondomain.Resolver, sessiondomain.Revoker, error) {
	identity := cfg.Auth.Identity

	switch identity.Source {
	case config.IdentitySourceRedis:
		client, err := cache.NewRedisClient(cfg.Redis.URL, cfg.Redis.PoolSize)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		s.closers = append(s.closers, client.Close)

		store := cache.NewIdentityStore(redis.UniversalClient(client), identity.KeyPrefix)
		source := session.StoreSource{Store: store, Timeout: identity.LookupTimeout}
		return session.NewResolver(cfg.Auth.CredentialCookie, source), session.StoreRevoker{Store: store}, nil

	case config.IdentitySourceJWT:
		source := session.JWTSource{Secret: []byte(identity.JWTSecret), RoleClaim: identity.RoleClaim}
		return session.NewResolver(cfg.Auth.CredentialCookie, source), nil, nil

	case config.IdentitySourceCookie:
		source := session.CookieSource{Name: identity.CookieName}
		return session.NewResolver(cfg.Auth.CredentialCookie, source), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown identity source %q", identity.Source)
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	for _, closeFn := range s.closers {
		if closeErr := closeFn(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to release resources: %w", closeErr)
		}
	}
	return err
}
