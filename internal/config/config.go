package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "AUTHGATE"

const (
	IdentitySourceCookie = "cookie"
	IdentitySourceRedis  = "redis"
	IdentitySourceJWT    = "jwt"
)

type Config struct {
	Server struct {
		Addr                  string        `mapstructure:"addr"`
		Mode                  string        `mapstructure:"mode"`
		ReadTimeout           time.Duration `mapstructure:"read_timeout"`
		WriteTimeout          time.Duration `mapstructure:"write_timeout"`
		TrustForwardedHeaders bool          `mapstructure:"trust_forwarded_headers"`
	} `mapstructure:"server"`

	Upstream struct {
		URL        string `mapstructure:"url"`
		HealthPath string `mapstructure:"health_path"`
	} `mapstructure:"upstream"`

	Redis struct {
		URL      string `mapstructure:"url"`
		PoolSize int    `mapstructure:"pool_size"`
	} `mapstructure:"redis"`

	Auth struct {
		CredentialCookie string `mapstructure:"credential_cookie"`
		LogoutPath       string `mapstructure:"logout_path"`
		UnauthorizedPath string `mapstructure:"unauthorized_path"`

		Propagator struct {
			Routes []string `mapstructure:"routes"`
		} `mapstructure:"propagator"`

		Gate struct {
			Routes          []string `mapstructure:"routes"`
			AuthorizedRoles []string `mapstructure:"authorized_roles"`
		} `mapstructure:"gate"`

		Identity struct {
			Source        string        `mapstructure:"source"`
			CookieName    string        `mapstructure:"cookie_name"`
			KeyPrefix     string        `mapstructure:"key_prefix"`
			JWTSecret     string        `mapstructure:"jwt_secret"`
			RoleClaim     string        `mapstructure:"role_claim"`
			LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
		} `mapstructure:"identity"`
	} `mapstructure:"auth"`

	Observability struct {
		TraceEnabled       bool   `mapstructure:"trace_enabled"`
		TracingEndpointURL string `mapstructure:"tracing_endpoint_url"`
		LogLevel           string `mapstructure:"log_level"`
		Format             string `mapstructure:"log_format"`
		LogSource          bool   `mapstructure:"log_source"`
	} `mapstructure:"observability"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.trust_forwarded_headers", false)

	v.SetDefault("upstream.url", "")
	v.SetDefault("upstream.health_path", "/")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("auth.credential_cookie", "token")
	v.SetDefault("auth.logout_path", "/api/auth/logout")
	v.SetDefault("auth.unauthorized_path", "/unauthorized")
	v.SetDefault("auth.propagator.routes", []string{"/api/*"})
	v.SetDefault("auth.gate.routes", []string{
		"/dashboard/*",
		"/servers/*",
		"/tickets/*",
		"/users/*",
		"/settings/*",
	})
	v.SetDefault("auth.gate.authorized_roles", []string{"ADMIN", "MANAGER"})
	v.SetDefault("auth.identity.source", IdentitySourceCookie)
	v.SetDefault("auth.identity.cookie_name", "user")
	v.SetDefault("auth.identity.key_prefix", "dashboard:identity:")
	v.SetDefault("auth.identity.jwt_secret", "")
	v.SetDefault("auth.identity.role_claim", "role")
	v.SetDefault("auth.identity.lookup_timeout", 500*time.Millisecond)

	v.SetDefault("observability.trace_enabled", false)
	v.SetDefault("observability.tracing_endpoint_url", "")
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.log_format", "json")
	v.SetDefault("observability.log_source", false)

	v.SetDefault("cors.allowed_origins", []string{})
}

// New returns a viper instance wired to the config search paths and AUTHGATE_* env vars.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// Load reads and validates the configuration. A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		if err := v.MergeInConfig(); err != nil {
			slog.Info("No environment-specific config (optional)", slog.String("env", env))
		} else {
			slog.Info("Environment-specific config loaded", slog.String("env", env))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load(New())
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Auth.CredentialCookie == "" {
		return errors.New("auth.credential_cookie must not be empty")
	}
	if !strings.HasPrefix(c.Auth.UnauthorizedPath, "/") {
		return fmt.Errorf("auth.unauthorized_path must be absolute, got %q", c.Auth.UnauthorizedPath)
	}
	if !strings.HasPrefix(c.Auth.LogoutPath, "/") {
		return fmt.Errorf("auth.logout_path must be absolute, got %q", c.Auth.LogoutPath)
	}
	if len(c.Auth.Gate.AuthorizedRoles) == 0 {
		return errors.New("auth.gate.authorized_roles must list at least one role")
	}

	switch c.Auth.Identity.Source {
	case IdentitySourceCookie:
		if c.Auth.Identity.CookieName == "" {
			return errors.New("auth.identity.cookie_name is required for the cookie identity source")
		}
	case IdentitySourceRedis:
		if c.Redis.URL == "" {
			return errors.New("redis.url is required for the redis identity source")
		}
	case IdentitySourceJWT:
		if c.Auth.Identity.JWTSecret == "" {
			return errors.New("auth.identity.jwt_secret is required for the jwt identity source")
		}
	default:
		return fmt.Errorf("unknown auth.identity.source %q", c.Auth.Identity.Source)
	}

	return nil
}
