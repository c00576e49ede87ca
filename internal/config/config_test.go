package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/astro-web3/dashboard-authgate/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromFile(t *testing.T, content string) (*config.Config, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := config.New()
	v.SetConfigFile(path)
	return config.Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFromFile(t, "server:\n  addr: \":9000\"\n")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "token", cfg.Auth.CredentialCookie)
	assert.Equal(t, "/api/auth/logout", cfg.Auth.LogoutPath)
	assert.Equal(t, "/unauthorized", cfg.Auth.UnauthorizedPath)
	assert.Equal(t, []string{"/api/*"}, cfg.Auth.Propagator.Routes)
	assert.Contains(t, cfg.Auth.Gate.Routes, "/servers/*")
	assert.Contains(t, cfg.Auth.Gate.Routes, "/dashboard/*")
	assert.ElementsMatch(t, []string{"ADMIN", "MANAGER"}, cfg.Auth.Gate.AuthorizedRoles)
	assert.Equal(t, config.IdentitySourceCookie, cfg.Auth.Identity.Source)
	assert.Equal(t, "user", cfg.Auth.Identity.CookieName)
	assert.Equal(t, 500*time.Millisecond, cfg.Auth.Identity.LookupTimeout)
}

func TestLoad_WithConfigFile(t *testing.T) {
	cfg, err := loadFromFile(t, `
server:
  mode: debug
  read_timeout: 5s
  trust_forwarded_headers: true
upstream:
  url: "http://dashboard:3000"
auth:
  gate:
    routes: ["/reports/*"]
    authorized_roles: ["OWNER"]
  identity:
    source: jwt
    jwt_secret: "s3cret"
    role_claim: "app_role"
cors:
  allowed_origins: ["https://dashboard.example.com"]
`)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.TrustForwardedHeaders)
	assert.Equal(t, "http://dashboard:3000", cfg.Upstream.URL)
	assert.Equal(t, []string{"/reports/*"}, cfg.Auth.Gate.Routes)
	assert.Equal(t, []string{"OWNER"}, cfg.Auth.Gate.AuthorizedRoles)
	assert.Equal(t, config.IdentitySourceJWT, cfg.Auth.Identity.Source)
	assert.Equal(t, "app_role", cfg.Auth.Identity.RoleClaim)
	assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	t.Setenv("AUTHGATE_SERVER_ADDR", "127.0.0.1:7070")
	t.Setenv("AUTHGATE_AUTH_CREDENTIAL_COOKIE", "session")
	t.Setenv("AUTHGATE_AUTH_GATE_AUTHORIZED_ROLES", "ADMIN,OWNER")

	cfg, err := loadFromFile(t, "server:\n  addr: \":9000\"\n")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7070", cfg.Server.Addr)
	assert.Equal(t, "session", cfg.Auth.CredentialCookie)
	assert.Equal(t, []string{"ADMIN", "OWNER"}, cfg.Auth.Gate.AuthorizedRoles)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown identity source", "auth:\n  identity:\n    source: ldap\n"},
		{"jwt without secret", "auth:\n  identity:\n    source: jwt\n"},
		{"redis without url", "auth:\n  identity:\n    source: redis\n"},
		{"relative unauthorized path", "auth:\n  unauthorized_path: unauthorized\n"},
		{"no authorized roles", "auth:\n  gate:\n    authorized_roles: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFromFile(t, tt.content)
			assert.Error(t, err)
		})
	}
}
