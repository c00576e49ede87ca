package session

import (
	"context"
	"net/http"
	"net/url"

	sessiondomain "github.com/astro-web3/dashboard-authgate/internal/domain/session"
)

// CookieSource reads the identity as URL-encoded JSON from a client cookie.
// The record is client-writable and carries no integrity protection.
type CookieSource struct {
	Name string
}

func (s CookieSource) Lookup(_ context.Context, r *http.Request, _ string) (*sessiondomain.Identity, error) {
	raw := readCookie(r, s.Name)
	if raw == "" {
		return nil, nil
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return sessiondomain.ParseIdentity(raw)
}
