package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	sessiondomain "github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/astro-web3/dashboard-authgate/internal/infra/cache"
)

// StoreSource reads the identity bound to the credential from a server-side store.
type StoreSource struct {
	Store   cache.IdentityStore
	Timeout time.Duration
}

func (s StoreSource) Lookup(ctx context.Context, _ *http.Request, credential string) (*sessiondomain.Identity, error) {
	if credential == "" {
		return nil, nil
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	raw, err := s.Store.Get(ctx, credential)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sessiondomain.ParseIdentity(raw)
}

// StoreRevoker deletes the server-side identity on logout.
type StoreRevoker struct {
	Store cache.IdentityStore
}

func (r StoreRevoker) Revoke(ctx context.Context, credential string) error {
	return r.Store.Delete(ctx, credential)
}
