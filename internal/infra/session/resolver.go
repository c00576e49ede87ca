package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	sessiondomain "github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/astro-web3/dashboard-authgate/pkg/logger"
)

// IdentitySource looks up the identity descriptor for a request. It returns
// (nil, nil) when the request has no identity at all.
type IdentitySource interface {
	Lookup(ctx context.Context, r *http.Request, credential string) (*sessiondomain.Identity, error)
}

// Resolver builds request sessions from the credential cookie and an identity source.
type Resolver struct {
	credentialCookie string
	source           IdentitySource
}

func NewResolver(credentialCookie string, source IdentitySource) *Resolver {
	return &Resolver{credentialCookie: credentialCookie, source: source}
}

func (res *Resolver) Resolve(r *http.Request) sessiondomain.Context {
	return &requestSession{
		request:    r,
		source:     res.source,
		credential: readCookie(r, res.credentialCookie),
	}
}

type requestSession struct {
	request    *http.Request
	source     IdentitySource
	credential string

	once     sync.Once
	identity *sessiondomain.Identity
}

func (s *requestSession) Credential() (string, bool) {
	return s.credential, s.credential != ""
}

func (s *requestSession) Identity(ctx context.Context) (*sessiondomain.Identity, bool) {
	s.once.Do(func() {
		if s.source == nil {
			return
		}
		identity, err := s.source.Lookup(ctx, s.request, s.credential)
		if err != nil {
			logLookupFailure(ctx, err)
			return
		}
		if identity == nil {
			logger.DebugContext(ctx, "no identity for request",
				slog.Bool("credential_present", s.credential != ""),
			)
			return
		}
		s.identity = identity
	})
	return s.identity, s.identity != nil
}

func logLookupFailure(ctx context.Context, err error) {
	if errors.Is(err, sessiondomain.ErrMalformedIdentity) || errors.Is(err, sessiondomain.ErrEmptyIdentity) {
		logger.WarnContext(ctx, "discarding unusable identity record", slog.String("error", err.Error()))
		return
	}
	logger.ErrorContext(ctx, "identity lookup failed", slog.String("error", err.Error()))
}

// readCookie returns the trimmed cookie value, or "" when absent.
func readCookie(r *http.Request, name string) string {
	if r == nil || name == "" {
		return ""
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}
