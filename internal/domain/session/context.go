package session

import (
	"context"
	"net/http"
)

// Context is the per-request view of the client session.
type Context interface {
	// Credential returns the bearer credential, if the request carries one.
	Credential() (string, bool)
	// Identity returns the decoded identity descriptor. Missing, malformed and
	// unreadable records all report false.
	Identity(ctx context.Context) (*Identity, bool)
}

// Resolver builds a Context for an inbound request.
type Resolver interface {
	Resolve(r *http.Request) Context
}

// Revoker drops any server-side state bound to a credential.
type Revoker interface {
	Revoke(ctx context.Context, credential string) error
}

// Static is a fixed Context, used where no request is available.
type Static struct {
	Token  string
	Record *Identity
}

func (s Static) Credential() (string, bool) {
	return s.Token, s.Token != ""
}

func (s Static) Identity(context.Context) (*Identity, bool) {
	return s.Record, s.Record != nil
}
