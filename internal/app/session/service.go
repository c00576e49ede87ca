package session

import (
	"context"
	"fmt"

	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/astro-web3/dashboard-authgate/pkg/logger"
	"github.com/astro-web3/dashboard-authgate/pkg/tracer"
	"go.opentelemetry.io/otel/attribute"
)

// Service terminates sessions on explicit user request.
type Service interface {
	Terminate(ctx context.Context, sess session.Context) error
}

type service struct {
	revoker session.Revoker
}

// NewService accepts a nil revoker when no server-side session state exists.
func NewService(revoker session.Revoker) Service {
	return &service{revoker: revoker}
}

func (s *service) Terminate(ctx context.Context, sess session.Context) error {
	ctx, span := tracer.Start(ctx, "app.session.Terminate")
	defer span.End()

	credential, ok := sess.Credential()
	span.SetAttributes(attribute.Bool("session.credential_present", ok))
	if !ok || s.revoker == nil {
		return nil
	}

	if err := s.revoker.Revoke(ctx, credential); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	logger.InfoContext(ctx, "session revoked", logger.Masked("credential", credential))
	return nil
}
