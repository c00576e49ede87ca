package gate

import (
	"context"

	gatedomain "github.com/astro-web3/dashboard-authgate/internal/domain/gate"
	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/astro-web3/dashboard-authgate/pkg/tracer"
	"go.opentelemetry.io/otel/attribute"
)

type Service interface {
	Authorize(ctx context.Context, sess session.Context) *gatedomain.Decision
}

type service struct {
	domainService gatedomain.Service
}

func NewService(domainService gatedomain.Service) Service {
	return &service{domainService: domainService}
}

func (s *service) Authorize(ctx context.Context, sess session.Context) *gatedomain.Decision {
	ctx, span := tracer.Start(ctx, "app.gate.Authorize")
	defer span.End()

	identity, ok := sess.Identity(ctx)
	span.SetAttributes(attribute.Bool("gate.identity_present", ok))
	if !ok {
		identity = nil
	}

	decision := s.domainService.Evaluate(identity)

	span.SetAttributes(attribute.Bool("gate.allowed", decision.Allow))
	if decision.Role != "" {
		span.SetAttributes(attribute.String("gate.role", decision.Role))
	}
	if !decision.Allow {
		span.SetAttributes(attribute.String("gate.reason", decision.Reason))
	}

	return decision
}
