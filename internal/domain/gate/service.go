package gate

import (
	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
)

type Service interface {
	Evaluate(identity *session.Identity) *Decision
}

type service struct {
	authorized RoleSet
}

func NewService(authorized RoleSet) Service {
	return &service{authorized: authorized}
}

// Evaluate allows the request only when an identity with an authorized role is present.
func (s *service) Evaluate(identity *session.Identity) *Decision {
	if identity == nil {
		return &Decision{Allow: false, Reason: ReasonMissingIdentity}
	}
	if !identity.HasRole() {
		return &Decision{Allow: false, Reason: ReasonMissingRole}
	}
	if !s.authorized.Contains(identity.Role) {
		return &Decision{Allow: false, Role: identity.Role, Reason: ReasonRoleNotAuthorized}
	}
	return &Decision{Allow: true, Role: identity.Role}
}
