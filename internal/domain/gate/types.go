package gate

// Reasons attached to denied decisions. They are meant for logs and traces,
// never for response bodies.
const (
	ReasonMissingIdentity   = "missing_identity"
	ReasonMissingRole       = "missing_role"
	ReasonRoleNotAuthorized = "role_not_authorized"
)

// Decision is the outcome of evaluating one request against the role gate.
type Decision struct {
	Allow  bool
	Role   string
	Reason string
}

// RoleSet is an immutable set of role identifiers. Membership is case-sensitive.
type RoleSet struct {
	roles map[string]struct{}
}

func NewRoleSet(roles ...string) RoleSet {
	set := RoleSet{roles: make(map[string]struct{}, len(roles))}
	for _, role := range roles {
		if role != "" {
			set.roles[role] = struct{}{}
		}
	}
	return set
}

func (s RoleSet) Contains(role string) bool {
	if role == "" {
		return false
	}
	_, ok := s.roles[role]
	return ok
}

func (s RoleSet) Len() int {
	return len(s.roles)
}
