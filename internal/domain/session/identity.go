package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyIdentity     = errors.New("identity record is empty")
	ErrMalformedIdentity = errors.New("identity record is malformed")
)

// Identity is the descriptor of the current user as stored by the login flow.
type Identity struct {
	ID    string
	Role  string
	Email string
	Name  string
}

// HasRole reports whether the record carries a usable role claim.
func (i *Identity) HasRole() bool {
	return i != nil && i.Role != ""
}

// ParseIdentity decodes a JSON identity record. It never panics; any input that
// is not a JSON object yields an error and a nil identity.
func ParseIdentity(raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyIdentity
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedIdentity, err)
	}
	if fields == nil {
		return nil, ErrEmptyIdentity
	}

	return &Identity{
		ID:    scalar(fields["id"]),
		Role:  text(fields["role"]),
		Email: text(fields["email"]),
		Name:  text(fields["name"]),
	}, nil
}

// text returns the value only when it is a JSON string.
func text(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// scalar accepts ids stored either as strings or as numbers.
func scalar(raw json.RawMessage) string {
	if s := text(raw); s != "" {
		return s
	}
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return ""
	}
	return n.String()
}
