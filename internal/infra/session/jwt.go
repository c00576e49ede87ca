package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sessiondomain "github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/golang-jwt/jwt/v5"
)

// JWTSource derives the identity from the verified claims of the credential itself.
type JWTSource struct {
	Secret    []byte
	RoleClaim string
}

func (s JWTSource) Lookup(_ context.Context, _ *http.Request, credential string) (*sessiondomain.Identity, error) {
	if credential == "" {
		return nil, nil
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(credential, claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sessiondomain.ErrMalformedIdentity, err)
	}

	roleClaim := s.RoleClaim
	if roleClaim == "" {
		roleClaim = "role"
	}

	identity := &sessiondomain.Identity{
		ID:    claimString(claims, "sub"),
		Role:  claimString(claims, roleClaim),
		Email: claimString(claims, "email"),
		Name:  claimString(claims, "name"),
	}
	if identity.ID == "" {
		identity.ID = claimString(claims, "id")
	}
	return identity, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	v, ok := claims[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
