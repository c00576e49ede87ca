package session_test

import (
	"context"
	"testing"

	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantErr  error
		wantID   string
		wantRole string
	}{
		{name: "manager", raw: `{"id":"1","role":"MANAGER"}`, wantID: "1", wantRole: "MANAGER"},
		{name: "numeric id", raw: `{"id":42,"role":"ADMIN","email":"a@b.c"}`, wantID: "42", wantRole: "ADMIN"},
		{name: "missing role", raw: `{"id":"3"}`, wantID: "3"},
		{name: "non string role", raw: `{"id":"4","role":["ADMIN"]}`, wantID: "4"},
		{name: "empty", raw: "  ", wantErr: session.ErrEmptyIdentity},
		{name: "null", raw: "null", wantErr: session.ErrEmptyIdentity},
		{name: "not json", raw: "not-json", wantErr: session.ErrMalformedIdentity},
		{name: "array", raw: `[{"role":"ADMIN"}]`, wantErr: session.ErrMalformedIdentity},
		{name: "json string", raw: `"ADMIN"`, wantErr: session.ErrMalformedIdentity},
		{name: "truncated", raw: `{"id":"1","role":"MAN`, wantErr: session.ErrMalformedIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := session.ParseIdentity(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantRole, got.Role)
			assert.Equal(t, tt.wantRole != "", got.HasRole())
		})
	}
}

func TestStatic(t *testing.T) {
	anon := session.Static{}
	_, ok := anon.Credential()
	assert.False(t, ok)
	_, ok = anon.Identity(context.Background())
	assert.False(t, ok)

	sess := session.Static{Token: "abc123", Record: &session.Identity{ID: "1", Role: "ADMIN"}}
	token, ok := sess.Credential()
	require.True(t, ok)
	assert.Equal(t, "abc123", token)

	identity, ok := sess.Identity(context.Background())
	require.True(t, ok)
	assert.Equal(t, "ADMIN", identity.Role)
}
