package session_test

import (
	"context"
	"errors"
	"testing"

	sessionapp "github.com/astro-web3/dashboard-authgate/internal/app/session"
	"github.com/astro-web3/dashboard-authgate/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRevoker struct {
	revoked    []string
	revokeFunc func(ctx context.Context, credential string) error
}

func (m *mockRevoker) Revoke(ctx context.Context, credential string) error {
	m.revoked = append(m.revoked, credential)
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, credential)
	}
	return nil
}

func TestService_Terminate_RevokesCredential(t *testing.T) {
	revoker := &mockRevoker{}
	svc := sessionapp.NewService(revoker)

	err := svc.Terminate(context.Background(), session.Static{Token: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123"}, revoker.revoked)
}

func TestService_Terminate_Anonymous(t *testing.T) {
	revoker := &mockRevoker{}
	svc := sessionapp.NewService(revoker)

	require.NoError(t, svc.Terminate(context.Background(), session.Static{}))
	assert.Empty(t, revoker.revoked)
}

func TestService_Terminate_NilRevoker(t *testing.T) {
	svc := sessionapp.NewService(nil)
	assert.NoError(t, svc.Terminate(context.Background(), session.Static{Token: "abc123"}))
}

func TestService_Terminate_RevokeError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := sessionapp.NewService(&mockRevoker{
		revokeFunc: func(context.Context, string) error { return boom },
	})

	err := svc.Terminate(context.Background(), session.Static{Token: "abc123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
