// ABOUTME: Tests for the session gate's fail-closed state transitions
// ABOUTME: State mutates only on confirmed remote success

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthClient scripts per-operation outcomes.
type fakeAuthClient struct {
	registerErr error
	loginErr    error
	logoutErr   error
	checkErr    error
}

func (f *fakeAuthClient) Register(ctx context.Context, username, password string) error {
	return f.registerErr
}

func (f *fakeAuthClient) Login(ctx context.Context, username, password string) error {
	return f.loginErr
}

func (f *fakeAuthClient) Logout(ctx context.Context) error {
	return f.logoutErr
}

func (f *fakeAuthClient) CheckAuth(ctx context.Context) error {
	return f.checkErr
}

func TestGate_StartsUnauthenticated(t *testing.T) {
	g := NewGate(&fakeAuthClient{}, nil)
	assert.False(t, g.Authenticated())
}

func TestGate_CheckStatus_Success(t *testing.T) {
	g := NewGate(&fakeAuthClient{}, nil)
	assert.True(t, g.CheckStatus(testContext(t)))
	assert.True(t, g.Authenticated())
}

func TestGate_CheckStatus_FailClosed(t *testing.T) {
	client := &fakeAuthClient{}
	g := NewGate(client, nil)
	require.NoError(t, g.Login(testContext(t), "alice", "secret"))

	// Any failure, transport or auth, means not authenticated.
	client.checkErr = errors.New("connection refused")
	assert.False(t, g.CheckStatus(testContext(t)))
	assert.False(t, g.Authenticated())
}

func TestGate_Login_SetsStateOnSuccess(t *testing.T) {
	g := NewGate(&fakeAuthClient{}, nil)
	require.NoError(t, g.Login(testContext(t), "alice", "secret"))
	assert.True(t, g.Authenticated())
	assert.Equal(t, "alice", g.Username())
}

func TestGate_Login_FailureLeavesStateUnchanged(t *testing.T) {
	g := NewGate(&fakeAuthClient{loginErr: errors.New("bad credentials")}, nil)
	require.Error(t, g.Login(testContext(t), "alice", "wrong"))
	assert.False(t, g.Authenticated())
	assert.Empty(t, g.Username())
}

func TestGate_Logout_ClearsStateOnSuccess(t *testing.T) {
	g := NewGate(&fakeAuthClient{}, nil)
	require.NoError(t, g.Login(testContext(t), "alice", "secret"))

	require.NoError(t, g.Logout(testContext(t)))
	assert.False(t, g.Authenticated())
	assert.Empty(t, g.Username())
}

func TestGate_Logout_FailureLeavesStateUnchanged(t *testing.T) {
	client := &fakeAuthClient{}
	g := NewGate(client, nil)
	require.NoError(t, g.Login(testContext(t), "alice", "secret"))

	client.logoutErr = errors.New("boom")
	require.Error(t, g.Logout(testContext(t)))
	assert.True(t, g.Authenticated())
	assert.Equal(t, "alice", g.Username())
}

func TestGate_Register_DoesNotChangeState(t *testing.T) {
	g := NewGate(&fakeAuthClient{}, nil)
	require.NoError(t, g.Register(testContext(t), "alice", "secret"))
	assert.False(t, g.Authenticated())
}
