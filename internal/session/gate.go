// ABOUTME: Session gate tracking authenticated state for feed initialization
// ABOUTME: Check failures are fail-closed; state mutates only on confirmed success

package session

import (
	"context"
	"log/slog"
	"sync"
)

// AuthClient is the remote auth collaborator.
type AuthClient interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) error
}

// Gate holds the session state. It starts unauthenticated; state is set by
// a successful check or login and cleared by logout or a failed check. Feed
// components initialize only once the gate authorizes them.
type Gate struct {
	mu            sync.Mutex
	authenticated bool
	username      string

	client AuthClient
	logger *slog.Logger
}

// NewGate creates a Gate over the given auth client. Pass nil logger for
// default.
func NewGate(client AuthClient, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		client: client,
		logger: logger.With("component", "session"),
	}
}

// CheckStatus refreshes the session state from the collaborator. It never
// returns an error: any failure, transport or auth, means not
// authenticated.
func (g *Gate) CheckStatus(ctx context.Context) bool {
	err := g.client.CheckAuth(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		g.logger.Debug("auth check failed", "error", err)
		g.authenticated = false
		return false
	}
	g.authenticated = true
	return true
}

// Register creates an account. Session state is unchanged; the caller logs
// in separately.
func (g *Gate) Register(ctx context.Context, username, password string) error {
	return g.client.Register(ctx, username, password)
}

// Login authenticates. State mutates only on confirmed success.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	if err := g.client.Login(ctx, username, password); err != nil {
		return err
	}

	g.mu.Lock()
	g.authenticated = true
	g.username = username
	g.mu.Unlock()

	g.logger.Info("logged in", "username", username)
	return nil
}

// Logout ends the session. State is cleared only on confirmed success.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.client.Logout(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	g.authenticated = false
	g.username = ""
	g.mu.Unlock()

	g.logger.Info("logged out")
	return nil
}

// Authenticated reports the current session state.
func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// Username returns the logged-in username, empty when unknown. It is used
// as the author of locally appended comments.
func (g *Gate) Username() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.username
}
