// ABOUTME: Authentication endpoints: register, login, logout, check-auth
// ABOUTME: Login success stores the collaborator's session cookie in the jar

package api

import (
	"context"
	"net/http"
)

// credentials is the JSON body for register and login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account. The response body carries nothing beyond
// its status.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.doJSON(ctx, "register", http.MethodPost, "/api/register",
		credentials{Username: username, Password: password}, nil)
}

// Login authenticates and stores the session cookie set by the
// collaborator.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.doJSON(ctx, "login", http.MethodPost, "/api/login",
		credentials{Username: username, Password: password}, nil)
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "logout", http.MethodPost, "/api/logout", nil, nil)
}

// CheckAuth verifies the current session. A nil return means
// authenticated; any error means not.
func (c *Client) CheckAuth(ctx context.Context) error {
	return c.doJSON(ctx, "check auth", http.MethodGet, "/api/check-auth", nil, nil)
}
