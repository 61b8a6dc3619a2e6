// Package session tracks whether the viewer is authenticated and gates feed
// initialization on it. Failures are fail-closed: a check that errors for
// any reason leaves the gate logged out.
package session
