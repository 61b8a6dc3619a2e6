// ABOUTME: Error taxonomy shared by the feed core and its collaborator client
// ABOUTME: Defines ValidationError, FetchError, AuthError and domain sentinels

package feed

import (
	"errors"
	"fmt"
)

// ErrPostNotFound is returned when an operation references a post id that is
// not present in the Store.
var ErrPostNotFound = errors.New("post not found")

// ErrStaleLoad is returned when a completed feed load was superseded by a
// newer one and its result was discarded. Callers may treat it as benign.
var ErrStaleLoad = errors.New("stale load discarded")

// ValidationError is a client-side failure: the offending request is never
// sent to the collaborator.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// FetchError is a transport failure or a non-success response from the
// collaborator. Message carries the collaborator's {message} body when it
// was parsable, otherwise a fixed fallback.
type FetchError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AuthError is a 401/403-equivalent response. It is treated as "not
// authenticated" and drives the session gate to the logged-out state.
type AuthError struct {
	Op     string
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: not authenticated (status %d)", e.Op, e.Status)
}

// IsAuth reports whether err is an AuthError anywhere in its chain.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
