// Package api is the HTTP client for the remote feed collaborator.
//
// # Overview
//
// One method per endpoint, grouped by concern:
//
//   - Register, Login, Logout, CheckAuth: session management. Login stores
//     the collaborator's session cookie in an in-memory jar; later
//     credentialed calls reuse it automatically.
//   - Categories, Posts, PostsByCategory: feed and category loads.
//   - CreatePost: multipart post creation with client-side validation.
//   - React: like/dislike, returning authoritative counts and viewer vote.
//   - Comments, CreateComment: thread fetch and comment creation.
//
// # Errors
//
// All failures land in the shared taxonomy from the feed package:
// ValidationError never reaches the network, AuthError covers 401/403, and
// FetchError covers transport failures and other non-2xx statuses. Failure
// bodies are parsed for {message}; an unparsable body yields a fixed
// fallback message. Every request runs under the configured client timeout.
package api
