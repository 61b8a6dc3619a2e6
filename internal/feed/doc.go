// Package feed implements the client-side reconciliation core for a remote
// social feed: an ordered in-memory post collection kept consistent with the
// collaborator across repeated partial updates.
//
// # Overview
//
// The package holds four cooperating components plus a render-instruction
// broadcaster:
//
//   - Store: the ordered post collection. Full reloads replace it wholesale,
//     InsertCreated prepends, reaction and comment-count patches mutate
//     single posts in place. Reloads carry monotonic tokens so only the
//     latest request's result lands.
//   - Reconciler: confirm-only like/dislike reconciliation. The collaborator
//     is the source of truth; each response replaces a post's reaction
//     fields wholesale.
//   - Threads: lazy per-post comment threads, fetched once on first reveal
//     and cached. Submitted comments are appended locally using the
//     returned total, avoiding a redundant re-fetch.
//   - Filter: single-select category state that re-queries the store's
//     source whenever the selection changes.
//
// # Rendering
//
// Components expose plain data, never markup. State changes are published
// as Update values through the Broadcaster; rendering collaborators
// subscribe and turn snapshots into display output.
//
// # Concurrency
//
// All components are safe for concurrent use. Remote calls are the only
// suspension points; in-flight reaction requests for the same post are not
// serialized, so the last response to complete wins.
package feed
