// ABOUTME: Confirm-only like/dislike reconciliation against the collaborator
// ABOUTME: Applies authoritative reaction responses wholesale, last completion wins

package feed

import (
	"context"
	"fmt"
	"log/slog"
)

// Reactor sends a reaction request and returns the collaborator's
// authoritative reaction state for the post.
type Reactor interface {
	React(ctx context.Context, postID string, kind Vote) (Reaction, error)
}

// Reconciler applies viewer reactions. The model is confirm-only: local
// state is not touched until the collaborator responds, so no rollback path
// exists. Mutual exclusivity of like and dislike is enforced server-side;
// the reconciler only replaces fields with whatever the response states.
//
// A second React call for the same post before the first resolves is
// permitted. Responses are applied in completion order, so the last response
// to complete wins; an out-of-order stale response can overwrite a newer
// one. Reaction responses are deliberately not tokenized.
type Reconciler struct {
	store  *Store
	api    Reactor
	logger *slog.Logger
}

// NewReconciler creates a Reconciler. Pass nil logger for default.
func NewReconciler(store *Store, api Reactor, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		store:  store,
		api:    api,
		logger: logger.With("component", "reactions"),
	}
}

// React sends a like or dislike for the given post and reconciles the
// post's reaction fields with the response. On failure the post is left
// unchanged; there is no automatic retry.
func (r *Reconciler) React(ctx context.Context, postID string, kind Vote) error {
	if kind != VoteLike && kind != VoteDislike {
		return &ValidationError{Reason: fmt.Sprintf("unknown reaction kind %q", kind)}
	}
	if !r.store.Contains(postID) {
		return fmt.Errorf("react %s: %w", postID, ErrPostNotFound)
	}

	reaction, err := r.api.React(ctx, postID, kind)
	if err != nil {
		r.logger.Warn("reaction failed", "post_id", postID, "kind", kind, "error", err)
		return err
	}

	if err := r.store.ApplyReaction(postID, reaction); err != nil {
		// Post vanished via a reload while the request was in flight.
		r.logger.Debug("reaction response for missing post", "post_id", postID)
		return err
	}

	r.logger.Debug("reaction applied",
		"post_id", postID,
		"likes", reaction.Likes,
		"dislikes", reaction.Dislikes,
		"viewer_vote", reaction.ViewerVote)
	return nil
}
