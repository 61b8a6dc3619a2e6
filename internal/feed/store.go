// ABOUTME: In-memory ordered post collection with reload and patch operations
// ABOUTME: Tracks monotonic load tokens so only the latest reload result lands

package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Source fetches post collections from the remote collaborator. The Store
// trusts the source's ordering and never re-sorts locally.
type Source interface {
	Posts(ctx context.Context) ([]Post, error)
	PostsByCategory(ctx context.Context, categoryID string) ([]Post, error)
}

// Store holds the ordered post collection. Posts are kept in the order the
// source delivered them (descending creation time). The collection is
// replaced wholesale by reloads, grown by InsertCreated, and patched in
// place by reaction and comment-count updates.
//
// Every reload carries a monotonically increasing token. A reload whose
// token has been superseded by a newer one is discarded on completion, which
// gives last-request-wins ordering even when responses arrive out of order.
// Whole-feed and category-scoped reloads share one token sequence because
// they compete for the same collection.
type Store struct {
	mu    sync.Mutex
	posts []Post
	seq   uint64

	source  Source
	updates *Broadcaster
	logger  *slog.Logger
}

// NewStore creates a Store backed by the given source. Pass nil logger for
// default.
func NewStore(source Source, updates *Broadcaster, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		source:  source,
		updates: updates,
		logger:  logger.With("component", "store"),
	}
}

// Reload replaces the entire collection with the collaborator's current
// whole-feed view. On failure the previous collection is left untouched and
// the error is returned for display with a retry affordance. A reload
// superseded by a newer one returns ErrStaleLoad and changes nothing.
func (s *Store) Reload(ctx context.Context) error {
	return s.load(ctx, "reload", func(ctx context.Context) ([]Post, error) {
		return s.source.Posts(ctx)
	})
}

// ReloadByCategory is Reload scoped to a single category.
func (s *Store) ReloadByCategory(ctx context.Context, categoryID string) error {
	op := fmt.Sprintf("reload category %s", categoryID)
	return s.load(ctx, op, func(ctx context.Context) ([]Post, error) {
		return s.source.PostsByCategory(ctx, categoryID)
	})
}

func (s *Store) load(ctx context.Context, op string, fetch func(context.Context) ([]Post, error)) error {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.mu.Unlock()

	posts, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		s.logger.Debug("discarding superseded load",
			"op", op,
			"token", token,
			"latest", s.seq)
		return ErrStaleLoad
	}
	if err != nil {
		s.logger.Warn("load failed, keeping previous collection", "op", op, "error", err)
		return err
	}

	s.posts = posts
	s.publishLocked(Update{Kind: UpdateFeedReplaced, Posts: s.snapshotLocked()})
	return nil
}

// InsertCreated prepends a newly created post. The new post is assumed to be
// newest and is placed first regardless of its timestamp relative to
// existing entries. Exactly one render instruction is emitted, for the new
// post only, never a full-feed refresh.
func (s *Store) InsertCreated(post Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append([]Post{post}, s.posts...)
	p := post
	s.publishLocked(Update{Kind: UpdatePostInserted, PostID: post.ID, Post: &p})
}

// Posts returns a copy of the current ordered collection.
func (s *Store) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the post with the given id, if present.
func (s *Store) Get(postID string) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID == postID {
			return p, true
		}
	}
	return Post{}, false
}

// Contains reports whether a post with the given id is in the collection.
func (s *Store) Contains(postID string) bool {
	_, ok := s.Get(postID)
	return ok
}

// ApplyReaction replaces a post's reaction fields wholesale with the
// collaborator's authoritative state. Counts and viewer vote are never
// adjusted incrementally; each response replaces all three fields, so a
// single like response can legally flip a prior dislike to none plus like.
func (s *Store) ApplyReaction(postID string, r Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(postID)
	if i < 0 {
		return ErrPostNotFound
	}

	s.posts[i].Likes = r.Likes
	s.posts[i].Dislikes = r.Dislikes
	s.posts[i].ViewerVote = r.ViewerVote

	p := s.posts[i]
	s.publishLocked(Update{Kind: UpdateReaction, PostID: postID, Post: &p})
	return nil
}

// ApplyCommentCount sets a post's comment count to the collaborator's new
// total. The caller is responsible for emitting the matching render
// instruction (it usually carries the appended comment as well).
func (s *Store) ApplyCommentCount(postID string, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(postID)
	if i < 0 {
		return ErrPostNotFound
	}

	s.posts[i].CommentCount = total
	return nil
}

func (s *Store) indexLocked(postID string) int {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []Post {
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *Store) publishLocked(update Update) {
	if s.updates != nil {
		s.updates.Publish(update)
	}
}
