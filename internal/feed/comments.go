// ABOUTME: Lazy per-post comment thread loading, caching and submission
// ABOUTME: Threads load once on first reveal; submits append locally using the new total

package feed

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// defaultMaxThreads bounds the thread cache. Threads are never proactively
// destroyed, but a full cache evicts its oldest entry to stay bounded.
const defaultMaxThreads = 256

// ThreadSource fetches and creates comments for a post. CreateComment
// returns the post's new total comment count.
type ThreadSource interface {
	Comments(ctx context.Context, postID string) ([]Comment, error)
	CreateComment(ctx context.Context, postID, content string) (int, error)
}

// Viewer identifies the authenticated user, used as the author of locally
// appended comments.
type Viewer interface {
	Username() string
}

// thread is one cached comment thread. The element field keeps its position
// in the cache's insertion-order list for O(1) eviction.
type thread struct {
	comments []Comment
	loaded   bool
	element  *list.Element
}

// Threads is the comment panel controller. Threads are keyed by post id and
// hold only a weak reference to the post: a reload that drops the post does
// not cascade here, the entry stays until explicitly evicted or aged out of
// the bounded cache.
type Threads struct {
	mu      sync.Mutex
	threads map[string]*thread
	order   *list.List // post ids in insertion order (oldest at front)
	maxSize int

	store   *Store
	source  ThreadSource
	viewer  Viewer
	updates *Broadcaster
	logger  *slog.Logger
	now     func() time.Time
}

// NewThreads creates the comment controller. Pass nil logger for default.
func NewThreads(store *Store, source ThreadSource, viewer Viewer, updates *Broadcaster, logger *slog.Logger) *Threads {
	if logger == nil {
		logger = slog.Default()
	}
	return &Threads{
		threads: make(map[string]*thread),
		order:   list.New(),
		maxSize: defaultMaxThreads,
		store:   store,
		source:  source,
		viewer:  viewer,
		updates: updates,
		logger:  logger.With("component", "comments"),
		now:     time.Now,
	}
}

// Reveal makes a post's thread available for display. The first reveal
// fetches and caches the thread; later reveals are served from cache and
// issue no network call. A failed fetch leaves the thread unloaded so a
// later reveal retries.
func (t *Threads) Reveal(ctx context.Context, postID string) error {
	t.mu.Lock()
	if th, ok := t.threads[postID]; ok && th.loaded {
		comments := append([]Comment(nil), th.comments...)
		t.mu.Unlock()
		t.publish(Update{Kind: UpdateThreadLoaded, PostID: postID, Comments: comments})
		return nil
	}
	t.mu.Unlock()

	comments, err := t.source.Comments(ctx, postID)
	if err != nil {
		t.logger.Warn("thread load failed", "post_id", postID, "error", err)
		return err
	}

	t.mu.Lock()
	th := t.getOrCreateLocked(postID)
	th.comments = comments
	th.loaded = true
	snapshot := append([]Comment(nil), comments...)
	t.mu.Unlock()

	t.publish(Update{Kind: UpdateThreadLoaded, PostID: postID, Comments: snapshot})
	return nil
}

// Submit creates a comment on a post. Content must be non-empty after
// trimming; the empty case is a validation failure and no request is sent.
// On success the post's comment count becomes the collaborator's returned
// total and, if the thread is cached, the submitted comment is appended
// locally instead of re-fetching the thread.
func (t *Threads) Submit(ctx context.Context, postID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return &ValidationError{Reason: "comment content cannot be empty"}
	}
	if !t.store.Contains(postID) {
		return fmt.Errorf("submit comment %s: %w", postID, ErrPostNotFound)
	}

	total, err := t.source.CreateComment(ctx, postID, content)
	if err != nil {
		t.logger.Warn("comment submit failed", "post_id", postID, "error", err)
		return err
	}

	if err := t.store.ApplyCommentCount(postID, total); err != nil {
		t.logger.Debug("comment count for missing post", "post_id", postID)
	}

	author := ""
	if t.viewer != nil {
		author = t.viewer.Username()
	}
	comment := Comment{
		Author:    author,
		Content:   content,
		CreatedAt: t.now(),
	}

	t.mu.Lock()
	if th, ok := t.threads[postID]; ok && th.loaded {
		th.comments = append(th.comments, comment)
	}
	t.mu.Unlock()

	c := comment
	t.publish(Update{Kind: UpdateCommentAdded, PostID: postID, Comment: &c})
	return nil
}

// Comments returns a copy of the cached thread for a post and whether it
// has been loaded.
func (t *Threads) Comments(postID string) ([]Comment, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	th, ok := t.threads[postID]
	if !ok || !th.loaded {
		return nil, false
	}
	return append([]Comment(nil), th.comments...), true
}

// Evict drops the cached thread for a post. The next reveal re-fetches.
func (t *Threads) Evict(postID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	th, ok := t.threads[postID]
	if !ok {
		return
	}
	t.order.Remove(th.element)
	delete(t.threads, postID)
}

// getOrCreateLocked returns the thread entry for a post, creating it and
// evicting the oldest entry when the cache is at capacity. Must be called
// with mu held.
func (t *Threads) getOrCreateLocked(postID string) *thread {
	if th, ok := t.threads[postID]; ok {
		return th
	}

	if len(t.threads) >= t.maxSize {
		t.evictOldestLocked()
	}

	th := &thread{element: t.order.PushBack(postID)}
	t.threads[postID] = th
	return th
}

// evictOldestLocked removes the oldest cache entry. Must be called with mu
// held. O(1) via the insertion-order list.
func (t *Threads) evictOldestLocked() {
	front := t.order.Front()
	if front == nil {
		return
	}

	postID, _ := front.Value.(string)
	t.order.Remove(front)
	delete(t.threads, postID)
	t.logger.Debug("evicted oldest thread", "post_id", postID)
}

func (t *Threads) publish(update Update) {
	if t.updates != nil {
		t.updates.Publish(update)
	}
}
