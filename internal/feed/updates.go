// ABOUTME: In-memory fan-out broadcaster for render instructions
// ABOUTME: Publishes feed state changes to rendering collaborators without polling

package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// subscriberBufferSize is the channel buffer for each subscriber.
const subscriberBufferSize = 64

// UpdateKind identifies what part of the feed state an Update describes.
type UpdateKind string

const (
	// UpdateFeedReplaced carries the full post collection after a reload.
	UpdateFeedReplaced UpdateKind = "feed_replaced"
	// UpdatePostInserted carries exactly one newly created post, already
	// placed at the front of the collection.
	UpdatePostInserted UpdateKind = "post_inserted"
	// UpdateReaction carries a post whose reaction fields were replaced.
	UpdateReaction UpdateKind = "reaction"
	// UpdateThreadLoaded carries a post's full comment thread.
	UpdateThreadLoaded UpdateKind = "thread_loaded"
	// UpdateCommentAdded carries one appended comment plus the post's new
	// comment count.
	UpdateCommentAdded UpdateKind = "comment_added"
	// UpdateFilterChanged carries the newly selected category id (empty for
	// the whole feed) so renderers can move single-select highlighting.
	UpdateFilterChanged UpdateKind = "filter_changed"
)

// Update is a render instruction. It exposes plain data snapshots; rendering
// collaborators turn them into display output.
type Update struct {
	Kind       UpdateKind
	PostID     string
	CategoryID string
	Posts      []Post
	Post       *Post
	Comments   []Comment
	Comment    *Comment
}

// Broadcaster provides in-memory pub/sub for feed updates. Components
// publish render instructions as state changes land; rendering collaborators
// subscribe and consume them.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan Update
	logger      *slog.Logger
}

// NewBroadcaster creates a broadcaster. Pass nil logger for default.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subscribers: make(map[string]chan Update),
		logger:      logger.With("component", "broadcaster"),
	}
}

// Subscribe registers a subscriber for all feed updates. Returns a channel
// that receives updates and a subscription ID for later unsubscription. The
// subscription is automatically cleaned up when ctx is cancelled.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan Update, string) {
	subID := uuid.New().String()
	ch := make(chan Update, subscriberBufferSize)

	b.mu.Lock()
	b.subscribers[subID] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", subID)

	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Publish sends an update to all subscribers. Non-blocking: updates are
// dropped for subscribers whose channels are full.
func (b *Broadcaster) Publish(update Update) {
	b.mu.RLock()
	targets := make([]chan Update, 0, len(b.subscribers))
	for _, ch := range b.subscribers {
		targets = append(targets, ch)
	}
	b.mu.RUnlock()

	for _, ch := range targets {
		select {
		case ch <- update:
		default:
			b.logger.Debug("dropped update for slow subscriber",
				"kind", update.Kind,
				"post_id", update.PostID)
		}
	}
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[subID]
	if !ok {
		return
	}

	delete(b.subscribers, subID)
	close(ch)

	b.logger.Debug("subscriber removed", "sub_id", subID)
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subID, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, subID)
	}

	b.logger.Debug("broadcaster closed")
}
