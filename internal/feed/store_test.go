// ABOUTME: Tests for the Store's reload, insert and patch operations
// ABOUTME: Covers source-order preservation, failure isolation and load tokens

package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePost(id string, createdAt time.Time) Post {
	return Post{
		ID:         id,
		Author:     "alice",
		Content:    "content of " + id,
		CreatedAt:  createdAt,
		ViewerVote: VoteNone,
	}
}

// stubSource serves canned post collections and records calls.
type stubSource struct {
	mu            sync.Mutex
	posts         []Post
	byCategory    map[string][]Post
	err           error
	postsCalls    int
	categoryCalls []string
}

func (s *stubSource) Posts(ctx context.Context) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postsCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.posts, nil
}

func (s *stubSource) PostsByCategory(ctx context.Context, categoryID string) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryCalls = append(s.categoryCalls, categoryID)
	if s.err != nil {
		return nil, s.err
	}
	return s.byCategory[categoryID], nil
}

func TestStore_Reload_PreservesSourceOrder(t *testing.T) {
	now := time.Now()
	// Deliberately not in descending time order: the store must trust the
	// source and never re-sort.
	src := &stubSource{posts: []Post{
		makePost("2", now.Add(-time.Hour)),
		makePost("1", now),
		makePost("3", now.Add(-2*time.Hour)),
	}}
	s := NewStore(src, nil, nil)

	require.NoError(t, s.Reload(testContext(t)))

	posts := s.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, "2", posts[0].ID)
	assert.Equal(t, "1", posts[1].ID)
	assert.Equal(t, "3", posts[2].ID)
}

func TestStore_Reload_FailureKeepsPreviousCollection(t *testing.T) {
	src := &stubSource{posts: []Post{makePost("1", time.Now())}}
	s := NewStore(src, nil, nil)
	require.NoError(t, s.Reload(testContext(t)))

	src.mu.Lock()
	src.err = errors.New("boom")
	src.mu.Unlock()

	err := s.Reload(testContext(t))
	require.Error(t, err)

	posts := s.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "1", posts[0].ID)
}

func TestStore_Reload_EmitsFeedReplaced(t *testing.T) {
	b := NewBroadcaster(nil)
	defer b.Close()
	ch, _ := b.Subscribe(testContext(t))

	src := &stubSource{posts: []Post{makePost("1", time.Now())}}
	s := NewStore(src, b, nil)
	require.NoError(t, s.Reload(testContext(t)))

	select {
	case u := <-ch:
		assert.Equal(t, UpdateFeedReplaced, u.Kind)
		require.Len(t, u.Posts, 1)
		assert.Equal(t, "1", u.Posts[0].ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}
}

func TestStore_InsertCreated_AlwaysFirst(t *testing.T) {
	now := time.Now()
	src := &stubSource{posts: []Post{makePost("1", now)}}
	s := NewStore(src, nil, nil)
	require.NoError(t, s.Reload(testContext(t)))

	// Older than everything already in the feed; still goes first.
	s.InsertCreated(makePost("new", now.Add(-24*time.Hour)))

	posts := s.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].ID)
}

func TestStore_InsertCreated_EmitsSinglePostUpdate(t *testing.T) {
	b := NewBroadcaster(nil)
	defer b.Close()
	ch, _ := b.Subscribe(testContext(t))

	s := NewStore(&stubSource{}, b, nil)
	s.InsertCreated(makePost("new", time.Now()))

	select {
	case u := <-ch:
		assert.Equal(t, UpdatePostInserted, u.Kind)
		assert.Equal(t, "new", u.PostID)
		require.NotNil(t, u.Post)
		assert.Nil(t, u.Posts, "insert must not carry the whole feed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}
}

func TestStore_ApplyReaction_ReplacesFieldsWholesale(t *testing.T) {
	src := &stubSource{posts: []Post{{ID: "1", Likes: 3, Dislikes: 2, ViewerVote: VoteDislike}}}
	s := NewStore(src, nil, nil)
	require.NoError(t, s.Reload(testContext(t)))

	// A like response can legally flip a prior dislike in one step.
	require.NoError(t, s.ApplyReaction("1", Reaction{Likes: 4, Dislikes: 1, ViewerVote: VoteLike}))

	p, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, 4, p.Likes)
	assert.Equal(t, 1, p.Dislikes)
	assert.Equal(t, VoteLike, p.ViewerVote)
}

func TestStore_ApplyReaction_UnknownPost(t *testing.T) {
	s := NewStore(&stubSource{}, nil, nil)
	err := s.ApplyReaction("ghost", Reaction{})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestStore_ApplyCommentCount(t *testing.T) {
	src := &stubSource{posts: []Post{{ID: "5", CommentCount: 6}}}
	s := NewStore(src, nil, nil)
	require.NoError(t, s.Reload(testContext(t)))

	require.NoError(t, s.ApplyCommentCount("5", 7))

	p, _ := s.Get("5")
	assert.Equal(t, 7, p.CommentCount)
}

// asyncSource lets the test decide when each in-flight load completes, to
// exercise out-of-order responses.
type asyncSource struct {
	requests chan loadRequest
}

type loadRequest struct {
	category string
	reply    chan loadResult
}

type loadResult struct {
	posts []Post
	err   error
}

func (s *asyncSource) Posts(ctx context.Context) ([]Post, error) {
	return s.wait(ctx, "")
}

func (s *asyncSource) PostsByCategory(ctx context.Context, categoryID string) ([]Post, error) {
	return s.wait(ctx, categoryID)
}

func (s *asyncSource) wait(ctx context.Context, category string) ([]Post, error) {
	req := loadRequest{category: category, reply: make(chan loadResult)}
	s.requests <- req
	select {
	case res := <-req.reply:
		return res.posts, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestStore_Load_SupersededResponseDiscarded(t *testing.T) {
	src := &asyncSource{requests: make(chan loadRequest)}
	s := NewStore(src, nil, nil)

	catErr := make(chan error, 1)
	go func() { catErr <- s.ReloadByCategory(testContext(t), "tech") }()
	catReq := <-src.requests
	require.Equal(t, "tech", catReq.category)

	allErr := make(chan error, 1)
	go func() { allErr <- s.Reload(testContext(t)) }()
	allReq := <-src.requests

	// The later whole-feed request completes first; its result must land.
	allReq.reply <- loadResult{posts: []Post{makePost("all-1", time.Now())}}
	require.NoError(t, <-allErr)

	// The earlier category-scoped response arrives late and is discarded.
	catReq.reply <- loadResult{posts: []Post{makePost("tech-1", time.Now())}}
	assert.ErrorIs(t, <-catErr, ErrStaleLoad)

	posts := s.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "all-1", posts[0].ID)
}
