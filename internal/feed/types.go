// ABOUTME: Domain types for the feed reconciliation core
// ABOUTME: Defines Post, Comment, Category, Vote and Reaction structs

package feed

import "time"

// Vote is the viewer's reaction state on a post. Like and dislike are
// mutually exclusive per viewer per post; exclusivity is enforced by the
// remote collaborator.
type Vote string

const (
	VoteNone    Vote = "none"
	VoteLike    Vote = "like"
	VoteDislike Vote = "dislike"
)

// Post is a single feed entry. Posts are owned by the Store and mutated
// only through reconciliation operations or a full reload. ViewerVote is
// derived state: it always equals the vote implied by the last reaction
// reconciliation (or reload) for this post.
type Post struct {
	ID           string
	Author       string
	Content      string
	ImagePath    string
	CreatedAt    time.Time
	Categories   []string
	Likes        int
	Dislikes     int
	CommentCount int
	ViewerVote   Vote
}

// Comment is a single entry in a post's thread. Comments are immutable
// once created; this core appends, never edits or removes.
type Comment struct {
	Author    string
	Content   string
	CreatedAt time.Time
}

// Category is one entry of the collaborator's category list.
type Category struct {
	ID   string
	Name string
}

// Reaction is the authoritative reaction state returned by the collaborator
// after a react request. It replaces a post's reaction fields wholesale.
type Reaction struct {
	Likes      int
	Dislikes   int
	ViewerVote Vote
}
