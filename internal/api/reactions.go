// ABOUTME: Reaction endpoint: posts a like or dislike and returns the new state
// ABOUTME: The response's userVote encoding (1/-1/0) maps onto the domain Vote

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/2389/feedsync/internal/feed"
)

// reactionRequest is the JSON body for a react call.
type reactionRequest struct {
	Type string `json:"type"` // "like" or "dislike"
}

// reactionDTO is the collaborator's authoritative reaction state.
type reactionDTO struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
	UserVote int `json:"userVote"` // 1 like, -1 dislike, 0 none
}

// React submits a reaction and returns the post's authoritative counts and
// viewer vote.
func (c *Client) React(ctx context.Context, postID string, kind feed.Vote) (feed.Reaction, error) {
	op := fmt.Sprintf("react to post %s", postID)
	path := "/api/posts/" + url.PathEscape(postID) + "/react"

	var dto reactionDTO
	err := c.doJSON(ctx, op, http.MethodPost, path, reactionRequest{Type: string(kind)}, &dto)
	if err != nil {
		return feed.Reaction{}, err
	}

	return feed.Reaction{
		Likes:      dto.Likes,
		Dislikes:   dto.Dislikes,
		ViewerVote: voteFromInt(dto.UserVote),
	}, nil
}
