// ABOUTME: Comment endpoints: thread fetch and comment creation
// ABOUTME: Creation returns the post's new total comment count, not the comment

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/2389/feedsync/internal/feed"
)

type commentDTO struct {
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comments returns a post's thread in the collaborator's order.
func (c *Client) Comments(ctx context.Context, postID string) ([]feed.Comment, error) {
	op := fmt.Sprintf("load comments for post %s", postID)
	path := "/api/posts/" + url.PathEscape(postID) + "/comments"

	var dtos []commentDTO
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}

	comments := make([]feed.Comment, len(dtos))
	for i, d := range dtos {
		comments[i] = feed.Comment{
			Author:    d.Username,
			Content:   d.Content,
			CreatedAt: d.CreatedAt,
		}
	}
	return comments, nil
}

// CreateComment posts a comment and returns the post's updated total
// comment count.
func (c *Client) CreateComment(ctx context.Context, postID, content string) (int, error) {
	op := fmt.Sprintf("create comment on post %s", postID)
	path := "/api/posts/" + url.PathEscape(postID) + "/comments"

	var total int
	err := c.doJSON(ctx, op, http.MethodPost, path, map[string]string{"content": content}, &total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
