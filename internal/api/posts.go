// ABOUTME: Post and category endpoints: feed loads, category list, creation
// ABOUTME: Wire DTOs mirror the collaborator's JSON and convert to domain types

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2389/feedsync/internal/feed"
)

// postDTO is the collaborator's JSON shape for a post. user_vote is 1 for
// like, -1 for dislike, 0 or absent for none.
type postDTO struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Content       string    `json:"content"`
	ImagePath     string    `json:"image_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Categories    []string  `json:"categories"`
	LikesCount    int       `json:"likes_count"`
	DislikesCount int       `json:"dislikes_count"`
	CommentsCount int       `json:"comments_count"`
	UserVote      int       `json:"user_vote"`
}

func (d postDTO) toDomain() feed.Post {
	return feed.Post{
		ID:           d.ID,
		Author:       d.Username,
		Content:      d.Content,
		ImagePath:    d.ImagePath,
		CreatedAt:    d.CreatedAt,
		Categories:   d.Categories,
		Likes:        d.LikesCount,
		Dislikes:     d.DislikesCount,
		CommentCount: d.CommentsCount,
		ViewerVote:   voteFromInt(d.UserVote),
	}
}

// voteFromInt maps the collaborator's vote encoding onto the domain Vote.
func voteFromInt(v int) feed.Vote {
	switch {
	case v > 0:
		return feed.VoteLike
	case v < 0:
		return feed.VoteDislike
	default:
		return feed.VoteNone
	}
}

type categoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Categories returns the collaborator's ordered category list.
func (c *Client) Categories(ctx context.Context) ([]feed.Category, error) {
	var dtos []categoryDTO
	if err := c.doJSON(ctx, "load categories", http.MethodGet, "/api/categories", nil, &dtos); err != nil {
		return nil, err
	}

	categories := make([]feed.Category, len(dtos))
	for i, d := range dtos {
		categories[i] = feed.Category(d)
	}
	return categories, nil
}

// Posts returns the whole feed in the collaborator's order.
func (c *Client) Posts(ctx context.Context) ([]feed.Post, error) {
	return c.fetchPosts(ctx, "load posts", "/api/posts")
}

// PostsByCategory returns the feed scoped to one category.
func (c *Client) PostsByCategory(ctx context.Context, categoryID string) ([]feed.Post, error) {
	op := fmt.Sprintf("load posts for category %s", categoryID)
	path := "/api/categories/" + url.PathEscape(categoryID) + "/posts"
	return c.fetchPosts(ctx, op, path)
}

func (c *Client) fetchPosts(ctx context.Context, op, path string) ([]feed.Post, error) {
	var dtos []postDTO
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}

	posts := make([]feed.Post, len(dtos))
	for i, d := range dtos {
		posts[i] = d.toDomain()
	}
	return posts, nil
}

// CreatePost submits a new post as multipart form data. Content must be
// non-empty after trimming and at least one category must be selected;
// either violation is a client-side validation failure and no request is
// sent. The image is optional: pass a nil reader to omit it.
func (c *Client) CreatePost(ctx context.Context, content string, categoryIDs []string, imageName string, image io.Reader) (feed.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return feed.Post{}, &feed.ValidationError{Reason: "post content cannot be empty"}
	}
	if len(categoryIDs) == 0 {
		return feed.Post{}, &feed.ValidationError{Reason: "select at least one category"}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("content", content); err != nil {
		return feed.Post{}, &feed.FetchError{Op: "create post", Err: err}
	}
	for _, id := range categoryIDs {
		if err := w.WriteField("categories", id); err != nil {
			return feed.Post{}, &feed.FetchError{Op: "create post", Err: err}
		}
	}
	if image != nil {
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			return feed.Post{}, &feed.FetchError{Op: "create post", Err: err}
		}
		if _, err := io.Copy(part, image); err != nil {
			return feed.Post{}, &feed.FetchError{Op: "create post", Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return feed.Post{}, &feed.FetchError{Op: "create post", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/posts/create", &buf)
	if err != nil {
		return feed.Post{}, &feed.FetchError{Op: "create post", Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var dto postDTO
	if err := c.send(req, "create post", &dto); err != nil {
		return feed.Post{}, err
	}
	return dto.toDomain(), nil
}
