package api

import (
	"context"
	"net/url"
	"strconv"

	"inkwell/internal/models"
)

// PostQuery narrows the public post listing.
type PostQuery struct {
	Category string
	Search   string
	Page     int
}

// PostInput is the create/update payload for a post.
type PostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image,omitempty"`
	IsDraft  bool   `json:"isDraft"`
}

// ListPosts fetches published posts, optionally filtered.
func (c *Client) ListPosts(ctx context.Context, q PostQuery) ([]models.Post, error) {
	vals := url.Values{}
	if q.Category != "" {
		vals.Set("category", q.Category)
	}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if q.Page > 1 {
		vals.Set("page", strconv.Itoa(q.Page))
	}
	path := pathPosts
	if encoded := vals.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var posts []models.Post
	err := c.get(ctx, path, &posts)
	return posts, err
}

// GetPost fetches a single post by id or slug.
func (c *Client) GetPost(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	err := c.get(ctx, pathPost(id), &post)
	return post, err
}

// MyPosts lists the calling author's published posts.
func (c *Client) MyPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.get(ctx, pathMyPosts, &posts)
	return posts, err
}

// Drafts lists the calling author's unpublished drafts.
func (c *Client) Drafts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.get(ctx, pathDrafts, &posts)
	return posts, err
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (models.Post, error) {
	var post models.Post
	err := c.post(ctx, pathCreatePost, in, &post)
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, id string, in PostInput) (models.Post, error) {
	var post models.Post
	err := c.put(ctx, pathUpdatePost(id), in, &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.delete(ctx, pathDeletePost, map[string]string{"postId": id})
}
