package api

import (
	"context"

	"inkwell/internal/models"
)

// PostComments fetches the flat comment list for a post. Order is not
// guaranteed by the backend; the thread package normalizes it.
func (c *Client) PostComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.get(ctx, pathPostComments(postID), &comments)
	return comments, err
}

// AllComments fetches every comment (admin moderation view).
func (c *Client) AllComments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.get(ctx, pathAllComments, &comments)
	return comments, err
}

// CreateComment posts a new top-level comment and returns the canonical
// record with its server-assigned id.
func (c *Client) CreateComment(ctx context.Context, postID, content string) (models.Comment, error) {
	var comment models.Comment
	err := c.post(ctx, pathCreateComment, map[string]string{
		"postId":  postID,
		"content": content,
	}, &comment)
	return comment, err
}

// ReplyComment posts a reply under an existing comment.
func (c *Client) ReplyComment(ctx context.Context, postID, parentID, content string) (models.Comment, error) {
	var comment models.Comment
	err := c.post(ctx, pathReplyComment, map[string]string{
		"postId":        postID,
		"parentComment": parentID,
		"content":       content,
	}, &comment)
	return comment, err
}

// EditComment replaces a comment's content.
func (c *Client) EditComment(ctx context.Context, id, content string) (models.Comment, error) {
	var comment models.Comment
	err := c.post(ctx, pathEditComment, map[string]string{
		"id":      id,
		"content": content,
	}, &comment)
	return comment, err
}

// LikeComment toggles the caller's like and returns the authoritative count.
func (c *Client) LikeComment(ctx context.Context, id string) (int, error) {
	var out struct {
		LikeCount int `json:"likeCount"`
	}
	err := c.post(ctx, pathLikeComment, map[string]string{"id": id}, &out)
	return out.LikeCount, err
}

// DeleteComment removes a comment. The backend enforces owner/admin rules.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.delete(ctx, pathDeleteComment, map[string]string{"id": id})
}
