package models

import "time"

// CommentAuthor is the author summary the backend embeds on each comment.
type CommentAuthor struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
	Role   Role   `json:"role"`
}

// CommentPostRef is the populated post reference on a comment.
type CommentPostRef struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Comment mirrors the backend comment document. ParentID is nil for
// top-level comments. The backend may return replies already nested under
// their parent; the thread package flattens them again before grouping.
type Comment struct {
	ID        string         `json:"_id"`
	Content   string         `json:"content"`
	Post      CommentPostRef `json:"postId"`
	Author    CommentAuthor  `json:"userId"`
	ParentID  *string        `json:"parentComment"`
	Depth     int            `json:"depth"`
	Replies   []Comment      `json:"replies"`
	LikedBy   []string       `json:"likes"`
	LikeCount int            `json:"numberOfLikes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
