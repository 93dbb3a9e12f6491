package models

import "time"

// PostAuthor is the populated userId field on a post.
type PostAuthor struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
	Role   Role   `json:"role"`
}

// Post mirrors the backend post document.
type Post struct {
	ID        string     `json:"_id"`
	Author    PostAuthor `json:"userId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Image     string     `json:"image"`
	Category  string     `json:"category"`
	Slug      string     `json:"slug"`
	IsDraft   bool       `json:"isDraft"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
