package models

import "time"

// Post is a short text shared with the author's connections
type Post struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	AuthorEmail string    `json:"authorEmail"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment is a reply on a post
type Comment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"postId"`
	AuthorID    string    `json:"authorId"`
	AuthorEmail string    `json:"authorEmail"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreatePostRequest is the payload for publishing a post
type CreatePostRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body" binding:"required,max=10000"`
}

// CreateCommentRequest is the payload for commenting on a post
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=5000"`
}
