package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/getmentor/mentorlink-api/internal/models"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListFeed returns posts by the user and by everyone connected to them, newest first
func (c *Client) ListFeed(ctx context.Context, userID string) ([]models.Post, error) {
	start := time.Now()
	operation := "listFeed"

	query := `
		SELECT p.id, p.author_id, u.email, p.title, p.body, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		   OR p.author_id IN (
				SELECT mentor_id FROM connections WHERE mentee_id = $1
				UNION
				SELECT mentee_id FROM connections WHERE mentor_id = $1
		   )
		ORDER BY p.created_at DESC
	`

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorEmail, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			observe(ctx, operation, start, err)
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to iterate feed: %w", err)
	}

	observe(ctx, operation, start, nil, zap.Int("count", len(posts)))
	return posts, nil
}

// GetPost returns a post by id
func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	start := time.Now()
	operation := "getPost"

	var p models.Post
	err := c.pool.QueryRow(ctx, `
		SELECT p.id, p.author_id, u.email, p.title, p.body, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.AuthorID, &p.AuthorEmail, &p.Title, &p.Body, &p.CreatedAt)

	if isNoRows(err) {
		observe(ctx, operation, start, nil, zap.Bool("found", false))
		return nil, apperrors.NotFoundError("post")
	}
	observe(ctx, operation, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &p, nil
}

// CreatePost inserts a post
func (c *Client) CreatePost(ctx context.Context, authorID, title, body string) (*models.Post, error) {
	start := time.Now()
	operation := "createPost"

	p := &models.Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Title:    title,
		Body:     body,
	}

	err := c.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO posts (id, author_id, title, body)
			VALUES ($1, $2, $3, $4)
			RETURNING author_id, created_at
		)
		SELECT u.email, i.created_at FROM inserted i JOIN users u ON u.id = i.author_id
	`, p.ID, authorID, title, body).Scan(&p.AuthorEmail, &p.CreatedAt)

	observe(ctx, operation, start, err, zap.String("author_id", authorID))
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return p, nil
}

// ListComments returns the comments on a post, oldest first
func (c *Client) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	start := time.Now()
	operation := "listComments"

	rows, err := c.pool.Query(ctx, `
		SELECT c.id, c.post_id, c.author_id, u.email, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`, postID)
	if err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var cm models.Comment
		if err := rows.Scan(&cm.ID, &cm.PostID, &cm.AuthorID, &cm.AuthorEmail, &cm.Body, &cm.CreatedAt); err != nil {
			observe(ctx, operation, start, err)
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	observe(ctx, operation, start, nil, zap.Int("count", len(comments)))
	return comments, nil
}

// CreateComment inserts a comment on a post
func (c *Client) CreateComment(ctx context.Context, postID, authorID, body string) (*models.Comment, error) {
	start := time.Now()
	operation := "createComment"

	cm := &models.Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
	}

	err := c.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO comments (id, post_id, author_id, body)
			VALUES ($1, $2, $3, $4)
			RETURNING author_id, created_at
		)
		SELECT u.email, i.created_at FROM inserted i JOIN users u ON u.id = i.author_id
	`, cm.ID, postID, authorID, body).Scan(&cm.AuthorEmail, &cm.CreatedAt)

	observe(ctx, operation, start, err, zap.String("post_id", postID))
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return cm, nil
}
