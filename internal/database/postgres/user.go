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

// CreateUser inserts a new account. A duplicate email yields ErrAlreadyExists.
func (c *Client) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	start := time.Now()
	operation := "createUser"

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := c.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt)

	observe(ctx, operation, start, err)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.AlreadyExistsError("user with this email")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail looks up an account by email (case-insensitive)
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return c.getUser(ctx, "getUserByEmail", "email", email)
}

// GetUserByID looks up an account by id
func (c *Client) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return c.getUser(ctx, "getUserByID", "id", id)
}

func (c *Client) getUser(ctx context.Context, operation, column, value string) (*models.User, error) {
	start := time.Now()

	// column is one of two fixed identifiers, never user input
	query := fmt.Sprintf(`SELECT id, email, password_hash, created_at FROM users WHERE %s = $1`, column)

	var user models.User
	err := c.pool.QueryRow(ctx, query, value).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if isNoRows(err) {
		observe(ctx, operation, start, nil, zap.Bool("found", false))
		return nil, apperrors.NotFoundError("user")
	}
	observe(ctx, operation, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
