package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/getmentor/mentorlink-api/internal/models"
	"go.uber.org/zap"
)

// ListConnections returns the user's connections split by partner role
func (c *Client) ListConnections(ctx context.Context, userID string) (*models.ConnectionsView, error) {
	start := time.Now()
	operation := "listConnections"

	view := models.EmptyConnectionsView()

	// Partners who mentor the user
	mentorRows, err := c.pool.Query(ctx, `
		SELECT c.id, c.mentor_id, u.email, p.bio, p.skills
		FROM connections c
		JOIN users u ON u.id = c.mentor_id
		LEFT JOIN profiles p ON p.user_id = c.mentor_id
		WHERE c.mentee_id = $1
		ORDER BY c.created_at ASC
	`, userID)
	if err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to query mentors: %w", err)
	}
	for mentorRows.Next() {
		var e models.MentorEntry
		if err := mentorRows.Scan(&e.ConnectionID, &e.UserID, &e.Email, &e.Bio, &e.Skills); err != nil {
			mentorRows.Close()
			observe(ctx, operation, start, err)
			return nil, fmt.Errorf("failed to scan mentor: %w", err)
		}
		view.Mentors = append(view.Mentors, e)
	}
	mentorRows.Close()
	if err := mentorRows.Err(); err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to iterate mentors: %w", err)
	}

	// Partners the user mentors
	menteeRows, err := c.pool.Query(ctx, `
		SELECT c.id, c.mentee_id, u.email, p.bio, p.interests
		FROM connections c
		JOIN users u ON u.id = c.mentee_id
		LEFT JOIN profiles p ON p.user_id = c.mentee_id
		WHERE c.mentor_id = $1
		ORDER BY c.created_at ASC
	`, userID)
	if err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to query mentees: %w", err)
	}
	defer menteeRows.Close()
	for menteeRows.Next() {
		var e models.MenteeEntry
		if err := menteeRows.Scan(&e.ConnectionID, &e.UserID, &e.Email, &e.Bio, &e.Interests); err != nil {
			observe(ctx, operation, start, err)
			return nil, fmt.Errorf("failed to scan mentee: %w", err)
		}
		view.Mentees = append(view.Mentees, e)
	}
	if err := menteeRows.Err(); err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to iterate mentees: %w", err)
	}

	observe(ctx, operation, start, nil,
		zap.Int("mentors", len(view.Mentors)),
		zap.Int("mentees", len(view.Mentees)))

	return view, nil
}

// AreConnected reports whether a connection exists between the two users in either direction
func (c *Client) AreConnected(ctx context.Context, userA, userB string) (bool, error) {
	start := time.Now()
	operation := "areConnected"

	var connected bool
	err := c.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM connections
			WHERE (mentor_id = $1 AND mentee_id = $2)
			   OR (mentor_id = $2 AND mentee_id = $1)
		)
	`, userA, userB).Scan(&connected)

	observe(ctx, operation, start, err)
	if err != nil {
		return false, fmt.Errorf("failed to check connection: %w", err)
	}
	return connected, nil
}
