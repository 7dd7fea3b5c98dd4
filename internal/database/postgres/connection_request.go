package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/getmentor/mentorlink-api/internal/models"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CreateConnectionRequest inserts a pending request for the ordered pair (fromUserID, toUserID).
// Any existing request for the pair, whatever its status, yields ErrAlreadyExists.
func (c *Client) CreateConnectionRequest(ctx context.Context, fromUserID, toUserID string, message *string) (*models.ConnectionRequest, error) {
	start := time.Now()
	operation := "createConnectionRequest"

	req := &models.ConnectionRequest{
		ID:         uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     models.StatusPending,
		Message:    message,
	}

	err := c.withTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM connection_requests WHERE from_user_id = $1 AND to_user_id = $2)`,
			fromUserID, toUserID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check existing request: %w", err)
		}
		if exists {
			return apperrors.AlreadyExistsError("connection request")
		}

		// The pair constraint settles a concurrent send that passed the check above
		err = tx.QueryRow(ctx, `
			INSERT INTO connection_requests (id, from_user_id, to_user_id, status, message)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`, req.ID, fromUserID, toUserID, string(models.StatusPending), message).Scan(&req.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.AlreadyExistsError("connection request")
			}
			return fmt.Errorf("failed to insert request: %w", err)
		}
		return nil
	})

	if apperrors.Is(err, apperrors.ErrAlreadyExists) {
		observe(ctx, operation, start, nil, zap.Bool("duplicate", true))
		return nil, err
	}
	observe(ctx, operation, start, err,
		zap.String("from_user_id", fromUserID),
		zap.String("to_user_id", toUserID))
	if err != nil {
		return nil, err
	}

	return req, nil
}

// GetConnectionRequest returns a request by id
func (c *Client) GetConnectionRequest(ctx context.Context, id string) (*models.ConnectionRequest, error) {
	start := time.Now()
	operation := "getConnectionRequest"

	var req models.ConnectionRequest
	var status string
	err := c.pool.QueryRow(ctx, `
		SELECT id, from_user_id, to_user_id, status, message, created_at, responded_at
		FROM connection_requests
		WHERE id = $1
	`, id).Scan(&req.ID, &req.FromUserID, &req.ToUserID, &status, &req.Message, &req.CreatedAt, &req.RespondedAt)

	if isNoRows(err) {
		observe(ctx, operation, start, nil, zap.Bool("found", false))
		return nil, apperrors.NotFoundError("connection request")
	}
	observe(ctx, operation, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	req.Status = models.RequestStatus(status)
	return &req, nil
}

// ListPendingRequestsTo returns pending requests addressed to userID with sender details, oldest first
func (c *Client) ListPendingRequestsTo(ctx context.Context, userID string) ([]models.PendingRequestView, error) {
	start := time.Now()
	operation := "listPendingRequestsTo"

	query := `
		SELECT cr.id, cr.from_user_id, u.email, p.role, p.bio, cr.message, cr.created_at
		FROM connection_requests cr
		JOIN users u ON u.id = cr.from_user_id
		LEFT JOIN profiles p ON p.user_id = cr.from_user_id
		WHERE cr.to_user_id = $1
		  AND cr.status = 'pending'
		ORDER BY cr.created_at ASC
	`

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	views := make([]models.PendingRequestView, 0)
	for rows.Next() {
		var v models.PendingRequestView
		var role *string
		if err := rows.Scan(&v.RequestID, &v.FromUserID, &v.FromEmail, &role, &v.FromBio, &v.Message, &v.CreatedAt); err != nil {
			observe(ctx, operation, start, err)
			return nil, fmt.Errorf("failed to scan pending request: %w", err)
		}
		if role != nil {
			r := models.Role(*role)
			v.FromRole = &r
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		observe(ctx, operation, start, err)
		return nil, fmt.Errorf("failed to iterate pending requests: %w", err)
	}

	observe(ctx, operation, start, nil, zap.Int("count", len(views)))
	return views, nil
}

// AcceptConnectionRequest marks a pending request accepted and records the connection
// in the same transaction. Roles come from the sender's profile as read inside it.
// A request that is no longer pending yields ErrConflict.
func (c *Client) AcceptConnectionRequest(ctx context.Context, requestID string) (*models.Connection, error) {
	start := time.Now()
	operation := "acceptConnectionRequest"

	conn := &models.Connection{
		ID:        uuid.NewString(),
		RequestID: requestID,
	}

	err := c.withTx(ctx, func(tx pgx.Tx) error {
		fromUserID, toUserID, err := resolvePending(ctx, tx, requestID, models.StatusAccepted)
		if err != nil {
			return err
		}

		var senderRole *models.Role
		var role string
		err = tx.QueryRow(ctx, `SELECT role FROM profiles WHERE user_id = $1`, fromUserID).Scan(&role)
		switch {
		case isNoRows(err):
			// sender without a profile falls back to mentee
		case err != nil:
			return fmt.Errorf("failed to read sender role: %w", err)
		default:
			r := models.Role(role)
			senderRole = &r
		}

		conn.MentorID, conn.MenteeID = models.ResolveMentorship(fromUserID, toUserID, senderRole)

		err = tx.QueryRow(ctx, `
			INSERT INTO connections (id, mentor_id, mentee_id, request_id)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`, conn.ID, conn.MentorID, conn.MenteeID, requestID).Scan(&conn.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ConflictError("connection already recorded for request")
			}
			return fmt.Errorf("failed to insert connection: %w", err)
		}
		return nil
	})

	observe(ctx, operation, start, err, zap.String("request_id", requestID))
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// RejectConnectionRequest marks a pending request rejected.
// A request that is no longer pending yields ErrConflict.
func (c *Client) RejectConnectionRequest(ctx context.Context, requestID string) error {
	start := time.Now()
	operation := "rejectConnectionRequest"

	err := c.withTx(ctx, func(tx pgx.Tx) error {
		_, _, err := resolvePending(ctx, tx, requestID, models.StatusRejected)
		return err
	})

	observe(ctx, operation, start, err, zap.String("request_id", requestID))
	return err
}

// resolvePending moves a pending request to status, returning its endpoints
func resolvePending(ctx context.Context, tx pgx.Tx, requestID string, status models.RequestStatus) (fromUserID, toUserID string, err error) {
	err = tx.QueryRow(ctx, `
		UPDATE connection_requests
		SET status = $1, responded_at = NOW()
		WHERE id = $2 AND status = 'pending'
		RETURNING from_user_id, to_user_id
	`, string(status), requestID).Scan(&fromUserID, &toUserID)

	if isNoRows(err) {
		return "", "", apperrors.ConflictError("connection request already resolved")
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to update request status: %w", err)
	}
	return fromUserID, toUserID, nil
}
