package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

// Client wraps a pgx connection pool with observability
type Client struct {
	pool *pgxpool.Pool
}

// NewClient creates a PostgreSQL client on an already connected pool
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Pool returns the underlying connection pool for advanced usage
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// Ping checks if the database connection is alive
func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// Stats returns connection pool statistics
func (c *Client) Stats() *pgxpool.Stat {
	return c.pool.Stat()
}

// withTx runs fn inside a transaction, committing only if fn succeeds
func (c *Client) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// observe records metrics and an API call log line for a finished operation
func observe(ctx context.Context, operation string, start time.Time, err error, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	status := metrics.StatusLabel(err)
	recordMetrics(operation, status, duration)

	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.LogAPICall(ctx, "postgres", operation, status, duration, fields...)
}

// recordMetrics records database operation metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
