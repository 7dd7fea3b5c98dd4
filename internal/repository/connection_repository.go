package repository

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/models"
)

// ConnectionRepositoryInterface defines the interface for the connection registry
type ConnectionRepositoryInterface interface {
	ListForUser(ctx context.Context, userID string) (*models.ConnectionsView, error)
	AreConnected(ctx context.Context, userA, userB string) (bool, error)
}

// ConnectionRepository handles connection data access
type ConnectionRepository struct {
	dataSource ConnectionDataSource
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(dataSource ConnectionDataSource) ConnectionRepositoryInterface {
	return &ConnectionRepository{dataSource: dataSource}
}

// ListForUser returns the user's mentors and mentees
func (r *ConnectionRepository) ListForUser(ctx context.Context, userID string) (*models.ConnectionsView, error) {
	return r.dataSource.ListConnections(ctx, userID)
}

// AreConnected reports whether two users share a connection
func (r *ConnectionRepository) AreConnected(ctx context.Context, userA, userB string) (bool, error) {
	return r.dataSource.AreConnected(ctx, userA, userB)
}
