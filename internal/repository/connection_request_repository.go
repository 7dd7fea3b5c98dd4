package repository

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/models"
)

// ConnectionRequestRepositoryInterface defines the interface for the request ledger
type ConnectionRequestRepositoryInterface interface {
	Create(ctx context.Context, fromUserID, toUserID string, message *string) (*models.ConnectionRequest, error)
	GetByID(ctx context.Context, id string) (*models.ConnectionRequest, error)
	ListPendingTo(ctx context.Context, userID string) ([]models.PendingRequestView, error)
	Accept(ctx context.Context, requestID string) (*models.Connection, error)
	Reject(ctx context.Context, requestID string) error
}

// ConnectionRequestRepository handles connection request data access
type ConnectionRequestRepository struct {
	dataSource ConnectionRequestDataSource
}

// NewConnectionRequestRepository creates a new connection request repository
func NewConnectionRequestRepository(dataSource ConnectionRequestDataSource) ConnectionRequestRepositoryInterface {
	return &ConnectionRequestRepository{dataSource: dataSource}
}

// Create inserts a pending request
func (r *ConnectionRequestRepository) Create(ctx context.Context, fromUserID, toUserID string, message *string) (*models.ConnectionRequest, error) {
	return r.dataSource.CreateConnectionRequest(ctx, fromUserID, toUserID, message)
}

// GetByID retrieves a single request
func (r *ConnectionRequestRepository) GetByID(ctx context.Context, id string) (*models.ConnectionRequest, error) {
	return r.dataSource.GetConnectionRequest(ctx, id)
}

// ListPendingTo lists pending requests addressed to the user
func (r *ConnectionRequestRepository) ListPendingTo(ctx context.Context, userID string) ([]models.PendingRequestView, error) {
	return r.dataSource.ListPendingRequestsTo(ctx, userID)
}

// Accept accepts a pending request and records the resulting connection atomically
func (r *ConnectionRequestRepository) Accept(ctx context.Context, requestID string) (*models.Connection, error) {
	return r.dataSource.AcceptConnectionRequest(ctx, requestID)
}

// Reject rejects a pending request
func (r *ConnectionRequestRepository) Reject(ctx context.Context, requestID string) error {
	return r.dataSource.RejectConnectionRequest(ctx, requestID)
}
