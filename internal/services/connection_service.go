package services

import (
	"context"
	"fmt"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/repository"
)

// ConnectionService lists accepted mentor/mentee pairs
type ConnectionService struct {
	connectionRepo repository.ConnectionRepositoryInterface
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(connectionRepo repository.ConnectionRepositoryInterface) *ConnectionService {
	return &ConnectionService{connectionRepo: connectionRepo}
}

// GetMyConnections returns the caller's mentors (with skills) and mentees (with interests)
func (s *ConnectionService) GetMyConnections(ctx context.Context, callerID string) (*models.ConnectionsView, error) {
	if callerID == "" {
		return models.EmptyConnectionsView(), nil
	}

	view, err := s.connectionRepo.ListForUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return view, nil
}
