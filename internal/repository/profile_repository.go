package repository

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/models"
)

// ProfileRepositoryInterface defines the interface for profile data access
type ProfileRepositoryInterface interface {
	Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
	Browse(ctx context.Context, callerID string, targetRole models.Role) ([]models.CandidateSummary, error)
}

// ProfileRepository handles profile data access
type ProfileRepository struct {
	dataSource ProfileDataSource
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(dataSource ProfileDataSource) ProfileRepositoryInterface {
	return &ProfileRepository{dataSource: dataSource}
}

// Upsert creates or patches the user's profile
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	return r.dataSource.UpsertProfile(ctx, userID, req)
}

// GetByUserID returns the user's profile or nil
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return r.dataSource.GetProfileByUserID(ctx, userID)
}

// UpdateAvatar sets the avatar URL on the user's profile
func (r *ProfileRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	return r.dataSource.UpdateProfileAvatar(ctx, userID, avatarURL)
}

// Browse returns candidates holding targetRole or both, excluding callerID
func (r *ProfileRepository) Browse(ctx context.Context, callerID string, targetRole models.Role) ([]models.CandidateSummary, error) {
	return r.dataSource.BrowseProfiles(ctx, callerID, targetRole)
}
