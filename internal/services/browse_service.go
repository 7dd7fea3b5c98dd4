package services

import (
	"context"
	"fmt"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/repository"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
)

// BrowseService lists candidates with the role complementary to what the caller looks for
type BrowseService struct {
	profileRepo repository.ProfileRepositoryInterface
}

// NewBrowseService creates a new BrowseService
func NewBrowseService(profileRepo repository.ProfileRepositoryInterface) *BrowseService {
	return &BrowseService{profileRepo: profileRepo}
}

// BrowseUsers returns profiles with the target role or "both", never the caller's own.
// Users the caller already has a request or connection with are not filtered out.
func (s *BrowseService) BrowseUsers(ctx context.Context, callerID string, lookingFor string) ([]models.CandidateSummary, error) {
	target, ok := models.LookingFor(lookingFor).TargetRole()
	if !ok {
		return nil, apperrors.InvalidInputError("lookingFor", "must be mentors or mentees")
	}

	if callerID == "" {
		return []models.CandidateSummary{}, nil
	}

	candidates, err := s.profileRepo.Browse(ctx, callerID, target)
	if err != nil {
		return nil, fmt.Errorf("failed to browse profiles: %w", err)
	}

	metrics.BrowseResults.WithLabelValues(lookingFor).Observe(float64(len(candidates)))
	return candidates, nil
}
