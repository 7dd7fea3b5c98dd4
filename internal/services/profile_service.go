package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/repository"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
)

// ErrStorageDisabled is returned for picture uploads when no bucket is configured
var ErrStorageDisabled = errors.New("profile picture storage is not configured")

// ProfileService manages the caller's own profile
type ProfileService struct {
	profileRepo repository.ProfileRepositoryInterface
	uploader    ImageUploader
}

// NewProfileService creates a new ProfileService. uploader may be nil.
func NewProfileService(profileRepo repository.ProfileRepositoryInterface, uploader ImageUploader) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		uploader:    uploader,
	}
}

// UpsertProfile creates the caller's profile or patches the fields present in req
func (s *ProfileService) UpsertProfile(ctx context.Context, callerID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if !req.Role.IsValid() {
		return nil, apperrors.InvalidInputError("role", "must be one of mentor, mentee, both")
	}

	profile, err := s.profileRepo.Upsert(ctx, callerID, req)
	metrics.ProfileUpserts.WithLabelValues(string(req.Role), metrics.StatusLabel(err)).Inc()
	if err != nil {
		logger.Error("Failed to upsert profile",
			zap.String("user_id", callerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.Info("Profile saved",
		zap.String("user_id", callerID),
		zap.String("role", string(profile.Role)))

	return profile, nil
}

// GetMyProfile returns the caller's profile, or nil when there is none or no caller
func (s *ProfileService) GetMyProfile(ctx context.Context, callerID string) (*models.Profile, error) {
	if callerID == "" {
		return nil, nil
	}
	return s.profileRepo.GetByUserID(ctx, callerID)
}

// UploadPicture stores a new avatar and records its URL on the caller's profile
func (s *ProfileService) UploadPicture(ctx context.Context, callerID string, req *models.UploadProfilePictureRequest) (string, error) {
	if callerID == "" {
		return "", apperrors.ErrUnauthenticated
	}
	if s.uploader == nil {
		return "", ErrStorageDisabled
	}

	profile, err := s.profileRepo.GetByUserID(ctx, callerID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", apperrors.NotFoundError("profile")
	}

	imageURL, err := s.uploader.UploadProfilePicture(ctx, callerID, req.Image, req.ContentType)
	if err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		logger.Warn("Profile picture upload failed",
			zap.String("user_id", callerID),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload picture: %w", err)
	}

	if err := s.profileRepo.UpdateAvatar(ctx, callerID, imageURL); err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to save avatar url: %w", err)
	}

	metrics.ProfilePictureUploads.WithLabelValues("success").Inc()
	logger.Info("Profile picture uploaded",
		zap.String("user_id", callerID),
		zap.String("image_url", imageURL))

	return imageURL, nil
}
