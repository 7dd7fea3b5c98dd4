package services_test

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepositoryInterface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

func (m *MockProfileRepository) Browse(ctx context.Context, callerID string, targetRole models.Role) ([]models.CandidateSummary, error) {
	args := m.Called(ctx, callerID, targetRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CandidateSummary), args.Error(1)
}

// MockConnectionRequestRepository is a mock implementation of ConnectionRequestRepositoryInterface
type MockConnectionRequestRepository struct {
	mock.Mock
}

func (m *MockConnectionRequestRepository) Create(ctx context.Context, fromUserID, toUserID string, message *string) (*models.ConnectionRequest, error) {
	args := m.Called(ctx, fromUserID, toUserID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRequestRepository) GetByID(ctx context.Context, id string) (*models.ConnectionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRequestRepository) ListPendingTo(ctx context.Context, userID string) ([]models.PendingRequestView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingRequestView), args.Error(1)
}

func (m *MockConnectionRequestRepository) Accept(ctx context.Context, requestID string) (*models.Connection, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockConnectionRequestRepository) Reject(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

// MockConnectionRepository is a mock implementation of ConnectionRepositoryInterface
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) ListForUser(ctx context.Context, userID string) (*models.ConnectionsView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionsView), args.Error(1)
}

func (m *MockConnectionRepository) AreConnected(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

// MockPostRepository is a mock implementation of PostRepositoryInterface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) ListFeed(ctx context.Context, userID string) ([]models.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, authorID, title, body string) (*models.Post, error) {
	args := m.Called(ctx, authorID, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockPostRepository) CreateComment(ctx context.Context, postID, authorID, body string) (*models.Comment, error) {
	args := m.Called(ctx, postID, authorID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

// MockImageUploader is a mock implementation of ImageUploader
type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) UploadProfilePicture(ctx context.Context, userID, imageData, contentType string) (string, error) {
	args := m.Called(ctx, userID, imageData, contentType)
	return args.String(0), args.Error(1)
}
