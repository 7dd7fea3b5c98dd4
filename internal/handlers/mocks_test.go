package handlers

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/pkg/jwt"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GetSessionTTL() int                 { return 3600 }
func (m *MockAuthService) GetCookieDomain() string            { return "" }
func (m *MockAuthService) GetCookieSecure() bool              { return false }
func (m *MockAuthService) GetTokenManager() *jwt.TokenManager { return nil }

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) UpsertProfile(ctx context.Context, callerID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetMyProfile(ctx context.Context, callerID string) (*models.Profile, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) UploadPicture(ctx context.Context, callerID string, req *models.UploadProfilePictureRequest) (string, error) {
	args := m.Called(ctx, callerID, req)
	return args.String(0), args.Error(1)
}

type MockBrowseService struct {
	mock.Mock
}

func (m *MockBrowseService) BrowseUsers(ctx context.Context, callerID string, lookingFor string) ([]models.CandidateSummary, error) {
	args := m.Called(ctx, callerID, lookingFor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CandidateSummary), args.Error(1)
}

type MockConnectionRequestService struct {
	mock.Mock
}

func (m *MockConnectionRequestService) SendRequest(ctx context.Context, callerID string, payload *models.SendRequestPayload) (string, error) {
	args := m.Called(ctx, callerID, payload)
	return args.String(0), args.Error(1)
}

func (m *MockConnectionRequestService) GetPendingRequests(ctx context.Context, callerID string) ([]models.PendingRequestView, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingRequestView), args.Error(1)
}

func (m *MockConnectionRequestService) RespondToRequest(ctx context.Context, callerID, requestID string, accept bool) error {
	args := m.Called(ctx, callerID, requestID, accept)
	return args.Error(0)
}

type MockConnectionService struct {
	mock.Mock
}

func (m *MockConnectionService) GetMyConnections(ctx context.Context, callerID string) (*models.ConnectionsView, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionsView), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListFeed(ctx context.Context, callerID string) ([]models.Post, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, callerID string, req *models.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListComments(ctx context.Context, callerID, postID string) ([]models.Comment, error) {
	args := m.Called(ctx, callerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, callerID, postID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, callerID, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}
