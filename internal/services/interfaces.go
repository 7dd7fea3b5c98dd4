package services

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/pkg/jwt"
)

// AuthServiceInterface defines account registration, login and session settings
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// ProfileServiceInterface defines the interface for profile operations
type ProfileServiceInterface interface {
	UpsertProfile(ctx context.Context, callerID string, req *models.UpsertProfileRequest) (*models.Profile, error)
	GetMyProfile(ctx context.Context, callerID string) (*models.Profile, error)
	UploadPicture(ctx context.Context, callerID string, req *models.UploadProfilePictureRequest) (string, error)
}

// BrowseServiceInterface defines the candidate browsing query
type BrowseServiceInterface interface {
	BrowseUsers(ctx context.Context, callerID string, lookingFor string) ([]models.CandidateSummary, error)
}

// ConnectionRequestServiceInterface defines the request lifecycle
type ConnectionRequestServiceInterface interface {
	SendRequest(ctx context.Context, callerID string, payload *models.SendRequestPayload) (string, error)
	GetPendingRequests(ctx context.Context, callerID string) ([]models.PendingRequestView, error)
	RespondToRequest(ctx context.Context, callerID, requestID string, accept bool) error
}

// ConnectionServiceInterface defines the connection registry queries
type ConnectionServiceInterface interface {
	GetMyConnections(ctx context.Context, callerID string) (*models.ConnectionsView, error)
}

// PostServiceInterface defines posts and comments between connected users
type PostServiceInterface interface {
	ListFeed(ctx context.Context, callerID string) ([]models.Post, error)
	CreatePost(ctx context.Context, callerID string, req *models.CreatePostRequest) (*models.Post, error)
	ListComments(ctx context.Context, callerID, postID string) ([]models.Comment, error)
	AddComment(ctx context.Context, callerID, postID string, req *models.CreateCommentRequest) (*models.Comment, error)
}

// ImageUploader stores profile pictures and returns their public URL
type ImageUploader interface {
	UploadProfilePicture(ctx context.Context, userID, imageData, contentType string) (string, error)
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ ProfileServiceInterface = (*ProfileService)(nil)
var _ BrowseServiceInterface = (*BrowseService)(nil)
var _ ConnectionRequestServiceInterface = (*ConnectionRequestService)(nil)
var _ ConnectionServiceInterface = (*ConnectionService)(nil)
var _ PostServiceInterface = (*PostService)(nil)
