package repository

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/models"
)

// UserDataSource defines account storage
type UserDataSource interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ProfileDataSource defines profile storage
type ProfileDataSource interface {
	UpsertProfile(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfileAvatar(ctx context.Context, userID, avatarURL string) error
	BrowseProfiles(ctx context.Context, callerID string, targetRole models.Role) ([]models.CandidateSummary, error)
}

// ConnectionRequestDataSource defines the request ledger
type ConnectionRequestDataSource interface {
	CreateConnectionRequest(ctx context.Context, fromUserID, toUserID string, message *string) (*models.ConnectionRequest, error)
	GetConnectionRequest(ctx context.Context, id string) (*models.ConnectionRequest, error)
	ListPendingRequestsTo(ctx context.Context, userID string) ([]models.PendingRequestView, error)
	AcceptConnectionRequest(ctx context.Context, requestID string) (*models.Connection, error)
	RejectConnectionRequest(ctx context.Context, requestID string) error
}

// ConnectionDataSource defines the connection registry
type ConnectionDataSource interface {
	ListConnections(ctx context.Context, userID string) (*models.ConnectionsView, error)
	AreConnected(ctx context.Context, userA, userB string) (bool, error)
}

// PostDataSource defines post and comment storage
type PostDataSource interface {
	ListFeed(ctx context.Context, userID string) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, authorID, title, body string) (*models.Post, error)
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID, authorID, body string) (*models.Comment, error)
}
