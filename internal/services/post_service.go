package services

import (
	"context"
	"fmt"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/repository"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
)

// PostService shares posts and comments between connected users
type PostService struct {
	postRepo       repository.PostRepositoryInterface
	connectionRepo repository.ConnectionRepositoryInterface
}

// NewPostService creates a new PostService
func NewPostService(postRepo repository.PostRepositoryInterface, connectionRepo repository.ConnectionRepositoryInterface) *PostService {
	return &PostService{
		postRepo:       postRepo,
		connectionRepo: connectionRepo,
	}
}

// ListFeed returns the caller's posts and their connections' posts, newest first
func (s *PostService) ListFeed(ctx context.Context, callerID string) ([]models.Post, error) {
	if callerID == "" {
		return []models.Post{}, nil
	}

	posts, err := s.postRepo.ListFeed(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	return posts, nil
}

// CreatePost publishes a post by the caller
func (s *PostService) CreatePost(ctx context.Context, callerID string, req *models.CreatePostRequest) (*models.Post, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	post, err := s.postRepo.Create(ctx, callerID, req.Title, req.Body)
	if err != nil {
		logger.Error("Failed to create post", zap.String("author_id", callerID), zap.Error(err))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	metrics.PostsCreated.Inc()
	return post, nil
}

// ListComments returns comments on a post visible to the caller, oldest first
func (s *PostService) ListComments(ctx context.Context, callerID, postID string) ([]models.Comment, error) {
	if _, err := s.visiblePost(ctx, callerID, postID); err != nil {
		return nil, err
	}

	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment comments on a post visible to the caller
func (s *PostService) AddComment(ctx context.Context, callerID, postID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.visiblePost(ctx, callerID, postID); err != nil {
		return nil, err
	}

	comment, err := s.postRepo.CreateComment(ctx, postID, callerID, req.Body)
	if err != nil {
		logger.Error("Failed to create comment", zap.String("post_id", postID), zap.Error(err))
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsCreated.Inc()
	return comment, nil
}

// visiblePost loads a post the caller wrote or whose author is connected to the caller
func (s *PostService) visiblePost(ctx context.Context, callerID, postID string) (*models.Post, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID == callerID {
		return post, nil
	}

	connected, err := s.connectionRepo.AreConnected(ctx, callerID, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check connection: %w", err)
	}
	if !connected {
		return nil, apperrors.UnauthorizedError("post is only visible to the author's connections")
	}
	return post, nil
}
