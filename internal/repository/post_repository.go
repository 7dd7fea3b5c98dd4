package repository

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/models"
)

// PostRepositoryInterface defines the interface for post and comment data access
type PostRepositoryInterface interface {
	ListFeed(ctx context.Context, userID string) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, authorID, title, body string) (*models.Post, error)
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID, authorID, body string) (*models.Comment, error)
}

// PostRepository handles post data access
type PostRepository struct {
	dataSource PostDataSource
}

// NewPostRepository creates a new post repository
func NewPostRepository(dataSource PostDataSource) PostRepositoryInterface {
	return &PostRepository{dataSource: dataSource}
}

func (r *PostRepository) ListFeed(ctx context.Context, userID string) ([]models.Post, error) {
	return r.dataSource.ListFeed(ctx, userID)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return r.dataSource.GetPost(ctx, id)
}

func (r *PostRepository) Create(ctx context.Context, authorID, title, body string) (*models.Post, error) {
	return r.dataSource.CreatePost(ctx, authorID, title, body)
}

func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return r.dataSource.ListComments(ctx, postID)
}

func (r *PostRepository) CreateComment(ctx context.Context, postID, authorID, body string) (*models.Comment, error) {
	return r.dataSource.CreateComment(ctx, postID, authorID, body)
}
