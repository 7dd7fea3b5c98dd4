package repository

import (
	"context"

	"github.com/getmentor/mentorlink-api/internal/cache"
	"github.com/getmentor/mentorlink-api/internal/models"
)

// UserRepositoryInterface defines the interface for account data access
type UserRepositoryInterface interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserRepository handles account data access; id lookups go through the identity cache
type UserRepository struct {
	dataSource UserDataSource
	userCache  cache.UserCacheInterface
}

// NewUserRepository creates a new user repository
func NewUserRepository(dataSource UserDataSource, userCache cache.UserCacheInterface) UserRepositoryInterface {
	return &UserRepository{
		dataSource: dataSource,
		userCache:  userCache,
	}
}

// Create stores a new account and primes the cache with it
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user, err := r.dataSource.CreateUser(ctx, email, passwordHash)
	if err != nil {
		return nil, err
	}
	r.userCache.Set(user)
	return user, nil
}

// GetByEmail looks up an account by email, bypassing the cache
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.dataSource.GetUserByEmail(ctx, email)
}

// GetByID resolves an account by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.userCache.Get(ctx, id)
}
