package cache

import (
	"context"
	"time"

	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	userCacheName    = "users"
	userKeyPrefix    = "user:id:"
	cacheCleanupTick = 10 * time.Minute
)

// UserDataSource loads users on a cache miss
type UserDataSource interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// UserCacheInterface defines the identity cache operations
type UserCacheInterface interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Set(user *models.User)
	Invalidate(id string)
}

// UserCache keeps recently resolved identities in memory.
// Users are immutable apart from creation, so a plain TTL is enough.
type UserCache struct {
	cache      *gocache.Cache
	dataSource UserDataSource
}

// NewUserCache creates an identity cache with the given entry TTL
func NewUserCache(dataSource UserDataSource, ttlSeconds int) *UserCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &UserCache{
		cache:      gocache.New(ttl, cacheCleanupTick),
		dataSource: dataSource,
	}
}

// Get returns the user from cache or loads it from the data source.
// Lookup failures (including not found) are not cached.
func (uc *UserCache) Get(ctx context.Context, id string) (*models.User, error) {
	key := userKeyPrefix + id

	if data, found := uc.cache.Get(key); found {
		if user, ok := data.(*models.User); ok {
			metrics.CacheHits.WithLabelValues(userCacheName).Inc()
			return user, nil
		}
		logger.Error("Invalid user cache data type", zap.String("key", key))
		uc.cache.Delete(key)
	}

	metrics.CacheMisses.WithLabelValues(userCacheName).Inc()

	user, err := uc.dataSource.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.Set(user)
	return user, nil
}

// Set stores a user under its id
func (uc *UserCache) Set(user *models.User) {
	uc.cache.SetDefault(userKeyPrefix+user.ID, user)
	metrics.CacheSize.WithLabelValues(userCacheName).Set(float64(uc.cache.ItemCount()))
}

// Invalidate drops a cached user
func (uc *UserCache) Invalidate(id string) {
	uc.cache.Delete(userKeyPrefix + id)
	metrics.CacheSize.WithLabelValues(userCacheName).Set(float64(uc.cache.ItemCount()))
}
