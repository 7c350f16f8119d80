package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisAssignmentCache caches resolved catalog assignments in Redis.
// Assignments are derived values; a short TTL bounds how long a stale
// rule change can keep serving.
type RedisAssignmentCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisAssignmentCache creates a new RedisAssignmentCache
func NewRedisAssignmentCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisAssignmentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisAssignmentCache{
		client:    client,
		keyPrefix: "session:assignment:",
		ttl:       ttl,
		logger:    logger,
	}
}

// Get returns the cached assignment for the signal tuple, if present.
// Redis failures degrade to a cache miss so resolution still works.
func (c *RedisAssignmentCache) Get(ctx context.Context, query catalog.AssignmentQuery) (*catalog.CatalogAssignment, bool) {
	data, err := c.client.Get(ctx, c.key(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Assignment cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var assignment catalog.CatalogAssignment
	if err := json.Unmarshal(data, &assignment); err != nil {
		c.logger.Warn("Assignment cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &assignment, true
}

// Set stores the assignment for the signal tuple with the configured TTL
func (c *RedisAssignmentCache) Set(ctx context.Context, query catalog.AssignmentQuery, assignment *catalog.CatalogAssignment) {
	data, err := json.Marshal(assignment)
	if err != nil {
		c.logger.Warn("Assignment cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(query), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Assignment cache write failed", zap.Error(err))
	}
}

func (c *RedisAssignmentCache) key(query catalog.AssignmentQuery) string {
	return c.keyPrefix + assignmentKey(query)
}
