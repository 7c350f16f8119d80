package cache

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appricing "github.com/storefront/backend/internal/application/pricing"
	"go.uber.org/zap"
)

// RedisListingCache caches catalog listing responses in Redis. Listings
// change more often than assignments, so the TTL is kept short.
type RedisListingCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisListingCache creates a new RedisListingCache
func NewRedisListingCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisListingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisListingCache{
		client:    client,
		keyPrefix: "pricing:listing:",
		ttl:       ttl,
		logger:    logger,
	}
}

// Get returns the cached listing for the catalog and product set, if
// present. Redis failures degrade to a cache miss.
func (c *RedisListingCache) Get(ctx context.Context, catalogID uuid.UUID, productIDs []uuid.UUID) (*appricing.ListingResponse, bool) {
	data, err := c.client.Get(ctx, c.key(catalogID, productIDs)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Listing cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var response appricing.ListingResponse
	if err := json.Unmarshal(data, &response); err != nil {
		c.logger.Warn("Listing cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &response, true
}

// Set stores the listing for the catalog and product set with the
// configured TTL
func (c *RedisListingCache) Set(ctx context.Context, catalogID uuid.UUID, productIDs []uuid.UUID, response *appricing.ListingResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		c.logger.Warn("Listing cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(catalogID, productIDs), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Listing cache write failed", zap.Error(err))
	}
}

// key builds a deterministic cache key. Product IDs are sorted so the
// same set requested in any order shares one entry.
func (c *RedisListingCache) key(catalogID uuid.UUID, productIDs []uuid.UUID) string {
	ids := make([]string, len(productIDs))
	for i, id := range productIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return c.keyPrefix + catalogID.String() + ":" + strings.Join(ids, ",")
}
