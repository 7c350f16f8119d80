package cache

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
)

// TieredAssignmentCache layers a local in-memory cache over the shared
// Redis cache. Reads check L1 first and promote L2 hits; writes go to
// both tiers. Assignments are short-lived tuples, so no cross-instance
// invalidation channel is needed: the TTL bounds staleness.
type TieredAssignmentCache struct {
	l1 *InMemoryAssignmentCache
	l2 *RedisAssignmentCache
}

// NewTieredAssignmentCache creates a new tiered assignment cache
func NewTieredAssignmentCache(l1 *InMemoryAssignmentCache, l2 *RedisAssignmentCache) *TieredAssignmentCache {
	return &TieredAssignmentCache{l1: l1, l2: l2}
}

// Get returns the cached assignment, checking the local tier first
func (c *TieredAssignmentCache) Get(ctx context.Context, query catalog.AssignmentQuery) (*catalog.CatalogAssignment, bool) {
	if assignment, ok := c.l1.Get(ctx, query); ok {
		return assignment, true
	}

	assignment, ok := c.l2.Get(ctx, query)
	if ok {
		c.l1.Set(ctx, query, assignment)
	}
	return assignment, ok
}

// Set stores the assignment in both tiers
func (c *TieredAssignmentCache) Set(ctx context.Context, query catalog.AssignmentQuery, assignment *catalog.CatalogAssignment) {
	c.l1.Set(ctx, query, assignment)
	c.l2.Set(ctx, query, assignment)
}

// Stats returns the local tier hit and miss counters
func (c *TieredAssignmentCache) Stats() (hits, misses int64) {
	return c.l1.Stats()
}
