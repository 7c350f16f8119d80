package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
)

// InMemoryAssignmentCache implements AssignmentCache using in-memory
// storage. Suitable for single-instance deployments and tests; use the
// Redis cache when multiple instances must share assignments.
type InMemoryAssignmentCache struct {
	entries sync.Map // map[string]*assignmentEntry
	ttl     time.Duration

	hits   int64
	misses int64
}

type assignmentEntry struct {
	assignment *catalog.CatalogAssignment
	expiresAt  time.Time
}

// NewInMemoryAssignmentCache creates a new in-memory assignment cache
func NewInMemoryAssignmentCache(ttl time.Duration) *InMemoryAssignmentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &InMemoryAssignmentCache{ttl: ttl}
}

// Get returns the cached assignment for the signal tuple, if present
// and not expired. Expired entries are evicted on read.
func (c *InMemoryAssignmentCache) Get(ctx context.Context, query catalog.AssignmentQuery) (*catalog.CatalogAssignment, bool) {
	key := assignmentKey(query)
	value, ok := c.entries.Load(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	entry := value.(*assignmentEntry)
	if time.Now().After(entry.expiresAt) {
		c.entries.Delete(key)
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	return entry.assignment, true
}

// Set stores the assignment for the signal tuple
func (c *InMemoryAssignmentCache) Set(ctx context.Context, query catalog.AssignmentQuery, assignment *catalog.CatalogAssignment) {
	c.entries.Store(assignmentKey(query), &assignmentEntry{
		assignment: assignment,
		expiresAt:  time.Now().Add(c.ttl),
	})
}

// Stats returns hit and miss counters
func (c *InMemoryAssignmentCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// assignmentKey builds a deterministic key from the normalized signal
// tuple. Roles are sorted so equivalent tuples share one entry.
func assignmentKey(query catalog.AssignmentQuery) string {
	query = catalog.NormalizeQuery(query)
	roles := append([]string(nil), query.Roles...)
	sort.Strings(roles)

	return strings.Join([]string{
		query.Country,
		query.UserType,
		strings.Join(roles, ","),
		query.Tier,
	}, "|")
}
