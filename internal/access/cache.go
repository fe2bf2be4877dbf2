package access

import (
	"sync"
	"time"

	"server/internal/domain"
)

// profileCache holds recently fetched profiles so reads can be served without
// a round trip. Entries are owner-scoped and expire after the configured TTL;
// a fresh fetch always supersedes whatever is cached.
type profileCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	profile   domain.Profile
	ownerID   string
	fetchedAt time.Time
}

func newProfileCache(ttl time.Duration) *profileCache {
	return &profileCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached profile for userID if the entry belongs to that
// user and has not outlived the TTL.
func (c *profileCache) get(userID string) (*domain.Profile, bool) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if entry.ownerID != userID {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	profile := entry.profile
	return &profile, true
}

func (c *profileCache) put(userID string, profile domain.Profile) {
	c.mu.Lock()
	c.entries[userID] = cacheEntry{profile: profile, ownerID: userID, fetchedAt: c.now()}
	c.mu.Unlock()
}

func (c *profileCache) invalidate(userID string) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}

func (c *profileCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
