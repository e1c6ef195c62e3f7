package services

import (
	"sync"
	"time"
)

type adminEntry struct {
	isAdmin   bool
	expiresAt time.Time
}

// AdminStatusCache memoizes admin-role lookups with a TTL so the
// authorization middleware does not hit the database on every request.
// The clock is injected to keep expiry testable.
type AdminStatusCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[int]adminEntry
}

func NewAdminStatusCache(ttl time.Duration, now func() time.Time) *AdminStatusCache {
	if now == nil {
		now = time.Now
	}
	return &AdminStatusCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[int]adminEntry),
	}
}

// Get reports the cached admin status for the user and whether a live
// entry was found. Expired entries count as missing.
func (c *AdminStatusCache) Get(userID int) (isAdmin, ok bool) {
	c.mu.RLock()
	entry, found := c.entries[userID]
	c.mu.RUnlock()

	if !found || c.now().After(entry.expiresAt) {
		return false, false
	}
	return entry.isAdmin, true
}

func (c *AdminStatusCache) Set(userID int, isAdmin bool) {
	c.mu.Lock()
	c.entries[userID] = adminEntry{
		isAdmin:   isAdmin,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate drops the entry for a user, e.g. after a role change.
func (c *AdminStatusCache) Invalidate(userID int) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}
