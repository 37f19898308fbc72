package avatar

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	model "github.com/zhouzirui/avatar-smoke/internal/model/avatar"
)

// Entry is one cached /tts answer.
type Entry struct {
	ID       string
	Key      string
	Response model.Response
	StoredAt time.Time
}

// Cache keeps recent responses keyed by normalized message. A non-positive TTL
// disables caching.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]Entry
	now     func() time.Time
}

// NewCache bootstraps an empty in-memory cache.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get returns a live entry for key.
func (c *Cache) Get(key string) (Entry, bool) {
	if c.ttl <= 0 {
		return Entry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.expired(entry) {
		return Entry{}, false
	}
	return entry, true
}

// Put stores resp under key, replacing any previous entry.
func (c *Cache) Put(key string, resp model.Response) Entry {
	entry := Entry{
		ID:       uuid.NewString(),
		Key:      key,
		Response: resp,
		StoredAt: c.now().UTC(),
	}
	if c.ttl <= 0 {
		return entry
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return entry
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep purges expired entries every interval until done is closed.
func (c *Cache) Sweep(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if n := c.Purge(); n > 0 {
				log.Printf("[cache] purged %d expired responses", n)
			}
		}
	}
}

func (c *Cache) expired(entry Entry) bool {
	return c.now().Sub(entry.StoredAt) >= c.ttl
}
