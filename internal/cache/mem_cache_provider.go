package cache

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

type MemCache struct {
	cache map[string]memEntry
	mutex sync.RWMutex
	now   func() time.Time
}

func NewMemCache() *MemCache {
	return &MemCache{
		cache: make(map[string]memEntry),
		now:   time.Now,
	}
}

// Get returns the value for key unless it is missing or expired. Expired entries are
// evicted on read.
func (d *MemCache) Get(_ context.Context, key string) ([]byte, bool) {
	d.mutex.RLock()
	entry, exists := d.cache[key]
	d.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	if !d.now().Before(entry.expiresAt) {
		d.mutex.Lock()
		if current, ok := d.cache[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(d.cache, key)
		}
		d.mutex.Unlock()
		return nil, false
	}

	return entry.value, true
}

func (d *MemCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.cache[key] = memEntry{
		value:     value,
		expiresAt: d.now().Add(ttl),
	}
}

func (d *MemCache) Delete(_ context.Context, key string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	delete(d.cache, key)
}

// Size returns the number of stored entries, including expired ones not yet evicted.
func (d *MemCache) Size(_ context.Context) int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return len(d.cache)
}
