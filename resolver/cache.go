package resolver

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCacheSize is the number of parsed documents a Cache keeps by default.
const DefaultCacheSize = 128

// Cache holds parsed sibling documents keyed by cleaned file name.
// It is safe for concurrent use; the cached trees themselves are read-only.
type Cache struct {
	lru *expirable.LRU[string, any]
}

// NewCache creates a Cache holding at most size documents, each for at most ttl.
// A non-positive size uses DefaultCacheSize; a zero ttl disables expiry.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{lru: expirable.NewLRU[string, any](size, nil, ttl)}
}

// Get returns the cached document for name.
func (c *Cache) Get(name string) (any, bool) {
	return c.lru.Get(name)
}

// Add stores doc under name, evicting the least recently used entry if full.
func (c *Cache) Add(name string, doc any) {
	c.lru.Add(name, doc)
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge removes every cached document.
func (c *Cache) Purge() {
	c.lru.Purge()
}
