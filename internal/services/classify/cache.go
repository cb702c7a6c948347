package classify

import (
	"sync"
)

// MemoryEmbeddingCache is a process-lifetime in-memory embedding cache safe
// for concurrent use.
type MemoryEmbeddingCache struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewMemoryEmbeddingCache creates an empty embedding cache.
func NewMemoryEmbeddingCache() *MemoryEmbeddingCache {
	return &MemoryEmbeddingCache{
		vectors: make(map[string][]float32),
	}
}

// Get returns the cached vector for a category key, if present.
func (c *MemoryEmbeddingCache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vectors[key]
	return v, ok
}

// Put stores a vector for a category key.
func (c *MemoryEmbeddingCache) Put(key string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors[key] = vector
}
