package badger

import (
	"errors"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
)

// embeddingRecord is one persisted category-description embedding.
type embeddingRecord struct {
	Key    string
	Vector []float32
}

// EmbeddingCache is a persistent embedding cache. Unlike the in-memory cache
// it survives process restarts, so category descriptions are embedded once
// per taxonomy rather than once per run. Failures degrade to cache misses.
type EmbeddingCache struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewEmbeddingCache creates an embedding cache over an open database.
func NewEmbeddingCache(db *BadgerDB, logger arbor.ILogger) *EmbeddingCache {
	return &EmbeddingCache{
		db:     db,
		logger: logger,
	}
}

// Get returns the persisted vector for a category key, if present.
func (c *EmbeddingCache) Get(key string) ([]float32, bool) {
	var record embeddingRecord
	if err := c.db.Store().Get("embedding:"+key, &record); err != nil {
		if !errors.Is(err, badgerhold.ErrNotFound) {
			c.logger.Warn().Err(err).Str("key", key).Msg("Embedding cache read failed")
		}
		return nil, false
	}
	return record.Vector, true
}

// Put persists a vector for a category key. Write failures are logged and
// treated as a miss on the next read.
func (c *EmbeddingCache) Put(key string, vector []float32) {
	record := embeddingRecord{Key: key, Vector: vector}
	if err := c.db.Store().Upsert("embedding:"+key, record); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Embedding cache write failed")
	}
}
