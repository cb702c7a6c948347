package badger

import (
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/ordino/internal/models"
)

// StoredResult wraps a categorization record with its persistence timestamp.
type StoredResult struct {
	ID        string `badgerhold:"key"`
	CreatedAt time.Time
	Result    models.CombinedCategorization
}

// ResultStorage persists categorization output records.
type ResultStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewResultStorage creates a result store over an open database.
func NewResultStorage(db *BadgerDB, logger arbor.ILogger) *ResultStorage {
	return &ResultStorage{
		db:     db,
		logger: logger,
	}
}

// SaveResult persists one categorization record keyed by its result ID.
func (s *ResultStorage) SaveResult(result *models.CombinedCategorization) error {
	if result.ID == "" {
		return fmt.Errorf("result ID is required")
	}

	record := StoredResult{
		ID:        result.ID,
		CreatedAt: time.Now(),
		Result:    *result,
	}
	if err := s.db.Store().Upsert(result.ID, record); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// SaveResults persists a batch of records, stopping at the first failure.
func (s *ResultStorage) SaveResults(results []*models.CombinedCategorization) error {
	for _, result := range results {
		if err := s.SaveResult(result); err != nil {
			return err
		}
	}
	return nil
}

// GetResult returns a persisted record by its result ID.
func (s *ResultStorage) GetResult(id string) (*models.CombinedCategorization, error) {
	var record StoredResult
	if err := s.db.Store().Get(id, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("result not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return &record.Result, nil
}

// ListResults returns the most recently stored records, newest first.
func (s *ResultStorage) ListResults(limit int) ([]*models.CombinedCategorization, error) {
	var records []StoredResult
	query := (&badgerhold.Query{}).SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]*models.CombinedCategorization, len(records))
	for i := range records {
		results[i] = &records[i].Result
	}
	return results, nil
}

// DeleteResult removes a persisted record. Deleting a missing ID is a no-op.
func (s *ResultStorage) DeleteResult(id string) error {
	if err := s.db.Store().Delete(id, &StoredResult{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}
