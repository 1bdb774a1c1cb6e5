// Package memory holds the process-lifetime record collection.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

// ErrRecordNotFound is returned when no record carries the requested id.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateID is returned when appending a record whose id is taken.
var ErrDuplicateID = errors.New("duplicate record id")

// Repository defines the record collection operations used by services.
type Repository interface {
	Append(ctx context.Context, record models.QCRecord) error
	List(ctx context.Context) ([]models.QCRecord, error)
	Get(ctx context.Context, id string) (models.QCRecord, error)
	Len() int
}

// Store is an append-only, most-recent-first record collection. Records are
// held oldest-first so appends are amortized O(1); List reverses them. Records
// are cloned on the way in and on the way out.
type Store struct {
	mu      sync.RWMutex
	records []models.QCRecord
	byID    map[string]int
}

// NewStore creates a store seeded with records given most-recent-first. The
// first record of a repeated id wins.
func NewStore(seed []models.QCRecord) *Store {
	unique := make([]models.QCRecord, 0, len(seed))
	seen := make(map[string]struct{}, len(seed))
	for _, rec := range seed {
		if _, exists := seen[rec.ID]; exists {
			continue
		}
		seen[rec.ID] = struct{}{}
		unique = append(unique, rec)
	}

	s := &Store{
		records: make([]models.QCRecord, 0, len(unique)),
		byID:    make(map[string]int, len(unique)),
	}
	for i := len(unique) - 1; i >= 0; i-- {
		s.push(unique[i])
	}
	return s
}

// Append places record at the front of the collection.
func (s *Store) Append(_ context.Context, record models.QCRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[record.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, record.ID)
	}
	s.push(record)
	return nil
}

func (s *Store) push(record models.QCRecord) {
	s.records = append(s.records, record.Clone())
	s.byID[record.ID] = len(s.records) - 1
}

// List returns a snapshot of every record, most recent first.
func (s *Store) List(_ context.Context) ([]models.QCRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	out := make([]models.QCRecord, n)
	for i, rec := range s.records {
		out[n-1-i] = rec.Clone()
	}
	return out, nil
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(_ context.Context, id string) (models.QCRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return models.QCRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return s.records[idx].Clone(), nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
