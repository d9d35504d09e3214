package finvest

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the in-memory asset collection backing the dashboard. It is
// the only mutable state in the application and it dies with the
// process: there is no persistence layer behind it.
//
// The mutex exists for the HTTP presentation layer; mutations are
// otherwise rare, explicit and user initiated.
type Store struct {
	mu     sync.RWMutex
	assets []Asset
}

// NewStore returns a store holding a copy of the given assets.
func NewStore(assets ...Asset) *Store {
	s := &Store{assets: make([]Asset, len(assets))}
	copy(s.assets, assets)
	return s
}

// Add appends the asset under a freshly assigned id and returns the
// stored copy.
func (s *Store) Add(a Asset) Asset {
	a.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append(s.assets, a)
	return a
}

// Remove deletes the asset with the given id, reporting whether it was
// present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.assets {
		if a.ID == id {
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			return true
		}
	}
	return false
}

// Assets returns a copy of the current collection. Consumers derive
// summaries from the copy; a later mutation of the store makes any
// derived figure stale, which is why they are recomputed on every read.
func (s *Store) Assets() []Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assets := make([]Asset, len(s.assets))
	copy(assets, s.assets)
	return assets
}

// Len returns the number of assets held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}
