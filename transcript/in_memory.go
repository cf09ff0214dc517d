package transcript

import (
	"sort"
	"sync"
)

// InMemoryStore is a volatile Store implementation keeping records in a
// process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo hosts. Returned records carry a copied entry slice
// to prevent external mutation of internal state.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

// Save stores a copy of the record keyed by its id.
func (s *InMemoryStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

// Get returns the record for id or ErrNotFound.
func (s *InMemoryStore) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// List returns all record ids, sorted.
func (s *InMemoryStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func cloneRecord(rec Record) Record {
	clone := rec
	clone.Entries = append(clone.Entries[:0:0], rec.Entries...)
	return clone
}
