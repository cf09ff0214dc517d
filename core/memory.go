package core

import (
	"sync"
)

// Kind classifies a memory entry by its conversational role.
type Kind string

const (
	// KindUser marks an entry authored by the end user.
	KindUser Kind = "user"
	// KindAssistant marks an entry authored by an agent.
	KindAssistant Kind = "assistant"
	// KindSystem marks an entry injected by the framework (instructions,
	// audit records).
	KindSystem Kind = "system"
)

// Entry is a single immutable unit of conversational memory. Identity within
// a log is positional; entries carry no persisted identifier.
type Entry struct {
	Kind     Kind           `json:"kind"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MemoryLog is an ordered, append-only sequence of entries representing a
// conversation. It is the unit of context exchanged between agents and is
// safe for concurrent access.
//
// Contract:
//   - Entries are never mutated, reordered or removed once appended
//   - Entries returns a defensive copy to avoid external mutation
//   - Copies built for isolation or selection are disjoint logs, never a
//     mutated alias of the original.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryLog creates a log pre-populated with the given entries.
func NewMemoryLog(entries ...Entry) *MemoryLog {
	log := &MemoryLog{entries: make([]Entry, len(entries))}
	copy(log.entries, entries)
	return log
}

// Append adds an entry to the end of the log. The only validation is that
// the entry carries a non-empty kind.
func (l *MemoryLog) Append(entry Entry) error {
	if entry.Kind == "" {
		return ErrEmptyKind
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

// Entries returns a read-only ordered view (defensive copy) of the log.
func (l *MemoryLog) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Last returns the most recent entry or ErrEmptyLog if no entries exist.
// This is the terminal-result extraction point used by the delegation engine.
func (l *MemoryLog) Last() (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return Entry{}, ErrEmptyLog
	}
	return l.entries[len(l.entries)-1], nil
}

// Len returns the number of entries in the log.
func (l *MemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Subset builds a fresh, disjoint log containing exactly the entries at the
// given positions, in their original relative order. Positions out of range
// are skipped. The receiver is left untouched.
func (l *MemoryLog) Subset(indices []int) *MemoryLog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	wanted := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		wanted[i] = struct{}{}
	}
	subset := make([]Entry, 0, len(wanted))
	for i, e := range l.entries {
		if _, ok := wanted[i]; ok {
			subset = append(subset, e)
		}
	}
	return NewMemoryLog(subset...)
}

// Clone returns a disjoint copy of the log safe for independent mutation.
func (l *MemoryLog) Clone() *MemoryLog {
	return NewMemoryLog(l.Entries()...)
}
