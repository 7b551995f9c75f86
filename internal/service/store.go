package service

import (
	"github.com/danielmriley/aigent-sub002/internal/domain"
	"github.com/google/uuid"
)

// entrySet is the manager's in-memory view of the log: insertion-ordered,
// deduplicated by entry id so duplicate replayed events are harmless.
type entrySet struct {
	entries []domain.MemoryEntry
	byID    map[uuid.UUID]int
}

func newEntrySet() *entrySet {
	return &entrySet{byID: make(map[uuid.UUID]int)}
}

// insert adds an entry unless its id is already present. Reports whether
// the entry was added.
func (s *entrySet) insert(entry domain.MemoryEntry) bool {
	if _, ok := s.byID[entry.ID]; ok {
		return false
	}
	s.byID[entry.ID] = len(s.entries)
	s.entries = append(s.entries, entry)
	return true
}

// all returns the live slice; callers must copy before leaving the
// manager's lock.
func (s *entrySet) all() []domain.MemoryEntry {
	return s.entries
}

// snapshot returns a defensive copy safe to use outside the lock.
func (s *entrySet) snapshot() []domain.MemoryEntry {
	out := make([]domain.MemoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *entrySet) len() int {
	return len(s.entries)
}

func (s *entrySet) clear() {
	s.entries = nil
	s.byID = make(map[uuid.UUID]int)
}

// retain keeps only entries for which keep returns true and reports how
// many were removed.
func (s *entrySet) retain(keep func(domain.MemoryEntry) bool) int {
	before := len(s.entries)
	kept := s.entries[:0]
	for _, entry := range s.entries {
		if keep(entry) {
			kept = append(kept, entry)
		}
	}
	s.entries = kept
	s.byID = make(map[uuid.UUID]int, len(s.entries))
	for i, entry := range s.entries {
		s.byID[entry.ID] = i
	}
	return before - len(s.entries)
}
