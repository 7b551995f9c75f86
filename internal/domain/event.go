package domain

import (
	"time"

	"github.com/google/uuid"
)

// MemoryRecordEvent is the durability envelope written to the event log.
// The log is the source of truth: tier membership and content change only by
// appending a new event, never by rewriting an old one.
type MemoryRecordEvent struct {
	EventID    uuid.UUID   `json:"event_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Entry      MemoryEntry `json:"entry"`
}

// NewRecordEvent wraps an entry in a fresh envelope.
func NewRecordEvent(entry MemoryEntry) MemoryRecordEvent {
	return MemoryRecordEvent{
		EventID:    uuid.New(),
		OccurredAt: time.Now().UTC(),
		Entry:      entry,
	}
}
