// Package analytics records client usage events. Writes are
// fire-and-forget: nothing downstream depends on them and a failed write
// never affects a turn.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one client-reported usage event.
type Event struct {
	ID        string         `json:"id"`
	SessionID string         `json:"sessionId"`
	EventType string         `json:"eventType"`
	EventData map[string]any `json:"eventData,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Service appends events in memory and serves aggregate counts.
type Service struct {
	mu     sync.RWMutex
	events []Event
	counts map[string]int
}

// NewService bootstraps the in-memory event log.
func NewService() *Service {
	return &Service{
		events: make([]Event, 0, 64),
		counts: make(map[string]int),
	}
}

// Record appends an event, assigning id and timestamp.
func (s *Service) Record(_ context.Context, event Event) Event {
	event.ID = uuid.NewString()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.counts[event.EventType]++
	s.mu.Unlock()

	return event
}

// Summary returns the number of recorded events per type.
func (s *Service) Summary(_ context.Context) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[string]int, len(s.counts))
	for eventType, count := range s.counts {
		copied[eventType] = count
	}
	return copied
}
