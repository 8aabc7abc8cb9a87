package audit

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore implements Store with in-memory storage
type InMemoryStore struct {
	mu     sync.RWMutex
	events []*Event
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// CreateEvent stores a copy of the event
func (s *InMemoryStore) CreateEvent(ctx context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *event
	s.events = append(s.events, &stored)
	return nil
}

// ListRecent returns up to limit events, newest first
func (s *InMemoryStore) ListRecent(ctx context.Context, limit int) ([]*Event, error) {
	s.mu.RLock()
	out := make([]*Event, 0, len(s.events))
	for _, event := range s.events {
		copied := *event
		out = append(out, &copied)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
