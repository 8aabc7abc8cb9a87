package audit

import "context"

// Recorder records and reads back audit events
type Recorder interface {
	// Record validates and persists an event
	Record(ctx context.Context, event *Event) error

	// Recent returns the newest events first
	Recent(ctx context.Context, limit int) ([]*Event, error)

	// Summary aggregates the newest limit events
	Summary(ctx context.Context, limit int) (*Summary, error)
}

// Store defines the interface for audit event persistence
type Store interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListRecent(ctx context.Context, limit int) ([]*Event, error)
}
