package audit

import (
	"context"

	"github.com/uptrace/bun"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL audit store
func NewPostgresStore(db *bun.DB) Store {
	return &PostgresStore{db: db}
}

// CreateEvent persists a new audit event
func (s *PostgresStore) CreateEvent(ctx context.Context, event *Event) error {
	_, err := s.db.NewInsert().Model(event).Exec(ctx)
	return err
}

// ListRecent returns up to limit events, newest first
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*Event, error) {
	var events []*Event
	err := s.db.NewSelect().
		Model(&events).
		Order("timestamp DESC").
		Limit(limit).
		Scan(ctx)
	return events, err
}
