package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/movierental/rental/internal/zerrors"
)

// DefaultLimit is used when Recent is called without a positive limit
const DefaultLimit = 100

type recorder struct {
	store Store
}

// NewRecorder creates a new audit recorder
func NewRecorder(store Store) Recorder {
	return &recorder{
		store: store,
	}
}

// Record fills in the ID and timestamp when missing and persists the event
func (r *recorder) Record(ctx context.Context, event *Event) error {
	if event == nil {
		return zerrors.NewValidationError("audit event cannot be nil", nil)
	}
	if err := event.Validate(); err != nil {
		return zerrors.NewValidationError("invalid audit event", err)
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := r.store.CreateEvent(ctx, event); err != nil {
		return zerrors.NewInternalError("failed to create audit event", err)
	}
	return nil
}

// Recent returns the newest audit events first
func (r *recorder) Recent(ctx context.Context, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	events, err := r.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, zerrors.NewInternalError("failed to list audit events", err)
	}
	return events, nil
}

// Summary aggregates the most recent events
func (r *recorder) Summary(ctx context.Context, limit int) (*Summary, error) {
	events, err := r.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return Summarize(events), nil
}
