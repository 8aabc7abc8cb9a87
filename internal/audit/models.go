package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Event is an audit entry for one call to the rental API
type Event struct {
	bun.BaseModel `bun:"table:rental_audit_events,alias:rae"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Operation  string    `bun:"operation,notnull" json:"operation"` // e.g. "create_rental", "finish_rental"
	Method     string    `bun:"method,notnull" json:"method"`
	Endpoint   string    `bun:"endpoint,notnull" json:"endpoint"`
	RequestID  string    `bun:"request_id" json:"request_id,omitempty"`
	RentalID   *int64    `bun:"rental_id" json:"rental_id,omitempty"`
	StatusCode int       `bun:"status_code,notnull" json:"status_code"`
	Success    bool      `bun:"success,notnull,default:true" json:"success"`
	ErrorMsg   string    `bun:"error_msg" json:"error_msg,omitempty"`
	DurationMs int64     `bun:"duration_ms,notnull,default:0" json:"duration_ms"`
	Timestamp  time.Time `bun:"timestamp,notnull,default:current_timestamp" json:"timestamp"`
}

// Validate validates the audit event
func (e *Event) Validate() error {
	if e.Operation == "" {
		return fmt.Errorf("operation cannot be empty")
	}
	if e.Method == "" {
		return fmt.Errorf("method cannot be empty")
	}
	if e.Endpoint == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}
	if e.StatusCode < 100 || e.StatusCode > 599 {
		return fmt.Errorf("status code %d out of range", e.StatusCode)
	}
	return nil
}
