package users

import (
	"context"
)

// UserStore defines the interface for user storage operations.
// GetByID returns (nil, nil) when the user does not exist.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*User, error)
}
