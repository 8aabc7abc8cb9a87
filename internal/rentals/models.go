package rentals

import (
	"fmt"
	"time"
)

// Rental links a user to one or more movies for a bounded period
type Rental struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	EndDate time.Time `json:"end_date"`
	UserID  int64     `json:"user_id"`
	Closed  bool      `json:"closed"`
}

// CreateRentalRequest represents the request to open a rental
type CreateRentalRequest struct {
	UserID   int64   `json:"user_id"`
	MovieIDs []int64 `json:"movie_ids"`
}

// Validate validates the create rental request
func (r *CreateRentalRequest) Validate() error {
	if r.UserID < 0 {
		return fmt.Errorf("user_id cannot be negative")
	}
	if len(r.MovieIDs) == 0 {
		return fmt.Errorf("movie_ids must contain at least one movie")
	}

	seen := make(map[int64]bool, len(r.MovieIDs))
	for _, id := range r.MovieIDs {
		if id < 0 {
			return fmt.Errorf("movie id %d cannot be negative", id)
		}
		if seen[id] {
			return fmt.Errorf("movie id %d is listed more than once", id)
		}
		seen[id] = true
	}
	return nil
}

// CreateRentalPayload is the validated write handed to the rental store
type CreateRentalPayload struct {
	UserID   int64
	MovieIDs []int64
	Date     time.Time
	EndDate  time.Time
}
