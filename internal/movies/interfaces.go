package movies

import "context"

// MovieStore defines the interface for movie storage operations.
// GetByID returns (nil, nil) when the movie does not exist.
type MovieStore interface {
	GetByID(ctx context.Context, id int64) (*Movie, error)
}

// RentalAssigner keeps the rental_id back-reference of movies in sync with
// rental writes. The Postgres rental store does this inside its own
// transaction; the in-memory rental store delegates to an assigner.
type RentalAssigner interface {
	AssignRental(ctx context.Context, movieIDs []int64, rentalID int64) error
	ReleaseRental(ctx context.Context, rentalID int64) error
}
