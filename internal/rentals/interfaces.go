package rentals

import "context"

// RentalStore defines the interface for rental persistence.
// GetByID returns (nil, nil) when the rental does not exist.
type RentalStore interface {
	List(ctx context.Context) ([]Rental, error)
	GetByID(ctx context.Context, id int64) (*Rental, error)
	GetByUserID(ctx context.Context, userID int64, closed bool) ([]Rental, error)
	Create(ctx context.Context, payload *CreateRentalPayload) error
	Finish(ctx context.Context, id int64) error
}

// RentalManager defines the rental lifecycle operations
type RentalManager interface {
	ListRentals(ctx context.Context) ([]Rental, error)
	GetRentalByID(ctx context.Context, id int64) (*Rental, error)
	CreateRental(ctx context.Context, req *CreateRentalRequest) error
	FinishRental(ctx context.Context, id int64) error
}

// OperationRecorder receives the outcome of every service operation
type OperationRecorder interface {
	ObserveRentalOperation(operation, outcome string)
}
