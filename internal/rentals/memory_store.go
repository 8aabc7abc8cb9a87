package rentals

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/movierental/rental/internal/movies"
)

type rentalRecord struct {
	rental   Rental
	movieIDs []int64
}

// InMemoryStore implements RentalStore with in-memory storage
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	rentals  map[int64]*rentalRecord
	assigner movies.RentalAssigner
}

// NewInMemoryStore creates a new in-memory store. The assigner may be nil,
// in which case movie back-references are not maintained.
func NewInMemoryStore(assigner movies.RentalAssigner) *InMemoryStore {
	return &InMemoryStore{
		rentals:  make(map[int64]*rentalRecord),
		assigner: assigner,
	}
}

// List returns all rentals ordered by ID
func (s *InMemoryStore) List(ctx context.Context) ([]Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Rental, 0, len(s.rentals))
	for _, record := range s.rentals {
		out = append(out, record.rental)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID retrieves a rental by ID
func (s *InMemoryStore) GetByID(ctx context.Context, id int64) (*Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.rentals[id]
	if !exists {
		return nil, nil
	}
	rental := record.rental
	return &rental, nil
}

// GetByUserID returns the user's rentals with the given closed flag
func (s *InMemoryStore) GetByUserID(ctx context.Context, userID int64, closed bool) ([]Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Rental, 0)
	for _, record := range s.rentals {
		if record.rental.UserID == userID && record.rental.Closed == closed {
			out = append(out, record.rental)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create stores a new open rental
func (s *InMemoryStore) Create(ctx context.Context, payload *CreateRentalPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID + 1
	if s.assigner != nil {
		if err := s.assigner.AssignRental(ctx, payload.MovieIDs, id); err != nil {
			return fmt.Errorf("failed to attach movies to rental: %w", err)
		}
	}

	s.nextID = id
	s.rentals[id] = &rentalRecord{
		rental: Rental{
			ID:      id,
			Date:    payload.Date,
			EndDate: payload.EndDate,
			UserID:  payload.UserID,
		},
		movieIDs: append([]int64(nil), payload.MovieIDs...),
	}
	return nil
}

// Finish closes a rental. Finishing a closed rental is a no-op.
func (s *InMemoryStore) Finish(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.rentals[id]
	if !exists {
		return fmt.Errorf("rental with id %d not found", id)
	}

	if s.assigner != nil {
		if err := s.assigner.ReleaseRental(ctx, id); err != nil {
			return fmt.Errorf("failed to release movies of rental %d: %w", id, err)
		}
	}

	record.rental.Closed = true
	return nil
}

// movieIDs returns the movies attached to a rental
func (s *InMemoryStore) movieIDs(id int64) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.rentals[id]
	if !exists {
		return nil
	}
	return append([]int64(nil), record.movieIDs...)
}
