package movies

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryStore implements MovieStore and RentalAssigner with in-memory storage
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	movies map[int64]*Movie
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		movies: make(map[int64]*Movie),
	}
}

// CreateMovie stores a copy of the movie. A zero ID is replaced by the next
// sequential ID.
func (s *InMemoryStore) CreateMovie(ctx context.Context, movie *Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if movie.ID == 0 {
		s.nextID++
		movie.ID = s.nextID
	} else if movie.ID > s.nextID {
		s.nextID = movie.ID
	}

	s.movies[movie.ID] = copyMovie(movie)
	return nil
}

// GetByID retrieves a movie by ID
func (s *InMemoryStore) GetByID(ctx context.Context, id int64) (*Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movie, exists := s.movies[id]
	if !exists {
		return nil, nil
	}
	return copyMovie(movie), nil
}

// AssignRental marks every listed movie as belonging to the rental
func (s *InMemoryStore) AssignRental(ctx context.Context, movieIDs []int64, rentalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range movieIDs {
		if _, exists := s.movies[id]; !exists {
			return fmt.Errorf("movie with id %d not found", id)
		}
	}
	for _, id := range movieIDs {
		rid := rentalID
		s.movies[id].RentalID = &rid
	}
	return nil
}

// ReleaseRental clears the rental reference of every movie in the rental
func (s *InMemoryStore) ReleaseRental(ctx context.Context, rentalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, movie := range s.movies {
		if movie.RentalID != nil && *movie.RentalID == rentalID {
			movie.RentalID = nil
		}
	}
	return nil
}

func copyMovie(m *Movie) *Movie {
	out := *m
	if m.RentalID != nil {
		rid := *m.RentalID
		out.RentalID = &rid
	}
	return &out
}
