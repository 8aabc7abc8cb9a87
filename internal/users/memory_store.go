package users

import (
	"context"
	"sync"
)

// InMemoryStore implements UserStore with in-memory storage
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*User
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: make(map[int64]*User),
	}
}

// CreateUser stores a copy of the user. A zero ID is replaced by the next
// sequential ID.
func (s *InMemoryStore) CreateUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		s.nextID++
		user.ID = s.nextID
	} else if user.ID > s.nextID {
		s.nextID = user.ID
	}

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// GetByID retrieves a user by ID
func (s *InMemoryStore) GetByID(ctx context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, nil
	}

	out := *user
	return &out, nil
}
