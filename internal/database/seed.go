package database

import (
	"context"
	"fmt"
	"time"

	"github.com/movierental/rental/internal/movies"
	"github.com/movierental/rental/internal/users"
)

// UserCreator is implemented by the user stores
type UserCreator interface {
	CreateUser(ctx context.Context, user *users.User) error
}

// MovieCreator is implemented by the movie stores
type MovieCreator interface {
	CreateMovie(ctx context.Context, movie *movies.Movie) error
}

// SeedUsers returns the demo users inserted by Seed
func SeedUsers() []users.User {
	return []users.User{
		{FirstName: "Ana", LastName: "Souza", Email: "ana.souza@example.com", CPF: "000.000.000-01", BirthDate: time.Date(1990, time.May, 4, 0, 0, 0, 0, time.UTC)},
		{FirstName: "Bruno", LastName: "Lima", Email: "bruno.lima@example.com", CPF: "000.000.000-02", BirthDate: time.Date(2012, time.January, 20, 0, 0, 0, 0, time.UTC)},
	}
}

// SeedMovies returns the demo movies inserted by Seed
func SeedMovies() []movies.Movie {
	return []movies.Movie{
		{Name: "The Matrix"},
		{Name: "Spirited Away"},
		{Name: "Heat", AdultsOnly: true},
	}
}

// Seed inserts demo users and movies
func Seed(ctx context.Context, userStore UserCreator, movieStore MovieCreator) error {
	for _, user := range SeedUsers() {
		if err := userStore.CreateUser(ctx, &user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", user.Email, err)
		}
	}
	for _, movie := range SeedMovies() {
		if err := movieStore.CreateMovie(ctx, &movie); err != nil {
			return fmt.Errorf("failed to seed movie %s: %w", movie.Name, err)
		}
	}
	return nil
}
