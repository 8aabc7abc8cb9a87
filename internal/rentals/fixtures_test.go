package rentals

import (
	"time"

	"github.com/movierental/rental/internal/movies"
	"github.com/movierental/rental/internal/users"
)

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestRental(id int64) Rental {
	return Rental{
		ID:      id,
		Date:    fixedNow.Add(-24 * time.Hour),
		EndDate: fixedNow.Add(48 * time.Hour),
		UserID:  id + 100,
		Closed:  false,
	}
}

func newTestUser(id int64) *users.User {
	return &users.User{
		ID:        id,
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		CPF:       "000.000.000-00",
		BirthDate: time.Date(1990, time.May, 4, 0, 0, 0, 0, time.UTC),
	}
}

func newMinorUser(id int64) *users.User {
	user := newTestUser(id)
	user.BirthDate = fixedNow.AddDate(-16, 0, 0)
	return user
}

func newTestMovie(id int64) *movies.Movie {
	return &movies.Movie{
		ID:         id,
		Name:       "The Matrix",
		AdultsOnly: false,
	}
}
