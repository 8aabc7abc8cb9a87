package users

import (
	"time"
)

// User represents a customer that can rent movies
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	BirthDate time.Time `json:"birth_date"`
}

// AgeAt returns the user's age in whole years on the given instant.
// Birth dates are calendar dates stored as UTC midnight, so the instant is
// compared on its UTC calendar date.
func (u *User) AgeAt(at time.Time) int {
	by, bm, bd := u.BirthDate.Date()
	ay, am, ad := at.UTC().Date()

	years := ay - by
	if am < bm || (am == bm && ad < bd) {
		years--
	}
	return years
}
