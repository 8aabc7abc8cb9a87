package movies

// Movie represents a rentable title
type Movie struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	AdultsOnly bool   `json:"adults_only"`
	RentalID   *int64 `json:"rental_id,omitempty"`
}

// InRental reports whether the movie currently belongs to a rental
func (m *Movie) InRental() bool {
	return m.RentalID != nil
}
