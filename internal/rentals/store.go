package rentals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/movierental/rental/internal/movies"
)

// RentalSchema represents the rentals table schema in PostgreSQL
type RentalSchema struct {
	bun.BaseModel `bun:"table:rentals,alias:r"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Date      time.Time `bun:"date,notnull,default:current_timestamp" json:"date"`
	EndDate   time.Time `bun:"end_date,notnull" json:"end_date"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id"`
	Closed    bool      `bun:"closed,notnull,default:false" json:"closed"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// PostgresStore implements RentalStore with PostgreSQL storage. Movie
// back-references live on the movies table and are written in the same
// transaction as the rental.
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL rental store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// List returns all rentals ordered by ID
func (s *PostgresStore) List(ctx context.Context) ([]Rental, error) {
	var schemas []RentalSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	return schemasToRentals(schemas), nil
}

// GetByID retrieves a rental by ID
func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*Rental, error) {
	var schema RentalSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}

	rental := schemaToRental(schema)
	return &rental, nil
}

// GetByUserID returns the user's rentals with the given closed flag
func (s *PostgresStore) GetByUserID(ctx context.Context, userID int64, closed bool) ([]Rental, error) {
	var schemas []RentalSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Where("user_id = ?", userID).
		Where("closed = ?", closed).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rentals for user %d: %w", userID, err)
	}
	return schemasToRentals(schemas), nil
}

// Create inserts the rental and attaches its movies
func (s *PostgresStore) Create(ctx context.Context, payload *CreateRentalPayload) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		schema := &RentalSchema{
			Date:      payload.Date,
			EndDate:   payload.EndDate,
			UserID:    payload.UserID,
			UpdatedAt: payload.Date,
		}

		_, err := tx.NewInsert().
			Model(schema).
			Returning("id").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create rental: %w", err)
		}

		if len(payload.MovieIDs) == 0 {
			return nil
		}

		result, err := tx.NewUpdate().
			Model((*movies.MovieSchema)(nil)).
			Set("rental_id = ?", schema.ID).
			Where("id IN (?)", bun.In(payload.MovieIDs)).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to attach movies to rental: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected != int64(len(payload.MovieIDs)) {
			return fmt.Errorf("attached %d of %d movies to rental %d", rowsAffected, len(payload.MovieIDs), schema.ID)
		}
		return nil
	})
}

// Finish closes the rental and releases its movies
func (s *PostgresStore) Finish(ctx context.Context, id int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*RentalSchema)(nil)).
			Set("closed = ?", true).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to finish rental: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("rental with id %d not found", id)
		}

		_, err = tx.NewUpdate().
			Model((*movies.MovieSchema)(nil)).
			Set("rental_id = NULL").
			Where("rental_id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to release movies of rental %d: %w", id, err)
		}
		return nil
	})
}

func schemaToRental(schema RentalSchema) Rental {
	return Rental{
		ID:      schema.ID,
		Date:    schema.Date,
		EndDate: schema.EndDate,
		UserID:  schema.UserID,
		Closed:  schema.Closed,
	}
}

func schemasToRentals(schemas []RentalSchema) []Rental {
	out := make([]Rental, 0, len(schemas))
	for _, schema := range schemas {
		out = append(out, schemaToRental(schema))
	}
	return out
}
