package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// MovieSchema represents the movies table schema in PostgreSQL
type MovieSchema struct {
	bun.BaseModel `bun:"table:movies,alias:m"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	Name       string `bun:"name,notnull" json:"name"`
	AdultsOnly bool   `bun:"adults_only,notnull,default:false" json:"adults_only"`
	RentalID   *int64 `bun:"rental_id,nullzero" json:"rental_id,omitempty"`
}

// PostgresStore implements MovieStore using PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL movie store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetByID retrieves a movie by ID
func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*Movie, error) {
	var schema MovieSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return schemaToMovie(schema), nil
}

// CreateMovie inserts a movie and fills in the generated ID
func (s *PostgresStore) CreateMovie(ctx context.Context, movie *Movie) error {
	schema := MovieSchema{
		ID:         movie.ID,
		Name:       movie.Name,
		AdultsOnly: movie.AdultsOnly,
		RentalID:   movie.RentalID,
	}

	_, err := s.db.NewInsert().
		Model(&schema).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	movie.ID = schema.ID
	return nil
}

func schemaToMovie(schema MovieSchema) *Movie {
	return &Movie{
		ID:         schema.ID,
		Name:       schema.Name,
		AdultsOnly: schema.AdultsOnly,
		RentalID:   schema.RentalID,
	}
}
