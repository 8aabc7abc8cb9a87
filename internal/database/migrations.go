package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/movierental/rental/internal/audit"
	"github.com/movierental/rental/internal/movies"
	"github.com/movierental/rental/internal/rentals"
	"github.com/movierental/rental/internal/users"
)

// Indexes backing the rental store queries
var Indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_rentals_user_closed ON rentals (user_id, closed)",
	"CREATE INDEX IF NOT EXISTS idx_movies_rental_id ON movies (rental_id)",
	"CREATE INDEX IF NOT EXISTS idx_rental_audit_events_timestamp ON rental_audit_events (timestamp DESC)",
}

// CreateTables creates all necessary tables
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*users.UserSchema)(nil),
		(*rentals.RentalSchema)(nil),
		(*movies.MovieSchema)(nil),
		(*audit.Event)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates all necessary indexes
func CreateIndexes(ctx context.Context, db *bun.DB) error {
	for _, indexSQL := range Indexes {
		if _, err := db.ExecContext(ctx, indexSQL); err != nil {
			return fmt.Errorf("failed to create index with SQL %q: %w", indexSQL, err)
		}
	}
	return nil
}

// Migrate creates tables and indexes
func Migrate(ctx context.Context, db *bun.DB) error {
	if err := CreateTables(ctx, db); err != nil {
		return err
	}
	return CreateIndexes(ctx, db)
}
