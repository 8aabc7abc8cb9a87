package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	FirstName string    `bun:"first_name,notnull" json:"first_name"`
	LastName  string    `bun:"last_name,notnull" json:"last_name"`
	Email     string    `bun:"email,notnull,unique" json:"email"`
	CPF       string    `bun:"cpf,notnull,unique" json:"cpf"`
	BirthDate time.Time `bun:"birth_date,notnull,type:date" json:"birth_date"`
}

// UserStoreImpl implements the UserStore interface
type UserStoreImpl struct {
	db *bun.DB
}

// NewUserStore creates a new user store instance
func NewUserStore(db *bun.DB) *UserStoreImpl {
	return &UserStoreImpl{
		db: db,
	}
}

// GetByID retrieves a user by ID
func (s *UserStoreImpl) GetByID(ctx context.Context, id int64) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return UserSchemaToUser(schema), nil
}

// CreateUser inserts a user and fills in the generated ID
func (s *UserStoreImpl) CreateUser(ctx context.Context, user *User) error {
	schema := UserToUserSchema(user)

	_, err := s.db.NewInsert().
		Model(&schema).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = schema.ID
	return nil
}

// Helper conversion functions
func UserSchemaToUser(schema UserSchema) *User {
	return &User{
		ID:        schema.ID,
		FirstName: schema.FirstName,
		LastName:  schema.LastName,
		Email:     schema.Email,
		CPF:       schema.CPF,
		BirthDate: schema.BirthDate,
	}
}

func UserToUserSchema(user *User) UserSchema {
	return UserSchema{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CPF:       user.CPF,
		BirthDate: user.BirthDate,
	}
}
