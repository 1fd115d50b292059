package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fitness-fanatics/fitness-api/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository handles user persistence.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. The unique index on email is the
// authority on duplicates; a violation surfaces as ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, firstName, lastName, email, passwordHash string) (*User, error) {
	dbUser := &database.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", email).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// UpdateProfile overwrites the profile fields of the given user and
// returns the updated record.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfileUpdate) (*User, error) {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("first_name = ?", patch.FirstName).
		Set("last_name = ?", patch.LastName).
		Set("user_name = ?", patch.UserName).
		Set("gender = ?", patch.Gender).
		Set("city_of_residence = ?", patch.City).
		Set("weight = ?", patch.Weight).
		Set("birth_date = ?", patch.BirthDate).
		Set("motivation = ?", patch.Motivation).
		Set("updated_at = NOW()").
		Where("id = ?", id)

	if patch.PasswordHash != nil {
		q = q.Set("password_hash = ?", *patch.PasswordHash)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// UpdatePassword overwrites a user's password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBUserToModel converts the bun row to the domain model.
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		FirstName:    dbu.FirstName,
		LastName:     dbu.LastName,
		Email:        dbu.Email,
		PasswordHash: dbu.PasswordHash,
		UserName:     dbu.UserName,
		Gender:       dbu.Gender,
		City:         dbu.City,
		Weight:       dbu.Weight,
		BirthDate:    dbu.BirthDate,
		Motivation:   dbu.Motivation,
		CreatedAt:    dbu.CreatedAt,
		UpdatedAt:    dbu.UpdatedAt,
	}
}
