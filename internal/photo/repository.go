package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fitness-fanatics/fitness-api/internal/database"
)

var ErrNotFound = errors.New("photo not found")

// Photo is a user's profile photo, one per user.
type Photo struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	UserEmail  string    `json:"userEmail"`
	AvatarURL  string    `json:"avatarUrl"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Repository handles photo metadata persistence.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetByUser returns the user's photo row.
func (r *Repository) GetByUser(ctx context.Context, userID uuid.UUID) (*Photo, error) {
	row := new(database.Photo)
	err := r.db.NewSelect().
		Model(row).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return mapRow(row), nil
}

// Upsert inserts the user's photo row or replaces it if one exists.
// The unique index on user_id keeps it to one row per user.
func (r *Repository) Upsert(ctx context.Context, userID uuid.UUID, email, avatarURL, storageKey string) (*Photo, error) {
	row := &database.Photo{
		UserID:     userID,
		UserEmail:  email,
		AvatarURL:  avatarURL,
		StorageKey: storageKey,
	}

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("avatar_url = EXCLUDED.avatar_url").
		Set("storage_key = EXCLUDED.storage_key").
		Set("updated_at = NOW()").
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert photo: %w", err)
	}

	return mapRow(row), nil
}

// Delete removes the user's photo row.
func (r *Repository) Delete(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Photo)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
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

func mapRow(row *database.Photo) *Photo {
	return &Photo{
		ID:         row.ID,
		UserID:     row.UserID,
		UserEmail:  row.UserEmail,
		AvatarURL:  row.AvatarURL,
		StorageKey: row.StorageKey,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
