package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fitness-fanatics/fitness-api/internal/database"
)

var ErrNotFound = errors.New("training plan not found")

// Plan is an uploaded training plan document.
type Plan struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	UserEmail    string    `json:"userEmail"`
	Title        string    `json:"title"`
	OriginalName string    `json:"originalName"`
	FileURL      string    `json:"fileUrl"`
	StorageKey   string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Repository handles training plan metadata persistence.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new plan row.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, email, title, originalName, fileURL, storageKey string) (*Plan, error) {
	row := &database.Plan{
		UserID:       userID,
		UserEmail:    email,
		Title:        title,
		OriginalName: originalName,
		FileURL:      fileURL,
		StorageKey:   storageKey,
	}

	_, err := r.db.NewInsert().
		Model(row).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return mapRow(row), nil
}

// ListByUser returns the user's plans, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Plan, error) {
	var rows []*database.Plan
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*Plan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, mapRow(row))
	}
	return plans, nil
}

func mapRow(row *database.Plan) *Plan {
	return &Plan{
		ID:           row.ID,
		UserID:       row.UserID,
		UserEmail:    row.UserEmail,
		Title:        row.Title,
		OriginalName: row.OriginalName,
		FileURL:      row.FileURL,
		StorageKey:   row.StorageKey,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
