package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fitness-fanatics/fitness-api/internal/database"
)

var ErrNotFound = errors.New("activity not found")

// Repository handles activity persistence.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new activity for the given user.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, email string, in Input) (*Activity, error) {
	row := &database.Activity{
		UserID:       userID,
		Email:        email,
		ActivityDate: in.ActivityDate,
		ActivityTime: in.ActivityTime,
		Duration:     in.Duration,
		ActivityType: in.ActivityType,
		Distance:     in.Distance,
		Comment:      in.Comment,
	}

	_, err := r.db.NewInsert().
		Model(row).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return mapRow(row), nil
}

// ListByUser returns the user's activities, most recent date first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Activity, error) {
	var rows []*database.Activity
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("activity_date DESC", "activity_time DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	activities := make([]*Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, mapRow(row))
	}
	return activities, nil
}

// GetByID returns a single activity.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Activity, error) {
	row := new(database.Activity)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return mapRow(row), nil
}

// Update overwrites the editable fields of an activity owned by the
// given user.
func (r *Repository) Update(ctx context.Context, id, userID uuid.UUID, in Input) (*Activity, error) {
	result, err := r.db.NewUpdate().
		Model((*database.Activity)(nil)).
		Set("activity_date = ?", in.ActivityDate).
		Set("activity_time = ?", in.ActivityTime).
		Set("duration = ?", in.Duration).
		Set("activity_type = ?", in.ActivityType).
		Set("distance = ?", in.Distance).
		Set("comment = ?", in.Comment).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
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

// Delete removes an activity owned by the given user.
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Activity)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
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

func mapRow(row *database.Activity) *Activity {
	return &Activity{
		ID:           row.ID,
		UserID:       row.UserID,
		Email:        row.Email,
		ActivityDate: row.ActivityDate,
		ActivityTime: row.ActivityTime,
		Duration:     row.Duration,
		ActivityType: row.ActivityType,
		Distance:     row.Distance,
		Comment:      row.Comment,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
