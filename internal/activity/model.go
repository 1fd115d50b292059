package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single logged workout.
type Activity struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Email        string    `json:"email"`
	ActivityDate string    `json:"activityDate"`
	ActivityTime string    `json:"activityTime"`
	Duration     int       `json:"duration"`
	ActivityType string    `json:"activityType"`
	Distance     float64   `json:"distance"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Input carries the user-editable fields of an activity. Comment is
// free text and not validated.
type Input struct {
	ActivityDate string  `json:"activityDate"`
	ActivityTime string  `json:"activityTime"`
	Duration     int     `json:"duration"`
	ActivityType string  `json:"activityType"`
	Distance     float64 `json:"distance"`
	Comment      *string `json:"comment"`
}
