package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the bun mapping for the users table. The domain packages map
// these rows into their own types; bun models never leave the
// repository layer.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	FirstName    string    `bun:"first_name,notnull"`
	LastName     string    `bun:"last_name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`

	UserName   *string `bun:"user_name"`
	Gender     *string `bun:"gender"`
	City       *string `bun:"city_of_residence"`
	Weight     *string `bun:"weight"`
	BirthDate  *string `bun:"birth_date"`
	Motivation *string `bun:"motivation"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Activity is the bun mapping for the activities table.
type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID       uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Email        string    `bun:"email,notnull"`
	ActivityDate string    `bun:"activity_date,notnull"`
	ActivityTime string    `bun:"activity_time,notnull"`
	Duration     int       `bun:"duration,notnull"`
	ActivityType string    `bun:"activity_type,notnull"`
	Distance     float64   `bun:"distance,notnull"`
	Comment      *string   `bun:"comment"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Photo is the bun mapping for the photos table. One row per user,
// enforced by a unique index on user_id.
type Photo struct {
	bun.BaseModel `bun:"table:photos,alias:ph"`

	ID         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID     uuid.UUID `bun:"user_id,notnull,unique,type:uuid"`
	UserEmail  string    `bun:"user_email,notnull"`
	AvatarURL  string    `bun:"avatar_url,notnull"`
	StorageKey string    `bun:"storage_key,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Plan is the bun mapping for the training_plans table.
type Plan struct {
	bun.BaseModel `bun:"table:training_plans,alias:pl"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID       uuid.UUID `bun:"user_id,notnull,type:uuid"`
	UserEmail    string    `bun:"user_email,notnull"`
	Title        string    `bun:"title,notnull"`
	OriginalName string    `bun:"original_name,notnull"`
	FileURL      string    `bun:"file_url,notnull"`
	StorageKey   string    `bun:"storage_key,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// City is the bun mapping for the cities lookup table, seeded by
// migration.
type City struct {
	bun.BaseModel `bun:"table:cities,alias:c"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Name  string `bun:"name,notnull"`
	Value string `bun:"value,notnull"`
}
