package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain model for a registered account. A row exists only
// after the activation flow has completed; registration alone never
// writes one.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized

	UserName   *string `json:"userName,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	City       *string `json:"cityOfResidence,omitempty"`
	Weight     *string `json:"weight,omitempty"`
	BirthDate  *string `json:"birthDate,omitempty"`
	Motivation *string `json:"motivation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the mutable profile fields plus an optional
// pre-hashed password. Nil pointers leave the stored value untouched.
type ProfileUpdate struct {
	FirstName    string
	LastName     string
	UserName     *string
	Gender       *string
	City         *string
	Weight       *string
	BirthDate    *string
	Motivation   *string
	PasswordHash *string
}
