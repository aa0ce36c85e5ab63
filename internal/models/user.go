package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Hong Kong users sign in with their
// phone number, so Phone is unique.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Phone is the E.164 phone number, e.g. "+85291234567".
	Phone string

	// Name is the display name shown to other members.
	Name string

	PasswordHash string

	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(phone, name, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Phone:        phone,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
