package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a planner account. PasswordHash is nil for accounts created through
// Google sign-in; GoogleSub is the stable Google subject id for those.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	GoogleSub    *string   `json:"-" db:"google_sub"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// RefreshToken is a stored refresh token. Only a hash of the token value is
// persisted.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	TokenHash string    `json:"-" db:"token_hash"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
