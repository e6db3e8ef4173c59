package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/eren/coursemap/internal/degree"
)

// StoredRequirementDocument is a persisted requirement document. UserID is
// nil for the built-in default program document; a row with a user id shadows
// the default for that user. Payload is the normalized document, stored as
// JSONB and treated as read-only after upload.
type StoredRequirementDocument struct {
	ID        int64                       `json:"id" db:"id"`
	UserID    *uuid.UUID                  `json:"userId,omitempty" db:"user_id"`
	Name      string                      `json:"name" db:"name"`
	Document  *degree.RequirementDocument `json:"document" db:"payload"`
	CreatedAt time.Time                   `json:"createdAt" db:"created_at"`
}
