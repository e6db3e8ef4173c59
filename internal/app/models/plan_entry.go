package models

import (
	"time"

	"github.com/google/uuid"
)

// PlanEntry is one course in a user's degree plan. A course appears at most
// once per plan; the (user_id, course_code) unique key enforces it and makes
// repeated writes an upsert.
type PlanEntry struct {
	ID         int64     `json:"id" db:"id"`
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	CourseCode string    `json:"courseCode" db:"course_code"`
	Term       string    `json:"term" db:"term"`
	Completed  bool      `json:"completed" db:"completed"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
