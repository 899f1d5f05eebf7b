package model

import (
	"time"

	"github.com/google/uuid"
)

// Semester is a per-user annotation of one calendar semester, currently
// just a custom display name. The calendar itself is computed, only the
// annotations are stored. One row per (user, semester_number).
type Semester struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	SemesterNumber int        `json:"semester_number"`
	CustomName     *string    `json:"custom_name"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
