package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ENTITY
// =====================================================

// Author is a first-class entity shared across users. Books store the
// author as free text; this row is the deduplicated record behind canon
// tracking, keyed by the normalized form of the name.
type Author struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"-"`

	// Optional metadata
	BirthYear   *int    `json:"birth_year"`
	DeathYear   *int    `json:"death_year"`
	Nationality *string `json:"nationality"`
	PhotoURL    *string `json:"photo_url"`
	Biography   *string `json:"biography"`

	// Timestamps
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
