package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ENUMS
// =====================================================

// BibliographySource records where a canon's work list came from
const (
	SourceManual    = "manual"
	SourceGoodreads = "goodreads"
	SourceWikipedia = "wikipedia"
)

// Achievement types awarded by progress sync
const (
	AchievementCanonComplete = "canon_complete"
	AchievementNearlyThere   = "nearly_there"
	AchievementDeepDive      = "deep_dive"
)

// Award thresholds
const (
	CompleteThreshold   = 100 // completion percentage
	NearlyThereThreshold = 90 // completion percentage
	DeepDiveThreshold    = 10 // books read from one author
)

// =====================================================
// ENTITIES
// =====================================================

// AuthorCanon is the catalog of an author's published works. One canon
// per author; user progress hangs off it.
type AuthorCanon struct {
	ID       uuid.UUID `json:"id"`
	AuthorID uuid.UUID `json:"author_id"`

	TotalWorksCount     int        `json:"total_works_count"`
	BibliographySource  *string    `json:"bibliography_source"`
	BibliographyUpdated *time.Time `json:"bibliography_last_updated"`
	IsLiving            bool       `json:"is_living"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// AuthorWork is a single entry in an author's canon
type AuthorWork struct {
	ID            uuid.UUID `json:"id"`
	AuthorCanonID uuid.UUID `json:"author_canon_id"`

	Title           string  `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	WorkType        *string `json:"work_type"`
	PageCount       *int    `json:"page_count"`
	ISBN10          *string `json:"isbn_10"`
	ISBN13          *string `json:"isbn_13"`

	// Minor essays and articles are excluded from completion math
	IsMajorWork bool `json:"is_major_work"`

	CreatedAt time.Time `json:"created_at"`
}

// AuthorProgress tracks one user's completion of one author's canon.
// One row per (user, canon); sync recomputes it from the read log.
type AuthorProgress struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	AuthorCanonID uuid.UUID `json:"author_canon_id"`

	BooksReadCount       int `json:"books_read_count"`
	BooksTotalCount      int `json:"books_total_count"`
	CompletionPercentage int `json:"completion_percentage"` // 0-100, floored

	FirstBookReadID      *uuid.UUID `json:"first_book_read_id"`
	FirstReadDate        *time.Time `json:"first_read_date"`
	MostRecentBookReadID *uuid.UUID `json:"most_recent_book_read_id"`
	MostRecentReadDate   *time.Time `json:"most_recent_read_date"`

	IsGoal       bool       `json:"is_goal"`
	GoalDeadline *time.Time `json:"goal_deadline"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Achievement is a milestone badge. Unique per (user, canon, type);
// awarding is idempotent.
type Achievement struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	AchievementType string     `json:"achievement_type"`
	AuthorCanonID   *uuid.UUID `json:"author_canon_id"`
	Metadata        *string    `json:"metadata"`
	AwardedAt       time.Time  `json:"awarded_at"`
}
