package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// SORT MODES
// =====================================================

const (
	SortBooksRead     = "books_read"
	SortCompletionPct = "completion_pct"
	SortRecent        = "recent"
	SortAlphabetical  = "alphabetical"
	SortAlmostThere   = "almost_there"
)

var validSorts = map[string]struct{}{
	SortBooksRead:     {},
	SortCompletionPct: {},
	SortRecent:        {},
	SortAlphabetical:  {},
	SortAlmostThere:   {},
}

// ParseSort normalizes a sort mode, defaulting to books_read
func ParseSort(s string) (string, bool) {
	sort := strings.ToLower(strings.TrimSpace(s))
	if sort == "" {
		return SortBooksRead, true
	}
	_, ok := validSorts[sort]
	return sort, ok
}

// =====================================================
// REQUEST DTOs
// =====================================================

// ListProgressRequest filters and sorts the per-author progress list
type ListProgressRequest struct {
	Sort          string   `form:"sort"`
	MinCompletion *float64 `form:"min_completion"` // fraction 0..1
	Page          int      `form:"page"`
	Limit         int      `form:"limit"`
}

func (r *ListProgressRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Sort == "" {
		r.Sort = SortBooksRead
	}
}

func (r ListProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sort, validation.By(validSortMode)),
		validation.Field(&r.MinCompletion, validation.By(validFraction)),
	)
}

func validSortMode(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := ParseSort(s); !ok {
		return validation.NewError("validation_sort", "must be one of books_read, completion_pct, recent, alphabetical, almost_there")
	}
	return nil
}

func validFraction(value interface{}) error {
	f, ok := value.(*float64)
	if !ok || f == nil {
		return nil
	}
	if *f < 0 || *f > 1 {
		return validation.NewError("validation_fraction", "must be between 0 and 1")
	}
	return nil
}

// SetGoalRequest marks an author canon as a reading goal, or clears it
type SetGoalRequest struct {
	AuthorCanonID string     `json:"author_canon_id"`
	IsGoal        bool       `json:"is_goal"`
	GoalDeadline  *time.Time `json:"goal_deadline"`
}

func (r SetGoalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorCanonID, validation.Required, validation.By(validUUID)),
	)
}

func validUUID(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ProgressEntry is one row of the progress list, joined with the author
type ProgressEntry struct {
	AuthorCanonID        uuid.UUID  `json:"author_canon_id"`
	AuthorName           string     `json:"author_name"`
	AuthorPhotoURL       *string    `json:"author_photo_url"`
	BooksRead            int        `json:"books_read"`
	BooksTotal           int        `json:"books_total"`
	CompletionPercentage int        `json:"completion_percentage"`
	FirstReadDate        *time.Time `json:"first_read_date"`
	MostRecentReadDate   *time.Time `json:"most_recent_read_date"`
}

// TimelineEntry is one canon work on the author detail timeline,
// annotated with the user's read of it when one exists
type TimelineEntry struct {
	WorkID     uuid.UUID        `json:"work_id"`
	Title      string           `json:"title"`
	Year       *int             `json:"year"`
	PageCount  *int             `json:"page_count"`
	Read       bool             `json:"read"`
	BookID     *uuid.UUID       `json:"book_id,omitempty"`
	ReadDate   *time.Time       `json:"read_date,omitempty"`
	UserRating *decimal.Decimal `json:"user_rating,omitempty"`
}

// ReadingPattern divides the timeline into publication-era thirds and
// reports the user's completion fraction for each
type ReadingPattern struct {
	EarlyWorksCompletion   float64 `json:"early_works_completion"`
	MiddlePeriodCompletion float64 `json:"middle_period_completion"`
	RecentWorksCompletion  float64 `json:"recent_works_completion"`
	Insight                *string `json:"insight"`
}

// Recommendation suggests a next book from the canon
type Recommendation struct {
	WorkID          uuid.UUID `json:"work_id"`
	Title           string    `json:"title"`
	Reason          string    `json:"reason"`
	Priority        int       `json:"priority"`
	PublicationYear *int      `json:"publication_year"`
	PageCount       *int      `json:"page_count"`
}

// AchievementEntry is one badge on the user's trophy list, joined with
// the author it was earned for
type AchievementEntry struct {
	AchievementType string     `json:"achievement_type"`
	AuthorCanonID   *uuid.UUID `json:"author_canon_id"`
	AuthorName      *string    `json:"author_name"`
	AwardedAt       time.Time  `json:"awarded_at"`
}

// LeaderboardEntry ranks one user by completionist milestones
type LeaderboardEntry struct {
	UserID            uuid.UUID `json:"user_id"`
	DisplayName       string    `json:"display_name"`
	CanonsCompleted   int       `json:"canons_completed"`
	TotalAchievements int       `json:"total_achievements"`
}

// AuthorDetailResponse is the full completionist view of one author
type AuthorDetailResponse struct {
	AuthorCanonID        uuid.UUID        `json:"author_canon_id"`
	AuthorName           string           `json:"author_name"`
	AuthorPhotoURL       *string          `json:"author_photo_url"`
	BooksRead            int              `json:"books_read"`
	BooksTotal           int              `json:"books_total"`
	CompletionPercentage int              `json:"completion_percentage"`
	Achievements         []string         `json:"achievements"`
	ReadingPattern       ReadingPattern   `json:"reading_pattern"`
	Timeline             []TimelineEntry  `json:"timeline"`
	Recommendations      []Recommendation `json:"recommendations"`
}
