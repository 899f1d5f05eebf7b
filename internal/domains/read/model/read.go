package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bookModel "booklog-backend/internal/domains/book/model"
)

// =====================================================
// ENUMS
// =====================================================

// ReadStatus is the lifecycle state of a reading session
type ReadStatus string

const (
	StatusUnread  ReadStatus = "UNREAD"
	StatusReading ReadStatus = "READING"
	StatusRead    ReadStatus = "READ"
	StatusDNF     ReadStatus = "DNF" // Did Not Finish
)

var ValidStatuses = []ReadStatus{
	StatusUnread,
	StatusReading,
	StatusRead,
	StatusDNF,
}

func (s ReadStatus) IsValid() bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// ParseReadStatus normalizes user input to the enum
func ParseReadStatus(s string) (ReadStatus, bool) {
	st := ReadStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.IsValid()
}

// =====================================================
// ENTITY
// =====================================================

// Read represents a single reading session of a book. A book can have many
// reads (rereads), each with its own dates, rating, review and points.
type Read struct {
	ID     uuid.UUID `json:"id"`
	BookID uuid.UUID `json:"book_id"`
	UserID uuid.UUID `json:"user_id"`

	// Reading dates
	DateStarted  *time.Time `json:"date_started"`
	DateFinished *time.Time `json:"date_finished"`

	// Status and flags
	Status   ReadStatus `json:"status"`
	IsReread bool       `json:"is_reread"`

	// Rating on the 0.5-10.0 scale in 0.5 steps, review text
	Rating *decimal.Decimal `json:"rating"`
	Review *string          `json:"review"`

	// Point calculation. BasePoints is a user override of the base score
	// (scaled x100); once set, PointsOverridden stays true and recomputation
	// keeps using the override regardless of other field changes.
	BasePoints       *Points `json:"base_points"`
	PointsOverridden bool    `json:"points_overridden"`

	// Computed scores, non-nil only when Status == READ
	PointsAllegory   *Points `json:"points_allegory"`
	PointsReasonable *Points `json:"points_reasonable"`

	// Timestamps
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	// Joined data (populated by snapshot queries, not stored on the row)
	Book *bookModel.Book `json:"book,omitempty"`
}

// IsFinished reports whether this read counts toward statistics:
// completed with a known finish date.
func (r *Read) IsFinished() bool {
	return r.Status == StatusRead && r.DateFinished != nil
}

// HasReview reports whether a non-blank review is attached
func (r *Read) HasReview() bool {
	return r.Review != nil && strings.TrimSpace(*r.Review) != ""
}
