package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===== REQUEST DTOs =====

// CreateReadRequest represents the request to log a read of a book
type CreateReadRequest struct {
	BookID       uuid.UUID        `json:"book_id"`
	DateStarted  *time.Time       `json:"date_started"`
	DateFinished *time.Time       `json:"date_finished"`
	Status       string           `json:"status"`
	IsReread     bool             `json:"is_reread"`
	Rating       *decimal.Decimal `json:"rating"`
	Review       *string          `json:"review"`
	BasePoints   *int             `json:"base_points"`
}

func (r CreateReadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, validation.By(validUUID)),
		validation.Field(&r.Status, validation.Required, validation.By(validReadStatus)),
		validation.Field(&r.Rating, validation.By(validRatingPtr)),
		validation.Field(&r.BasePoints, validation.By(nonNegativeIntPtr)),
		validation.Field(&r.DateFinished, validation.By(r.validDateOrder)),
	)
}

func (r CreateReadRequest) validDateOrder(value interface{}) error {
	if r.DateStarted == nil || r.DateFinished == nil {
		return nil
	}
	if r.DateStarted.After(*r.DateFinished) {
		return ErrInvalidDates
	}
	return nil
}

// UpdateReadRequest represents the request to update an existing read.
// All fields are optional, only provided fields are applied.
type UpdateReadRequest struct {
	DateStarted  *time.Time       `json:"date_started"`
	DateFinished *time.Time       `json:"date_finished"`
	Status       *string          `json:"status"`
	IsReread     *bool            `json:"is_reread"`
	Rating       *decimal.Decimal `json:"rating"`
	Review       *string          `json:"review"`
	BasePoints   *int             `json:"base_points"`
	ClearRating  bool             `json:"clear_rating"`
	ClearPoints  bool             `json:"clear_points"`
}

func (r UpdateReadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.By(validReadStatusPtr)),
		validation.Field(&r.Rating, validation.By(validRatingPtr)),
		validation.Field(&r.BasePoints, validation.By(nonNegativeIntPtr)),
	)
}

// ListReadsRequest represents query parameters for listing reads
type ListReadsRequest struct {
	Status   string `form:"status"`
	BookID   string `form:"book_id"`
	Year     int    `form:"year"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	IsReread *bool  `form:"is_reread"`
}

func (r *ListReadsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}

// ===== RESPONSE DTOs =====

// ReadResponse represents a read in API responses
type ReadResponse struct {
	ID               uuid.UUID        `json:"id"`
	BookID           uuid.UUID        `json:"book_id"`
	UserID           uuid.UUID        `json:"user_id"`
	DateStarted      *time.Time       `json:"date_started,omitempty"`
	DateFinished     *time.Time       `json:"date_finished,omitempty"`
	Status           ReadStatus       `json:"status"`
	IsReread         bool             `json:"is_reread"`
	Rating           *decimal.Decimal `json:"rating,omitempty"`
	Review           *string          `json:"review,omitempty"`
	PointsAllegory   *float64         `json:"points_allegory,omitempty"`
	PointsReasonable *float64         `json:"points_reasonable,omitempty"`
	PointsOverridden bool             `json:"points_overridden"`
	Book             interface{}      `json:"book,omitempty"`
	CreatedAt        *time.Time       `json:"created_at,omitempty"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

func (r *Read) ToResponse() *ReadResponse {
	resp := &ReadResponse{
		ID:               r.ID,
		BookID:           r.BookID,
		UserID:           r.UserID,
		DateStarted:      r.DateStarted,
		DateFinished:     r.DateFinished,
		Status:           r.Status,
		IsReread:         r.IsReread,
		Rating:           r.Rating,
		Review:           r.Review,
		PointsOverridden: r.PointsOverridden,
		CreatedAt:        &r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.PointsAllegory != nil {
		v := r.PointsAllegory.Float()
		resp.PointsAllegory = &v
	}
	if r.PointsReasonable != nil {
		v := r.PointsReasonable.Float()
		resp.PointsReasonable = &v
	}
	if r.Book != nil {
		resp.Book = r.Book.ToResponse()
	}
	return resp
}

// ListReadsResponse represents a paginated list of reads
type ListReadsResponse struct {
	Reads []*ReadResponse `json:"reads"`
	Meta  PaginationMeta  `json:"meta"`
}

// PaginationMeta holds pagination info for list responses
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ===== VALIDATION HELPERS =====

func validUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}

func validReadStatus(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_status", "must be a string")
	}
	if _, ok := ParseReadStatus(s); !ok {
		return NewInvalidStatusError(s)
	}
	return nil
}

func validReadStatusPtr(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	return validReadStatus(*s)
}

// validRatingPtr enforces the 0.5 to 10.0 range in 0.5 increments.
// Out-of-range or off-step ratings are rejected, never clamped.
func validRatingPtr(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	min := decimal.NewFromFloat(0.5)
	max := decimal.NewFromInt(10)
	if d.LessThan(min) || d.GreaterThan(max) {
		return NewInvalidRatingError()
	}
	if !d.Mul(decimal.NewFromInt(2)).IsInteger() {
		return NewInvalidRatingError()
	}
	return nil
}

func nonNegativeIntPtr(value interface{}) error {
	n, ok := value.(*int)
	if !ok || n == nil {
		return nil
	}
	if *n < 0 {
		return validation.NewError("validation_non_negative", "must be zero or greater")
	}
	return nil
}
