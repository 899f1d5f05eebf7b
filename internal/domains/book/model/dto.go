package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateBookRequest - payload for POST /books
type CreateBookRequest struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	ISBN10          *string  `json:"isbn_10"`
	ISBN13          *string  `json:"isbn_13"`
	PublicationDate *string  `json:"publication_date"` // YYYY-MM-DD
	PageCount       *int     `json:"page_count"`
	Language        *string  `json:"language"`
	CoverImageURL   *string  `json:"cover_image_url"`
	Description     *string  `json:"description"`
	Genres          []string `json:"genres"`
	BookType        *string  `json:"book_type"`
	Series          *string  `json:"series"`
	SeriesNum       *int     `json:"series_number"`
	Format          string   `json:"format"`
}

// Validate validates CreateBookRequest
func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title is required"),
			validation.Length(1, 500).Error("Title must be 1-500 characters"),
		),
		validation.Field(&r.Author,
			validation.Required.Error("Author is required"),
			validation.Length(1, 500).Error("Author must be 1-500 characters"),
		),
		validation.Field(&r.Format,
			validation.Required.Error("Format is required"),
			validation.By(validFormat),
		),
		validation.Field(&r.BookType, validation.By(validBookTypePtr)),
		validation.Field(&r.PageCount, validation.By(positiveIntPtr)),
		validation.Field(&r.Genres, validation.Length(0, 20).Error("At most 20 genres")),
	)
}

// UpdateBookRequest - payload for PUT /books/:id (partial update)
type UpdateBookRequest struct {
	Title           *string  `json:"title"`
	Author          *string  `json:"author"`
	ISBN10          *string  `json:"isbn_10"`
	ISBN13          *string  `json:"isbn_13"`
	PublicationDate *string  `json:"publication_date"`
	PageCount       *int     `json:"page_count"`
	Language        *string  `json:"language"`
	CoverImageURL   *string  `json:"cover_image_url"`
	Description     *string  `json:"description"`
	Genres          []string `json:"genres"`
	BookType        *string  `json:"book_type"`
	Series          *string  `json:"series"`
	SeriesNum       *int     `json:"series_number"`
	Format          *string  `json:"format"`
}

// Validate validates UpdateBookRequest
func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Length(1, 500)),
		validation.Field(&r.Format, validation.By(validFormatPtr)),
		validation.Field(&r.BookType, validation.By(validBookTypePtr)),
		validation.Field(&r.PageCount, validation.By(positiveIntPtr)),
	)
}

// ListBooksRequest - query parameters for GET /books
type ListBooksRequest struct {
	Search   string `form:"search"`
	BookType string `form:"book_type"`
	Format   string `form:"format"`
	Sort     string `form:"sort"` // newest, title, author
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// Normalize applies pagination defaults
func (r *ListBooksRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// BookResponse - public view of a book
type BookResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN10          *string    `json:"isbn_10,omitempty"`
	ISBN13          *string    `json:"isbn_13,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	PageCount       *int       `json:"page_count,omitempty"`
	Language        *string    `json:"language,omitempty"`
	CoverImageURL   *string    `json:"cover_image_url,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Genres          []string   `json:"genres,omitempty"`
	BookType        *BookType  `json:"book_type,omitempty"`
	Series          *string    `json:"series,omitempty"`
	SeriesNum       *int       `json:"series_number,omitempty"`
	Format          Format     `json:"format"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToResponse maps entity to response DTO
func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN10:          b.ISBN10,
		ISBN13:          b.ISBN13,
		PublicationDate: b.PublicationDate,
		PageCount:       b.PageCount,
		Language:        b.Language,
		CoverImageURL:   b.CoverImageURL,
		Description:     b.Description,
		Genres:          b.Genres,
		BookType:        b.BookType,
		Series:          b.Series,
		SeriesNum:       b.SeriesNum,
		Format:          b.Format,
		CreatedAt:       b.CreatedAt,
	}
}

// PaginationMeta - metadata for paginated list responses
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ListBooksResponse - paginated book list
type ListBooksResponse struct {
	Books      []BookResponse `json:"books"`
	Pagination PaginationMeta `json:"pagination"`
}

// =====================================================
// VALIDATION HELPERS
// =====================================================

func validFormat(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required handles empty
	}
	if _, ok := ParseFormat(s); !ok {
		return NewInvalidFormatError(s)
	}
	return nil
}

func validFormatPtr(value interface{}) error {
	p, _ := value.(*string)
	if p == nil {
		return nil
	}
	return validFormat(*p)
}

func validBookTypePtr(value interface{}) error {
	p, _ := value.(*string)
	if p == nil {
		return nil
	}
	if _, ok := ParseBookType(*p); !ok {
		return NewInvalidBookTypeError(*p)
	}
	return nil
}

func positiveIntPtr(value interface{}) error {
	p, _ := value.(*int)
	if p == nil {
		return nil
	}
	if *p <= 0 {
		return validation.NewError("validation_positive", "must be a positive number")
	}
	return nil
}
