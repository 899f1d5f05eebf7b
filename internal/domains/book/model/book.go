package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ENUMS
// =====================================================

// BookType categorizes a book for point scoring
type BookType string

const (
	BookTypeFiction    BookType = "FICTION"
	BookTypeNonfiction BookType = "NONFICTION"
	BookTypeYA         BookType = "YA"
	BookTypeChildrens  BookType = "CHILDRENS"
	BookTypeComic      BookType = "COMIC"
	BookTypeNovella    BookType = "NOVELLA"
	BookTypeShortStory BookType = "SHORT_STORY"
	BookTypeOther      BookType = "OTHER"
)

// ValidBookTypes - closed set, anything else is rejected at the DTO layer
var ValidBookTypes = []BookType{
	BookTypeFiction,
	BookTypeNonfiction,
	BookTypeYA,
	BookTypeChildrens,
	BookTypeComic,
	BookTypeNovella,
	BookTypeShortStory,
	BookTypeOther,
}

// IsValid checks membership in the closed book type set
func (t BookType) IsValid() bool {
	for _, valid := range ValidBookTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// Format is the physical/digital format of an owned copy
type Format string

const (
	FormatHardcover           Format = "HARDCOVER"
	FormatPaperback           Format = "PAPERBACK"
	FormatMassMarketPaperback Format = "MASS_MARKET_PAPERBACK"
	FormatTradePaperback      Format = "TRADE_PAPERBACK"
	FormatLeatherBound        Format = "LEATHER_BOUND"
	FormatKindle              Format = "KINDLE"
	FormatPDF                 Format = "PDF"
	FormatEpub                Format = "EPUB"
	FormatOtherDigital        Format = "OTHER_DIGITAL"
	FormatAudiobookAudible    Format = "AUDIOBOOK_AUDIBLE"
	FormatAudiobookOther      Format = "AUDIOBOOK_OTHER"
	FormatAudiobookCD         Format = "AUDIOBOOK_CD"
	FormatAnthology           Format = "ANTHOLOGY"
	FormatMagazine            Format = "MAGAZINE"
	FormatOther               Format = "OTHER"
)

var ValidFormats = []Format{
	FormatHardcover,
	FormatPaperback,
	FormatMassMarketPaperback,
	FormatTradePaperback,
	FormatLeatherBound,
	FormatKindle,
	FormatPDF,
	FormatEpub,
	FormatOtherDigital,
	FormatAudiobookAudible,
	FormatAudiobookOther,
	FormatAudiobookCD,
	FormatAnthology,
	FormatMagazine,
	FormatOther,
}

func (f Format) IsValid() bool {
	for _, valid := range ValidFormats {
		if f == valid {
			return true
		}
	}
	return false
}

// ParseBookType normalizes user input ("fiction", "Fiction") to the enum
func ParseBookType(s string) (BookType, bool) {
	t := BookType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// ParseFormat normalizes user input to the Format enum
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	return f, f.IsValid()
}

// =====================================================
// ENTITY
// =====================================================

// Book represents one user's copy of a work. Two users who read the same
// real-world book each have their own Book row; cross-user matching happens
// downstream via identity normalization, never at the schema level.
type Book struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	// Core metadata
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN10          *string    `json:"isbn_10"`
	ISBN13          *string    `json:"isbn_13"`
	PublicationDate *time.Time `json:"publication_date"`
	PageCount       *int       `json:"page_count"`
	Language        *string    `json:"language"`
	CoverImageURL   *string    `json:"cover_image_url"`

	// Extended metadata
	Description *string   `json:"description"`
	Genres      []string  `json:"genres"`
	BookType    *BookType `json:"book_type"`
	Series      *string   `json:"series"`
	SeriesNum   *int      `json:"series_number"`

	// Format is required; everything else above degrades gracefully
	Format Format `json:"format"`

	// NormalizedAuthor is maintained on every write and backs canon
	// progress matching. Never exposed over the API.
	NormalizedAuthor string `json:"-"`

	// Timestamps
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
