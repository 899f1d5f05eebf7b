package service

import (
	bookModel "booklog-backend/internal/domains/book/model"
	"booklog-backend/internal/domains/read/model"
)

// PointCalculator computes scoring for finished reads.
//
// Two scores are produced for every finished read:
//   - Allegory: (base + length add-ons) x reread multiplier
//   - Reasonable: base + length add-ons, no reread penalty
//
// All arithmetic is integer fixed-point (points x 100), see model.Points.
type PointCalculator struct{}

// NewPointCalculator creates a new calculator instance
func NewPointCalculator() *PointCalculator {
	return &PointCalculator{}
}

// Base points per book type, as Points (x100)
var basePointsTable = map[bookModel.BookType]model.Points{
	bookModel.BookTypeFiction:    100, // 1.0 point
	bookModel.BookTypeNonfiction: 150, // 1.5 points
	bookModel.BookTypeYA:         75,  // 0.75 points
	bookModel.BookTypeChildrens:  50,  // 0.5 points
	bookModel.BookTypeComic:      50,  // 0.5 points, standalone volume
	bookModel.BookTypeNovella:    50,  // 0.5 points
	bookModel.BookTypeShortStory: 10,  // 0.1 points
	bookModel.BookTypeOther:      100, // default weight
}

const (
	defaultBasePoints   model.Points = 100 // 1.0 point when type is unknown
	graceBuffer                      = 13  // pages added before threshold checks
	firstThreshold                   = 500 // first length add-on threshold
	additionalThreshold              = 100 // add-on step after the first threshold
	firstReadMultiplier model.Points = 100 // 1.0
	rereadMultiplier    model.Points = 50  // 0.5
)

// BasePoints resolves the base score for a book type.
//
// Resolution order:
// 1. Explicit per-read override, if set
// 2. Lookup by book type
// 3. Default of 1.0 point (nil or unknown type)
func (c *PointCalculator) BasePoints(bookType *bookModel.BookType, override *model.Points) model.Points {
	if override != nil {
		return *override
	}
	if bookType == nil {
		return defaultBasePoints
	}
	if pts, ok := basePointsTable[*bookType]; ok {
		return pts
	}
	return defaultBasePoints
}

// LengthAddons computes length add-ons from page count.
//
// A 13-page grace buffer is applied first, then the first 500 effective
// pages grant +1.0 point and every additional complete 100 pages grant
// another +1.0 point. Nil or non-positive page counts earn nothing.
func (c *PointCalculator) LengthAddons(pageCount *int) model.Points {
	if pageCount == nil || *pageCount <= 0 {
		return 0
	}

	effectivePages := *pageCount + graceBuffer
	if effectivePages < firstThreshold {
		return 0
	}

	// First threshold gives +1.0 point
	addons := model.Points(100)

	// Every additional complete 100 pages gives +1.0 point
	pagesOverFirst := effectivePages - firstThreshold
	addons += model.Points(pagesOverFirst/additionalThreshold) * 100

	return addons
}

// Allegory computes the score with the reread penalty applied.
// Formula: (base + length add-ons) x multiplier, 0.5 for rereads.
func (c *PointCalculator) Allegory(bookType *bookModel.BookType, pageCount *int, isReread bool, override *model.Points) model.Points {
	base := c.BasePoints(bookType, override)
	addons := c.LengthAddons(pageCount)

	multiplier := firstReadMultiplier
	if isReread {
		multiplier = rereadMultiplier
	}

	return (base + addons).ApplyMultiplier(multiplier)
}

// Reasonable computes the score without any reread penalty.
// Formula: base + length add-ons.
func (c *PointCalculator) Reasonable(bookType *bookModel.BookType, pageCount *int, override *model.Points) model.Points {
	return c.BasePoints(bookType, override) + c.LengthAddons(pageCount)
}

// Calculate computes both scores in one call
func (c *PointCalculator) Calculate(bookType *bookModel.BookType, pageCount *int, isReread bool, override *model.Points) (allegory, reasonable model.Points) {
	allegory = c.Allegory(bookType, pageCount, isReread, override)
	reasonable = c.Reasonable(bookType, pageCount, override)
	return allegory, reasonable
}

// CalculateForRead computes both scores from a read and its book.
// Returns (0, 0, false) when the read is not in READ status. The finish
// date is irrelevant here, a read logged as READ without a remembered
// date still scores.
func (c *PointCalculator) CalculateForRead(read *model.Read, book *bookModel.Book) (allegory, reasonable model.Points, ok bool) {
	if read == nil || read.Status != model.StatusRead {
		return 0, 0, false
	}

	var bookType *bookModel.BookType
	var pageCount *int
	if book != nil {
		bookType = book.BookType
		pageCount = book.PageCount
	}

	var override *model.Points
	if read.PointsOverridden {
		override = read.BasePoints
	}

	allegory, reasonable = c.Calculate(bookType, pageCount, read.IsReread, override)
	return allegory, reasonable, true
}
