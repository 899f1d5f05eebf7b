package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookModel "booklog-backend/internal/domains/book/model"
	"booklog-backend/internal/domains/read/model"
)

func bookTypePtr(t bookModel.BookType) *bookModel.BookType { return &t }
func intPtr(n int) *int                                    { return &n }
func pointsPtr(p model.Points) *model.Points               { return &p }

func TestBasePoints(t *testing.T) {
	calc := NewPointCalculator()

	tests := []struct {
		name     string
		bookType *bookModel.BookType
		override *model.Points
		want     model.Points
	}{
		{"fiction", bookTypePtr(bookModel.BookTypeFiction), nil, 100},
		{"nonfiction", bookTypePtr(bookModel.BookTypeNonfiction), nil, 150},
		{"ya", bookTypePtr(bookModel.BookTypeYA), nil, 75},
		{"childrens", bookTypePtr(bookModel.BookTypeChildrens), nil, 50},
		{"comic", bookTypePtr(bookModel.BookTypeComic), nil, 50},
		{"novella", bookTypePtr(bookModel.BookTypeNovella), nil, 50},
		{"short story", bookTypePtr(bookModel.BookTypeShortStory), nil, 10},
		{"other", bookTypePtr(bookModel.BookTypeOther), nil, 100},
		{"nil type defaults to 1.0", nil, nil, 100},
		{"override wins over type", bookTypePtr(bookModel.BookTypeShortStory), pointsPtr(300), 300},
		{"override wins over nil type", nil, pointsPtr(25), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.BasePoints(tt.bookType, tt.override))
		})
	}
}

func TestLengthAddons(t *testing.T) {
	calc := NewPointCalculator()

	tests := []struct {
		name      string
		pageCount *int
		want      model.Points
	}{
		{"nil page count", nil, 0},
		{"zero pages", intPtr(0), 0},
		{"negative pages", intPtr(-12), 0},
		{"short book", intPtr(200), 0},
		{"just under threshold with grace", intPtr(486), 0},           // 486+13=499
		{"grace buffer pushes over threshold", intPtr(487), 100},     // 487+13=500
		{"exactly at threshold", intPtr(500), 100},                   // 513 effective
		{"one step above threshold", intPtr(587), 200},               // 600 effective
		{"just below second step", intPtr(586), 100},                 // 599 effective
		{"long book", intPtr(1000), 600},                             // 1013 effective
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.LengthAddons(tt.pageCount))
		})
	}
}

// Nonfiction, 520 pages, first read: 533 effective pages clear the
// first threshold only, so reasonable = 150 + 100 = 250 and allegory
// matches it at full multiplier.
func TestCalculate_NonfictionLongBook(t *testing.T) {
	calc := NewPointCalculator()

	allegory, reasonable := calc.Calculate(bookTypePtr(bookModel.BookTypeNonfiction), intPtr(520), false, nil)

	assert.Equal(t, model.Points(250), reasonable)
	assert.Equal(t, model.Points(250), allegory)
	assert.InDelta(t, 2.5, reasonable.Float(), 0.0001)
}

// Same book as a reread: allegory halves to 125 (1.25 points) while
// reasonable ignores the reread flag and stays at 250.
func TestCalculate_RereadPenalty(t *testing.T) {
	calc := NewPointCalculator()

	allegory, reasonable := calc.Calculate(bookTypePtr(bookModel.BookTypeNonfiction), intPtr(520), true, nil)

	assert.Equal(t, model.Points(250), reasonable)
	assert.Equal(t, model.Points(125), allegory)
}

func TestCalculate_RereadIsHalfOfFirstRead(t *testing.T) {
	calc := NewPointCalculator()

	types := append([]bookModel.BookType{}, bookModel.ValidBookTypes...)
	pages := []*int{nil, intPtr(100), intPtr(499), intPtr(500), intPtr(750), intPtr(1200)}

	for _, bt := range types {
		for _, pc := range pages {
			first, reasonable := calc.Calculate(&bt, pc, false, nil)
			reread, _ := calc.Calculate(&bt, pc, true, nil)

			assert.Equal(t, reasonable, first, "first read allegory equals reasonable for %s", bt)
			assert.Equal(t, (reasonable*50)/100, reread, "reread allegory is half with truncation for %s", bt)
		}
	}
}

func TestCalculate_OverrideAppliesToBothScores(t *testing.T) {
	calc := NewPointCalculator()

	allegory, reasonable := calc.Calculate(bookTypePtr(bookModel.BookTypeFiction), intPtr(520), true, pointsPtr(400))

	// (400 + 100) * 0.5 = 250, reasonable keeps the override base too
	assert.Equal(t, model.Points(250), allegory)
	assert.Equal(t, model.Points(500), reasonable)
}

func TestCalculate_TruncatingDivision(t *testing.T) {
	calc := NewPointCalculator()

	// YA base is 75, reread halves to 37.5 which truncates to 37
	allegory, _ := calc.Calculate(bookTypePtr(bookModel.BookTypeYA), nil, true, nil)
	assert.Equal(t, model.Points(37), allegory)
}

func TestCalculateForRead(t *testing.T) {
	calc := NewPointCalculator()
	finished := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	book := &bookModel.Book{
		BookType:  bookTypePtr(bookModel.BookTypeNonfiction),
		PageCount: intPtr(520),
	}

	t.Run("finished read", func(t *testing.T) {
		read := &model.Read{
			Status:       model.StatusRead,
			DateFinished: &finished,
		}

		allegory, reasonable, ok := calc.CalculateForRead(read, book)
		assert.True(t, ok)
		assert.Equal(t, model.Points(250), allegory)
		assert.Equal(t, model.Points(250), reasonable)
	})

	t.Run("unfinished read earns nothing", func(t *testing.T) {
		read := &model.Read{Status: model.StatusReading}

		_, _, ok := calc.CalculateForRead(read, book)
		assert.False(t, ok)
	})

	t.Run("read status without finish date still scores", func(t *testing.T) {
		read := &model.Read{Status: model.StatusRead}

		allegory, reasonable, ok := calc.CalculateForRead(read, book)
		assert.True(t, ok)
		assert.Equal(t, model.Points(250), allegory)
		assert.Equal(t, model.Points(250), reasonable)
	})

	t.Run("override is ignored unless flagged", func(t *testing.T) {
		read := &model.Read{
			Status:       model.StatusRead,
			DateFinished: &finished,
			BasePoints:   pointsPtr(999),
		}

		allegory, _, ok := calc.CalculateForRead(read, book)
		assert.True(t, ok)
		assert.Equal(t, model.Points(250), allegory)

		read.PointsOverridden = true
		allegory, _, ok = calc.CalculateForRead(read, book)
		assert.True(t, ok)
		assert.Equal(t, model.Points(1099), allegory)
	})

	t.Run("missing book degrades to defaults", func(t *testing.T) {
		read := &model.Read{
			Status:       model.StatusRead,
			DateFinished: &finished,
		}

		allegory, reasonable, ok := calc.CalculateForRead(read, nil)
		assert.True(t, ok)
		assert.Equal(t, model.Points(100), allegory)
		assert.Equal(t, model.Points(100), reasonable)
	})
}
