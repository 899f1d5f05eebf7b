package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "booklog-backend/internal/domains/book/model"
	"booklog-backend/internal/domains/completionist/model"
	readModel "booklog-backend/internal/domains/read/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func work(title string, year int) *model.AuthorWork {
	return &model.AuthorWork{
		ID:              uuid.New(),
		Title:           title,
		PublicationYear: intPtr(year),
		IsMajorWork:     true,
	}
}

func ownedBook(title string) *bookModel.Book {
	return &bookModel.Book{
		ID:    uuid.New(),
		Title: title,
	}
}

func finishedRead(bookID uuid.UUID, finished time.Time, rating float64) *readModel.Read {
	r := decimal.NewFromFloat(rating)
	return &readModel.Read{
		ID:           uuid.New(),
		BookID:       bookID,
		Status:       readModel.StatusRead,
		DateFinished: &finished,
		Rating:       &r,
	}
}

func TestMatchWork_TitleCaseInsensitive(t *testing.T) {
	w := work("The Stand", 1978)
	books := []*bookModel.Book{ownedBook("the stand"), ownedBook("It")}

	matched := matchWork(w, books)
	require.NotNil(t, matched)
	assert.Equal(t, "the stand", matched.Title)
}

func TestMatchWork_ISBNFallback(t *testing.T) {
	w := work("The Stand: Complete Edition", 1990)
	w.ISBN13 = strPtr("9780385199575")

	book := ownedBook("The Stand (Complete & Uncut)")
	book.ISBN13 = strPtr("9780385199575")

	matched := matchWork(w, []*bookModel.Book{book})
	require.NotNil(t, matched)
	assert.Equal(t, book.ID, matched.ID)
}

func TestMatchWork_NoMatch(t *testing.T) {
	w := work("Misery", 1987)
	assert.Nil(t, matchWork(w, []*bookModel.Book{ownedBook("It")}))
}

func TestBuildTimeline_MarksReadWorks(t *testing.T) {
	works := []*model.AuthorWork{work("Carrie", 1974), work("The Shining", 1977)}
	carrie := ownedBook("Carrie")
	books := []*bookModel.Book{carrie}

	finishedAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	readByBook := map[uuid.UUID]*readModel.Read{
		carrie.ID: finishedRead(carrie.ID, finishedAt, 8.5),
	}

	timeline := buildTimeline(works, books, readByBook)
	require.Len(t, timeline, 2)

	assert.True(t, timeline[0].Read)
	require.NotNil(t, timeline[0].ReadDate)
	assert.Equal(t, finishedAt, *timeline[0].ReadDate)
	require.NotNil(t, timeline[0].UserRating)
	assert.Equal(t, "8.5", timeline[0].UserRating.String())
	require.NotNil(t, timeline[0].BookID)
	assert.Equal(t, carrie.ID, *timeline[0].BookID)

	assert.False(t, timeline[1].Read)
	assert.Nil(t, timeline[1].BookID)
}

func TestBuildTimeline_OwnedButUnreadIsNotRead(t *testing.T) {
	works := []*model.AuthorWork{work("Carrie", 1974)}
	books := []*bookModel.Book{ownedBook("Carrie")}

	timeline := buildTimeline(works, books, map[uuid.UUID]*readModel.Read{})
	require.Len(t, timeline, 1)
	assert.False(t, timeline[0].Read)
}

func TestBuildReadingPattern_MiddleDominant(t *testing.T) {
	// Span 1970-2000: early <= 1980, middle <= 1990, recent > 1990
	timeline := []model.TimelineEntry{
		{Year: intPtr(1970), Read: false},
		{Year: intPtr(1975), Read: false},
		{Year: intPtr(1985), Read: true},
		{Year: intPtr(1988), Read: true},
		{Year: intPtr(1995), Read: false},
		{Year: intPtr(2000), Read: true},
	}

	pattern := buildReadingPattern(timeline)
	assert.Equal(t, 0.0, pattern.EarlyWorksCompletion)
	assert.Equal(t, 1.0, pattern.MiddlePeriodCompletion)
	assert.Equal(t, 0.5, pattern.RecentWorksCompletion)
	require.NotNil(t, pattern.Insight)
	assert.Equal(t, insightMiddlePeriod, *pattern.Insight)
}

func TestBuildReadingPattern_RecentDominant(t *testing.T) {
	timeline := []model.TimelineEntry{
		{Year: intPtr(1970), Read: false},
		{Year: intPtr(1985), Read: false},
		{Year: intPtr(2000), Read: true},
	}

	pattern := buildReadingPattern(timeline)
	require.NotNil(t, pattern.Insight)
	assert.Equal(t, insightRecentWorks, *pattern.Insight)
}

func TestBuildReadingPattern_EarlyDominant(t *testing.T) {
	timeline := []model.TimelineEntry{
		{Year: intPtr(1970), Read: true},
		{Year: intPtr(1985), Read: false},
		{Year: intPtr(2000), Read: false},
	}

	pattern := buildReadingPattern(timeline)
	require.NotNil(t, pattern.Insight)
	assert.Equal(t, insightEarlyWorks, *pattern.Insight)
}

func TestBuildReadingPattern_NoDominantPeriod(t *testing.T) {
	timeline := []model.TimelineEntry{
		{Year: intPtr(1970), Read: true},
		{Year: intPtr(1985), Read: true},
		{Year: intPtr(2000), Read: true},
	}

	pattern := buildReadingPattern(timeline)
	assert.Nil(t, pattern.Insight)
}

func TestBuildReadingPattern_EmptyAndYearless(t *testing.T) {
	assert.Equal(t, model.ReadingPattern{}, buildReadingPattern(nil))

	timeline := []model.TimelineEntry{{Read: true}, {Read: false}}
	pattern := buildReadingPattern(timeline)
	assert.Equal(t, 0.0, pattern.EarlyWorksCompletion)
	assert.Nil(t, pattern.Insight)
}

func TestBuildRecommendations_OwnedUnreadOnly(t *testing.T) {
	carrie := ownedBook("Carrie")
	shining := ownedBook("The Shining")
	works := []*model.AuthorWork{
		work("The Shining", 1977),
		work("Carrie", 1974),
		work("Misery", 1987), // not owned
	}
	readIDs := map[uuid.UUID]struct{}{shining.ID: {}}

	recs := buildRecommendations(works, []*bookModel.Book{carrie, shining}, readIDs)
	require.Len(t, recs, 1)
	assert.Equal(t, "Carrie", recs[0].Title)
	assert.Equal(t, recommendReasonOwnedUnread, recs[0].Reason)
	assert.Equal(t, 1, recs[0].Priority)
}

func TestBuildRecommendations_SortedByYearAndCapped(t *testing.T) {
	var works []*model.AuthorWork
	var books []*bookModel.Book
	for _, year := range []int{1990, 1974, 1982, 1977, 1995, 1987, 2001} {
		w := work("Book "+time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006"), year)
		works = append(works, w)
		books = append(books, ownedBook(w.Title))
	}

	recs := buildRecommendations(works, books, map[uuid.UUID]struct{}{})
	require.Len(t, recs, 5)
	assert.Equal(t, "Book 1974", recs[0].Title)
	assert.Equal(t, "Book 1977", recs[1].Title)
	assert.Equal(t, "Book 1990", recs[4].Title)
}
