package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "booklog-backend/internal/domains/book/model"
	readModel "booklog-backend/internal/domains/read/model"
	"booklog-backend/internal/domains/statistics/model"
)

type readOpt func(*readModel.Read)

func finishedOn(y int, m time.Month, d int) readOpt {
	return func(r *readModel.Read) {
		finished := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		r.DateFinished = &finished
	}
}

func startedOn(y int, m time.Month, d int) readOpt {
	return func(r *readModel.Read) {
		started := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		r.DateStarted = &started
	}
}

func withPoints(allegory, reasonable readModel.Points) readOpt {
	return func(r *readModel.Read) {
		r.PointsAllegory = &allegory
		r.PointsReasonable = &reasonable
	}
}

func withReview(text string) readOpt {
	return func(r *readModel.Read) { r.Review = &text }
}

func withBook(title, author string, opts ...func(*bookModel.Book)) readOpt {
	return func(r *readModel.Read) {
		book := &bookModel.Book{ID: r.BookID, Title: title, Author: author}
		for _, opt := range opts {
			opt(book)
		}
		r.Book = book
	}
}

func withFormat(f bookModel.Format) func(*bookModel.Book) {
	return func(b *bookModel.Book) { b.Format = f }
}

func withGenres(genres ...string) func(*bookModel.Book) {
	return func(b *bookModel.Book) { b.Genres = genres }
}

func newRead(userID uuid.UUID, opts ...readOpt) *readModel.Read {
	read := &readModel.Read{
		ID:     uuid.New(),
		BookID: uuid.New(),
		UserID: userID,
		Status: readModel.StatusRead,
	}
	for _, opt := range opts {
		opt(read)
	}
	return read
}

func TestBuildTimeBuckets(t *testing.T) {
	user := uuid.New()
	reads := []*readModel.Read{
		newRead(user, finishedOn(2024, time.January, 5), withPoints(100, 100)),
		newRead(user, finishedOn(2024, time.January, 20), withPoints(250, 250)),
		newRead(user, finishedOn(2024, time.March, 1), withPoints(125, 250)),
		newRead(user, finishedOn(2024, time.March, 2)), // no points yet
	}

	buckets, err := buildTimeBuckets(model.DimensionMonth, reads)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	assert.Equal(t, "2024-01", buckets[0].Label)
	assert.Equal(t, 2, buckets[0].ReadCount)
	assert.InDelta(t, 3.5, buckets[0].PointsAllegory, 0.0001)
	assert.InDelta(t, 3.5, buckets[0].PointsReasonable, 0.0001)

	assert.Equal(t, "2024-03", buckets[1].Label)
	assert.Equal(t, 2, buckets[1].ReadCount)
	assert.InDelta(t, 1.25, buckets[1].PointsAllegory, 0.0001)
	assert.InDelta(t, 2.5, buckets[1].PointsReasonable, 0.0001)
}

func TestBuildTimeBuckets_Empty(t *testing.T) {
	buckets, err := buildTimeBuckets(model.DimensionYear, nil)
	require.NoError(t, err)
	assert.Empty(t, buckets)
}

func TestBuildPointsTrend_AlgorithmSelection(t *testing.T) {
	user := uuid.New()
	reads := []*readModel.Read{
		newRead(user, finishedOn(2024, time.June, 1), withPoints(125, 250)),
	}

	allegory, err := buildPointsTrend(model.DimensionYear, "allegory", reads)
	require.NoError(t, err)
	require.Len(t, allegory, 1)
	assert.InDelta(t, 1.25, allegory[0].Value, 0.0001)

	reasonable, err := buildPointsTrend(model.DimensionYear, "reasonable", reads)
	require.NoError(t, err)
	require.Len(t, reasonable, 1)
	assert.InDelta(t, 2.5, reasonable[0].Value, 0.0001)
}

func TestBuildDistribution_Formats(t *testing.T) {
	user := uuid.New()
	reads := []*readModel.Read{
		newRead(user, withBook("A", "X", withFormat(bookModel.FormatPaperback))),
		newRead(user, withBook("B", "X", withFormat(bookModel.FormatPaperback))),
		newRead(user, withBook("C", "X", withFormat(bookModel.FormatKindle))),
		newRead(user, withBook("D", "X")), // no format recorded
	}

	slices := buildDistribution(reads, func(read *readModel.Read) []string {
		if read.Book == nil || read.Book.Format == "" {
			return nil
		}
		return []string{string(read.Book.Format)}
	}, 0)

	require.Len(t, slices, 2)
	assert.Equal(t, "PAPERBACK", slices[0].Key)
	assert.Equal(t, 2, slices[0].Count)
	assert.InDelta(t, 50.0, slices[0].Percentage, 0.0001)
	assert.Equal(t, "KINDLE", slices[1].Key)
	assert.InDelta(t, 25.0, slices[1].Percentage, 0.0001)
}

func TestBuildDistribution_GenresLimit(t *testing.T) {
	user := uuid.New()
	reads := []*readModel.Read{
		newRead(user, withBook("A", "X", withGenres("horror", "gothic"))),
		newRead(user, withBook("B", "X", withGenres("horror"))),
		newRead(user, withBook("C", "X", withGenres("sci-fi"))),
	}

	slices := buildDistribution(reads, func(read *readModel.Read) []string {
		if read.Book == nil {
			return nil
		}
		return read.Book.Genres
	}, 2)

	require.Len(t, slices, 2)
	assert.Equal(t, "horror", slices[0].Key)
	assert.Equal(t, 2, slices[0].Count)
}

func TestBuildAuthorFrequency(t *testing.T) {
	user := uuid.New()
	dune := newRead(user, withBook("Dune", "Frank Herbert"))
	reads := []*readModel.Read{
		dune,
		// Reread of the same book row
		&readModel.Read{ID: uuid.New(), BookID: dune.BookID, UserID: user, Book: dune.Book},
		newRead(user, withBook("Dune Messiah", "Frank Herbert")),
		newRead(user, withBook("The Road", "Cormac McCarthy")),
	}

	result := buildAuthorFrequency(reads, 10)
	require.Len(t, result, 2)

	assert.Equal(t, "Frank Herbert", result[0].Author)
	assert.Equal(t, 3, result[0].ReadCount)
	assert.Equal(t, 2, result[0].UniqueBooks)

	assert.Equal(t, "Cormac McCarthy", result[1].Author)
	assert.Equal(t, 1, result[1].ReadCount)
}

func TestBuildRate_ReviewRate(t *testing.T) {
	user := uuid.New()
	reads := []*readModel.Read{
		newRead(user, finishedOn(2024, time.January, 1), withReview("great")),
		newRead(user, finishedOn(2024, time.January, 2)),
		newRead(user, finishedOn(2024, time.February, 1), withReview("   ")), // blank review does not count
		newRead(user, finishedOn(2024, time.February, 2), withReview("solid")),
	}

	result, err := buildRate(model.DimensionMonth, reads, func(r *readModel.Read) bool {
		return r.HasReview()
	})
	require.NoError(t, err)

	require.Len(t, result.Buckets, 2)
	assert.Equal(t, "2024-01", result.Buckets[0].Label)
	assert.InDelta(t, 50.0, result.Buckets[0].Value, 0.0001)
	assert.Equal(t, 1, result.Buckets[0].Count)
	assert.Equal(t, 2, result.Buckets[0].Total)

	assert.InDelta(t, 50.0, result.OverallRate, 0.0001)
}

func TestBuildRate_Empty(t *testing.T) {
	result, err := buildRate(model.DimensionAllTime, nil, func(*readModel.Read) bool { return true })
	require.NoError(t, err)
	assert.Empty(t, result.Buckets)
	assert.Zero(t, result.OverallRate)
}
