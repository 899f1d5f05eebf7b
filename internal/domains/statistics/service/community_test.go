package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	readModel "booklog-backend/internal/domains/read/model"
	"booklog-backend/internal/domains/statistics/model"
)

func withRating(value float64) readOpt {
	return func(r *readModel.Read) {
		d := decimal.NewFromFloat(value)
		r.Rating = &d
	}
}

func infosFor(userIDs ...uuid.UUID) map[uuid.UUID]model.UserInfo {
	infos := make(map[uuid.UUID]model.UserInfo, len(userIDs))
	for i, id := range userIDs {
		name := string(rune('a' + i))
		infos[id] = model.UserInfo{UserID: id, Username: name, DisplayName: name}
	}
	return infos
}

func TestGroupByIdentity(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()

	// Same work, different owners, noisy metadata
	r1 := newRead(alice, withBook("The Road", "Cormac McCarthy"))
	r2 := newRead(bob, withBook("the   ROAD", "cormac mccarthy"))
	r3 := newRead(alice, withBook("Dune", "Frank Herbert"))

	groups := groupByIdentity([]*readModel.Read{r1, r2, r3})
	require.Len(t, groups, 2)

	assert.Equal(t, "the road|cormac mccarthy", groups[0].key)
	assert.Len(t, groups[0].reads, 2)
	// Canonical identity comes from the first row seen
	assert.Equal(t, r1.BookID, groups[0].bookID)
	assert.Equal(t, "The Road", groups[0].title)

	assert.Equal(t, "dune|frank herbert", groups[1].key)
	assert.Len(t, groups[1].reads, 1)
}

func TestBuildReadsInCommon(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	infos := infosFor(alice, bob, carol)

	reads := []*readModel.Read{
		newRead(alice, withBook("The Road", "Cormac McCarthy")),
		newRead(bob, withBook("the road", "cormac mccarthy")),
		newRead(carol, withBook("The Road", "Cormac McCarthy")),
		newRead(alice, withBook("Dune", "Frank Herbert")),
		newRead(bob, withBook("Dune", "Frank Herbert")),
		newRead(alice, withBook("Solaris", "Stanislaw Lem")), // single reader
	}

	result := buildReadsInCommon(groupByIdentity(reads), 2, infos)
	require.Len(t, result, 2)

	// Sorted by user count descending
	assert.Equal(t, "The Road", result[0].Title)
	assert.Equal(t, 3, result[0].UserCount)
	assert.Equal(t, 3, result[0].ReadCount)
	assert.Equal(t, "Dune", result[1].Title)
	assert.Equal(t, 2, result[1].UserCount)
}

// A group never appears with fewer distinct users than the minimum,
// even when one user logged multiple rereads.
func TestBuildReadsInCommon_MinUserCount(t *testing.T) {
	alice := uuid.New()
	book := newRead(alice, withBook("Dune", "Frank Herbert"))
	reread := newRead(alice, withBook("Dune", "Frank Herbert"))

	result := buildReadsInCommon(groupByIdentity([]*readModel.Read{book, reread}), 2, infosFor(alice))
	assert.Empty(t, result)
}

func TestBuildSimilarSentiment(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	infos := infosFor(alice, bob, carol)

	reads := []*readModel.Read{
		// Tight consensus: stddev of [8, 9] is ~0.707
		newRead(alice, withBook("The Road", "Cormac McCarthy"), withRating(8)),
		newRead(bob, withBook("The Road", "Cormac McCarthy"), withRating(9)),
		// Split opinion: stddev of [2, 9.5] is ~5.3
		newRead(alice, withBook("Ulysses", "James Joyce"), withRating(2)),
		newRead(bob, withBook("Ulysses", "James Joyce"), withRating(9.5)),
		// One rating is never a consensus
		newRead(carol, withBook("Solaris", "Stanislaw Lem"), withRating(10)),
	}

	result := buildSimilarSentiment(groupByIdentity(reads), 1.5, infos)
	require.Len(t, result, 1)

	entry := result[0]
	assert.Equal(t, "The Road", entry.Title)
	assert.InDelta(t, 8.5, entry.AverageRating, 0.0001)
	assert.InDelta(t, 0.7071, entry.RatingStdDev, 0.001)
	assert.Equal(t, map[string]float64{"a": 8, "b": 9}, entry.UserRatings)
}

func TestBuildSimilarSentiment_ThresholdBoundary(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	infos := infosFor(alice, bob)

	// stddev of [7, 9] is ~1.414, inside the 1.5 threshold
	inside := []*readModel.Read{
		newRead(alice, withBook("A", "X"), withRating(7)),
		newRead(bob, withBook("A", "X"), withRating(9)),
	}
	assert.Len(t, buildSimilarSentiment(groupByIdentity(inside), 1.5, infos), 1)

	// stddev of [7, 9.5] is ~1.77, outside
	outside := []*readModel.Read{
		newRead(alice, withBook("B", "X"), withRating(7)),
		newRead(bob, withBook("B", "X"), withRating(9.5)),
	}
	assert.Empty(t, buildSimilarSentiment(groupByIdentity(outside), 1.5, infos))
}

// Two users finish the same work one day apart with no start dates. The
// estimated 30-day windows overlap almost fully, which must land in the
// high tier.
func TestBuildConjugation_EstimatedPeriodsScoreHigh(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	infos := infosFor(alice, bob)

	reads := []*readModel.Read{
		newRead(alice, withBook("The Road", "Cormac McCarthy"), finishedOn(2024, time.March, 10)),
		newRead(bob, withBook("the road", "cormac mccarthy"), finishedOn(2024, time.March, 11)),
	}

	result := buildConjugation(groupByIdentity(reads), 10, infos)
	require.Len(t, result, 1)

	entry := result[0]
	assert.Equal(t, model.ScoreHigh, entry.Score)
	assert.Greater(t, entry.OverlapPercentage, 90.0)
	require.Len(t, entry.OverlapDates, 2)

	// Intersection window: later start to earlier finish
	assert.Equal(t, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), entry.OverlapDates[0])
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), entry.OverlapDates[1])
}

func TestBuildConjugation_Tiers(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	infos := infosFor(alice, bob)

	tests := []struct {
		name      string
		aliceEnd  time.Time
		bobEnd    time.Time
		wantScore model.ConjugationScore
	}{
		{
			"finishes two days apart",
			time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
			model.ScoreHigh,
		},
		{
			"finishes four days apart",
			time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC),
			model.ScoreMedium,
		},
		{
			"months apart still surfaces as low",
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			model.ScoreLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Explicit short periods keep overlap percentage from
			// promoting the tier.
			r1 := newRead(alice, withBook("A", "X"))
			r1.DateStarted = timePtr(tt.aliceEnd.AddDate(0, 0, -1))
			r1.DateFinished = &tt.aliceEnd

			r2 := newRead(bob, withBook("A", "X"))
			r2.DateStarted = timePtr(tt.bobEnd.AddDate(0, 0, -1))
			r2.DateFinished = &tt.bobEnd

			result := buildConjugation(groupByIdentity([]*readModel.Read{r1, r2}), 10, infos)
			require.Len(t, result, 1)
			assert.Equal(t, tt.wantScore, result[0].Score)
		})
	}
}

func TestBuildConjugation_SingleReaderSkipped(t *testing.T) {
	alice := uuid.New()
	reads := []*readModel.Read{
		newRead(alice, withBook("A", "X"), finishedOn(2024, time.March, 1)),
	}
	assert.Empty(t, buildConjugation(groupByIdentity(reads), 10, infosFor(alice)))
}

func TestBuildConjugation_Limit(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	infos := infosFor(alice, bob)

	var reads []*readModel.Read
	titles := []string{"A", "B", "C"}
	for _, title := range titles {
		reads = append(reads,
			newRead(alice, withBook(title, "X"), finishedOn(2024, time.March, 1)),
			newRead(bob, withBook(title, "X"), finishedOn(2024, time.March, 2)),
		)
	}

	result := buildConjugation(groupByIdentity(reads), 2, infos)
	assert.Len(t, result, 2)
}

func TestOverlapPercentage(t *testing.T) {
	d := func(day int) time.Time {
		return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
	}

	t.Run("identical ranges", func(t *testing.T) {
		assert.InDelta(t, 100.0, overlapPercentage(d(1), d(10), d(1), d(10)), 0.0001)
	})

	t.Run("disjoint ranges", func(t *testing.T) {
		assert.Zero(t, overlapPercentage(d(1), d(5), d(10), d(15)))
	})

	t.Run("partial overlap relative to shorter range", func(t *testing.T) {
		// [1..10] vs [8..11]: overlap 8..10 = 3 days, shorter range 4 days
		assert.InDelta(t, 75.0, overlapPercentage(d(1), d(10), d(8), d(11)), 0.0001)
	})

	t.Run("touching endpoints overlap one day", func(t *testing.T) {
		// [1..5] vs [5..9]: overlap is the single shared day
		assert.InDelta(t, 20.0, overlapPercentage(d(1), d(5), d(5), d(9)), 0.0001)
	})
}

func timePtr(t time.Time) *time.Time { return &t }
