package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	readModel "booklog-backend/internal/domains/read/model"
)

func finishedRead(finished time.Time) *readModel.Read {
	return &readModel.Read{
		ID:           uuid.New(),
		Status:       readModel.StatusRead,
		DateFinished: &finished,
	}
}

func withPoints(read *readModel.Read, allegory, reasonable readModel.Points) *readModel.Read {
	read.PointsAllegory = &allegory
	read.PointsReasonable = &reasonable
	return read
}

func withReview(read *readModel.Read, review string) *readModel.Read {
	read.Review = &review
	return read
}

func TestSemesterStatsFor(t *testing.T) {
	// Semester 39 runs May 15 - Nov 14, 2024
	inSpan := day(2024, time.June, 1)
	otherSpan := day(2023, time.June, 1)

	reviewed := withReview(withPoints(finishedRead(inSpan), 250, 250), "great")
	unreviewed := withPoints(finishedRead(inSpan), 100, 150)
	elsewhere := withPoints(finishedRead(otherSpan), 500, 500)

	commented := map[uuid.UUID]struct{}{unreviewed.ID: {}}

	stats := semesterStatsFor([]*readModel.Read{reviewed, unreviewed, elsewhere}, commented, 39)

	assert.Equal(t, 2, stats.ReadsFinished)
	assert.Equal(t, 1, stats.WithoutReview)
	assert.Equal(t, 1, stats.Commented)
	assert.InDelta(t, 3.5, stats.TotalPointsAllegory, 0.0001)
	assert.InDelta(t, 4.0, stats.TotalPointsReasonable, 0.0001)
	assert.InDelta(t, 1.75, stats.AvgPointsAllegory, 0.0001)
	assert.InDelta(t, 2.0, stats.AvgPointsReasonable, 0.0001)
}

func TestSemesterStatsFor_EmptySpan(t *testing.T) {
	reads := []*readModel.Read{
		withPoints(finishedRead(day(2024, time.June, 1)), 250, 250),
	}

	stats := semesterStatsFor(reads, nil, 5)

	assert.Equal(t, 0, stats.ReadsFinished)
	assert.Zero(t, stats.TotalPointsAllegory)
	assert.Zero(t, stats.AvgPointsAllegory)
}

// A READ read without a finish date scores points but has no place on
// the calendar, so it cannot count toward any semester.
func TestSemesterStatsFor_UndatedReadSkipped(t *testing.T) {
	undated := withPoints(&readModel.Read{
		ID:     uuid.New(),
		Status: readModel.StatusRead,
	}, 250, 250)

	stats := semesterStatsFor([]*readModel.Read{undated}, nil, 39)

	assert.Equal(t, 0, stats.ReadsFinished)
}

func TestSemesterPage(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		limit       int
		offset      int
		want        []int
		wantHasMore bool
	}{
		{"first page from current backwards", 39, 4, 0, []int{39, 38, 37, 36}, true},
		{"second page", 39, 4, 4, []int{35, 34, 33, 32}, true},
		{"stops at semester one", 3, 4, 0, []int{3, 2, 1}, false},
		{"last exact page", 8, 4, 4, []int{4, 3, 2, 1}, false},
		{"offset past the calendar start", 3, 4, 5, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			numbers, hasMore := semesterPage(tt.current, tt.limit, tt.offset)
			assert.Equal(t, tt.want, numbers)
			assert.Equal(t, tt.wantHasMore, hasMore)
		})
	}
}
