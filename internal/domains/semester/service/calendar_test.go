package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklog-backend/internal/domains/semester/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSemesterOf(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"epoch day", day(2005, time.May, 15), 1},
		{"last day of semester 1", day(2005, time.November, 14), 1},
		{"first day of semester 2", day(2005, time.November, 15), 2},
		{"january falls in previous even semester", day(2006, time.January, 10), 2},
		{"last day of semester 2", day(2006, time.May, 14), 2},
		{"first day of semester 3", day(2006, time.May, 15), 3},
		{"deep into the calendar", day(2024, time.June, 1), 39},
		{"december of a later year", day(2024, time.December, 25), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SemesterOf(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSemesterOf_BeforeEpoch(t *testing.T) {
	dates := []time.Time{
		day(2005, time.May, 14),
		day(2005, time.January, 1),
		day(1999, time.December, 31),
	}

	for _, date := range dates {
		_, err := SemesterOf(date)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrDateBeforeEpoch))

		var semErr *model.SemesterError
		require.ErrorAs(t, err, &semErr)
		assert.Equal(t, model.ErrCodeDateBeforeEpoch, semErr.Code)
	}
}

func TestRangeOf(t *testing.T) {
	tests := []struct {
		number    int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{1, day(2005, time.May, 15), day(2005, time.November, 14)},
		{2, day(2005, time.November, 15), day(2006, time.May, 14)},
		{3, day(2006, time.May, 15), day(2006, time.November, 14)},
		{40, day(2024, time.November, 15), day(2025, time.May, 14)},
	}

	for _, tt := range tests {
		start, end, err := RangeOf(tt.number)
		require.NoError(t, err)
		assert.Equal(t, tt.wantStart, start, "start of semester %d", tt.number)
		assert.Equal(t, tt.wantEnd, end, "end of semester %d", tt.number)
	}
}

func TestRangeOf_InvalidNumber(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		_, _, err := RangeOf(n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidSemesterNumber))
	}
}

// Both endpoints of every range map back to the same semester number.
func TestCalendarRoundTrip(t *testing.T) {
	for n := 1; n <= 80; n++ {
		start, end, err := RangeOf(n)
		require.NoError(t, err)

		gotStart, err := SemesterOf(start)
		require.NoError(t, err)
		assert.Equal(t, n, gotStart, "start of semester %d maps back", n)

		gotEnd, err := SemesterOf(end)
		require.NoError(t, err)
		assert.Equal(t, n, gotEnd, "end of semester %d maps back", n)
	}
}

// Consecutive semesters tile the calendar with no gaps or overlaps.
func TestCalendarContiguity(t *testing.T) {
	for n := 1; n < 80; n++ {
		_, end, err := RangeOf(n)
		require.NoError(t, err)

		nextStart, _, err := RangeOf(n + 1)
		require.NoError(t, err)

		assert.Equal(t, end.AddDate(0, 0, 1), nextStart,
			"semester %d ends the day before semester %d starts", n, n+1)
	}
}

func TestFormatRange(t *testing.T) {
	got, err := FormatRange(1)
	require.NoError(t, err)
	assert.Equal(t, "May 15, 2005 - Nov 14, 2005", got)

	got, err = FormatRange(2)
	require.NoError(t, err)
	assert.Equal(t, "Nov 15, 2005 - May 14, 2006", got)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Semester 7", DisplayName(7, nil))

	empty := ""
	assert.Equal(t, "Semester 7", DisplayName(7, &empty))

	custom := "Summer of Sci-Fi"
	assert.Equal(t, "Summer of Sci-Fi", DisplayName(7, &custom))
}
