package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	semesterModel "booklog-backend/internal/domains/semester/model"
	"booklog-backend/internal/domains/statistics/model"
)

func TestDimensionLabel(t *testing.T) {
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		dim  model.TimeDimension
		want string
	}{
		{model.DimensionDay, "2024-03-10"},
		{model.DimensionWeek, "2024-W10"},
		{model.DimensionMonth, "2024-03"},
		{model.DimensionYear, "2024"},
		{model.DimensionSemester, "S38"},
		{model.DimensionAllTime, "alltime"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dim), func(t *testing.T) {
			got, err := DimensionLabel(tt.dim, date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDimensionLabel_ISOWeekYearBoundary(t *testing.T) {
	// Dec 29, 2025 belongs to ISO week 1 of 2026
	got, err := DimensionLabel(model.DimensionWeek, time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2026-W01", got)
}

func TestDimensionLabel_SemesterBeforeEpoch(t *testing.T) {
	_, err := DimensionLabel(model.DimensionSemester, time.Date(2004, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, errors.Is(err, semesterModel.ErrDateBeforeEpoch))
}

func TestSortLabels(t *testing.T) {
	t.Run("semester labels sort numerically", func(t *testing.T) {
		labels := []string{"S10", "S2", "S1", "S38"}
		sortLabels(model.DimensionSemester, labels)
		assert.Equal(t, []string{"S1", "S2", "S10", "S38"}, labels)
	})

	t.Run("month labels sort lexically", func(t *testing.T) {
		labels := []string{"2024-03", "2023-12", "2024-01"}
		sortLabels(model.DimensionMonth, labels)
		assert.Equal(t, []string{"2023-12", "2024-01", "2024-03"}, labels)
	})
}

func TestParseTimeDimension(t *testing.T) {
	assert.Equal(t, model.DimensionWeek, model.ParseTimeDimension("week"))
	assert.Equal(t, model.DimensionSemester, model.ParseTimeDimension(" SEMESTER "))
	assert.Equal(t, model.DimensionAllTime, model.ParseTimeDimension(""))
	assert.Equal(t, model.DimensionAllTime, model.ParseTimeDimension("fortnight"))
}
