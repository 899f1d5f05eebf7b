package service

import (
	"fmt"
	"time"

	"booklog-backend/internal/domains/semester/model"
)

// The reading calendar is split into fixed six-month semesters anchored
// at May 15, 2005:
//
//	Semester 1: May 15, 2005 - Nov 14, 2005
//	Semester 2: Nov 15, 2005 - May 14, 2006
//	Semester 3: May 15, 2006 - Nov 14, 2006
//
// Odd semesters run May 15 - Nov 14, even semesters Nov 15 - May 14 of
// the following year.

const (
	epochYear  = 2005
	epochMonth = time.May
	epochDay   = 15
)

// Epoch returns the first day of semester 1
func Epoch() time.Time {
	return time.Date(epochYear, epochMonth, epochDay, 0, 0, 0, 0, time.UTC)
}

// SemesterOf maps a date to its 1-based semester number.
// Dates before the epoch are a domain error, never clamped to semester 1.
func SemesterOf(date time.Time) (int, error) {
	y, m, d := date.Date()

	if beforeEpoch(y, m, d) {
		return 0, model.NewDateBeforeEpochError(date)
	}

	yearDiff := y - epochYear

	switch {
	case m < time.May || (m == time.May && d < 15):
		// Before May 15: second half of the even semester that started
		// in November of the previous year
		return (yearDiff-1)*2 + 2, nil
	case m < time.November || (m == time.November && d < 15):
		// May 15 to Nov 14: odd semester
		return yearDiff*2 + 1, nil
	default:
		// Nov 15 onwards: even semester
		return yearDiff*2 + 2, nil
	}
}

// RangeOf returns the inclusive [start, end] dates of a semester.
// Numbers below 1 are a domain error.
func RangeOf(number int) (start, end time.Time, err error) {
	if number < 1 {
		return time.Time{}, time.Time{}, model.NewInvalidSemesterNumberError(number)
	}

	yearOffset := (number - 1) / 2
	startYear := epochYear + yearOffset

	if number%2 == 1 {
		// Odd semester: May 15 - Nov 14 of the same year
		start = time.Date(startYear, time.May, 15, 0, 0, 0, 0, time.UTC)
		end = time.Date(startYear, time.November, 14, 0, 0, 0, 0, time.UTC)
	} else {
		// Even semester: Nov 15 - May 14 of the next year
		start = time.Date(startYear, time.November, 15, 0, 0, 0, 0, time.UTC)
		end = time.Date(startYear+1, time.May, 14, 0, 0, 0, 0, time.UTC)
	}

	return start, end, nil
}

// CurrentSemester returns the semester number for today
func CurrentSemester() (int, error) {
	return SemesterOf(time.Now().UTC())
}

// FormatRange renders a semester span like "May 15, 2005 - Nov 14, 2005"
func FormatRange(number int) (string, error) {
	start, end, err := RangeOf(number)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006")), nil
}

// DisplayName returns the custom name when set, otherwise "Semester {n}"
func DisplayName(number int, customName *string) string {
	if customName != nil && *customName != "" {
		return *customName
	}
	return fmt.Sprintf("Semester %d", number)
}

func beforeEpoch(y int, m time.Month, d int) bool {
	if y != epochYear {
		return y < epochYear
	}
	if m != epochMonth {
		return m < epochMonth
	}
	return d < epochDay
}
