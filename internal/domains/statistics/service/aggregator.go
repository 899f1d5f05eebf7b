package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	semesterService "booklog-backend/internal/domains/semester/service"
	"booklog-backend/internal/domains/statistics/model"
)

// DimensionLabel buckets a finish date by the given time dimension.
//
// Label formats:
//
//	day       2024-03-10
//	week      2024-W10 (ISO week)
//	month     2024-03
//	year      2024
//	semester  S38
//	alltime   alltime
//
// The semester dimension inherits the calendar's domain errors, a
// pre-epoch finish date is rejected rather than mislabeled.
func DimensionLabel(dim model.TimeDimension, date time.Time) (string, error) {
	switch dim {
	case model.DimensionDay:
		return date.Format("2006-01-02"), nil
	case model.DimensionWeek:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), nil
	case model.DimensionMonth:
		return fmt.Sprintf("%d-%02d", date.Year(), int(date.Month())), nil
	case model.DimensionYear:
		return strconv.Itoa(date.Year()), nil
	case model.DimensionSemester:
		number, err := semesterService.SemesterOf(date)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("S%d", number), nil
	default:
		return "alltime", nil
	}
}

// sortLabels orders bucket labels chronologically. Date-shaped labels
// sort correctly as strings, semester labels need numeric ordering
// ("S2" before "S10").
func sortLabels(dim model.TimeDimension, labels []string) {
	if dim == model.DimensionSemester {
		sort.Slice(labels, func(i, j int) bool {
			return semesterLabelNumber(labels[i]) < semesterLabelNumber(labels[j])
		})
		return
	}
	sort.Strings(labels)
}

func semesterLabelNumber(label string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(label, "S"))
	return n
}
