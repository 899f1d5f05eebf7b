package service

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	bookModel "booklog-backend/internal/domains/book/model"
	"booklog-backend/internal/domains/completionist/model"
	readModel "booklog-backend/internal/domains/read/model"
)

// Insight strings surfaced on the reading pattern
const (
	insightMiddlePeriod = "You gravitated toward this author's middle period! Consider exploring their early experimental works."
	insightRecentWorks  = "You prefer this author's recent works. Try exploring their earlier foundational works."
	insightEarlyWorks   = "You've focused on the early works. The author's later works might offer new perspectives."
)

const recommendReasonOwnedUnread = "You own this book but haven't read it yet"

const maxRecommendations = 5

// matchWork finds the user's copy of a canon work. Titles match on
// case-insensitive equality; ISBNs match when the work carries one.
func matchWork(work *model.AuthorWork, books []*bookModel.Book) *bookModel.Book {
	workTitle := strings.ToLower(work.Title)
	for _, book := range books {
		if strings.ToLower(book.Title) == workTitle {
			return book
		}
		if work.ISBN13 != nil && book.ISBN13 != nil && *book.ISBN13 == *work.ISBN13 {
			return book
		}
		if work.ISBN10 != nil && book.ISBN10 != nil && *book.ISBN10 == *work.ISBN10 {
			return book
		}
	}
	return nil
}

// buildTimeline walks the canon's works in publication order and marks
// the ones the user has finished, carrying the read date and rating over.
func buildTimeline(works []*model.AuthorWork, books []*bookModel.Book, readByBook map[uuid.UUID]*readModel.Read) []model.TimelineEntry {
	timeline := make([]model.TimelineEntry, 0, len(works))
	for _, work := range works {
		entry := model.TimelineEntry{
			WorkID:    work.ID,
			Title:     work.Title,
			Year:      work.PublicationYear,
			PageCount: work.PageCount,
		}

		if book := matchWork(work, books); book != nil {
			if read, ok := readByBook[book.ID]; ok {
				bookID := book.ID
				entry.Read = true
				entry.BookID = &bookID
				entry.ReadDate = read.DateFinished
				entry.UserRating = read.Rating
			}
		}
		timeline = append(timeline, entry)
	}
	return timeline
}

// buildReadingPattern splits the timeline into thirds of the author's
// publication span and reports how much of each third the user finished.
// Entries without a publication year are left out of the analysis.
func buildReadingPattern(timeline []model.TimelineEntry) model.ReadingPattern {
	pattern := model.ReadingPattern{}

	minYear, maxYear := 0, 0
	found := false
	for _, entry := range timeline {
		if entry.Year == nil {
			continue
		}
		if !found || *entry.Year < minYear {
			minYear = *entry.Year
		}
		if !found || *entry.Year > maxYear {
			maxYear = *entry.Year
		}
		found = true
	}
	if !found {
		return pattern
	}

	span := maxYear - minYear
	earlyEnd := minYear + span/3
	middleEnd := minYear + span*2/3

	var earlyTotal, earlyRead, middleTotal, middleRead, recentTotal, recentRead int
	for _, entry := range timeline {
		if entry.Year == nil {
			continue
		}
		switch {
		case *entry.Year <= earlyEnd:
			earlyTotal++
			if entry.Read {
				earlyRead++
			}
		case *entry.Year <= middleEnd:
			middleTotal++
			if entry.Read {
				middleRead++
			}
		default:
			recentTotal++
			if entry.Read {
				recentRead++
			}
		}
	}

	pattern.EarlyWorksCompletion = fraction(earlyRead, earlyTotal)
	pattern.MiddlePeriodCompletion = fraction(middleRead, middleTotal)
	pattern.RecentWorksCompletion = fraction(recentRead, recentTotal)

	early, middle, recent := pattern.EarlyWorksCompletion, pattern.MiddlePeriodCompletion, pattern.RecentWorksCompletion
	switch {
	case middle > early && middle > recent:
		insight := insightMiddlePeriod
		pattern.Insight = &insight
	case recent > early && recent > middle:
		insight := insightRecentWorks
		pattern.Insight = &insight
	case early > middle && early > recent:
		insight := insightEarlyWorks
		pattern.Insight = &insight
	}

	return pattern
}

func fraction(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// buildRecommendations suggests canon works the user owns but has not
// finished, earliest publications first, capped at five.
func buildRecommendations(works []*model.AuthorWork, books []*bookModel.Book, readBookIDs map[uuid.UUID]struct{}) []model.Recommendation {
	recommendations := make([]model.Recommendation, 0)
	for _, work := range works {
		book := matchWork(work, books)
		if book == nil {
			continue
		}
		if _, read := readBookIDs[book.ID]; read {
			continue
		}
		recommendations = append(recommendations, model.Recommendation{
			WorkID:          work.ID,
			Title:           work.Title,
			Reason:          recommendReasonOwnedUnread,
			Priority:        1,
			PublicationYear: work.PublicationYear,
			PageCount:       work.PageCount,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Priority != recommendations[j].Priority {
			return recommendations[i].Priority < recommendations[j].Priority
		}
		return yearOrZero(recommendations[i].PublicationYear) < yearOrZero(recommendations[j].PublicationYear)
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func yearOrZero(year *int) int {
	if year == nil {
		return 0
	}
	return *year
}
