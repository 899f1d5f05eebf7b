package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ===== TIME DIMENSIONS =====

// TimeDimension selects how finished reads are bucketed over time
type TimeDimension string

const (
	DimensionDay      TimeDimension = "day"
	DimensionWeek     TimeDimension = "week"
	DimensionMonth    TimeDimension = "month"
	DimensionYear     TimeDimension = "year"
	DimensionSemester TimeDimension = "semester"
	DimensionAllTime  TimeDimension = "alltime"
)

// ParseTimeDimension maps user input to a dimension, defaulting to alltime
func ParseTimeDimension(s string) TimeDimension {
	switch TimeDimension(strings.ToLower(strings.TrimSpace(s))) {
	case DimensionDay:
		return DimensionDay
	case DimensionWeek:
		return DimensionWeek
	case DimensionMonth:
		return DimensionMonth
	case DimensionYear:
		return DimensionYear
	case DimensionSemester:
		return DimensionSemester
	default:
		return DimensionAllTime
	}
}

// ===== PER-USER STATISTICS =====

// SummaryResponse is the all-time headline card for one reader
type SummaryResponse struct {
	TotalReads       int      `json:"total_reads"`
	UniqueBooks      int      `json:"unique_books"`
	PointsAllegory   float64  `json:"points_allegory"`
	PointsReasonable float64  `json:"points_reasonable"`
	AverageRating    *float64 `json:"average_rating"`
	ReviewRate       float64  `json:"review_rate"`
}

// TimeBucket is one row of the reading-over-time series
type TimeBucket struct {
	Label            string  `json:"label"`
	ReadCount        int     `json:"read_count"`
	PointsAllegory   float64 `json:"points_allegory"`
	PointsReasonable float64 `json:"points_reasonable"`
}

// RateBucket is one row of a review/comment rate series
type RateBucket struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
	Total int     `json:"total"`
}

// RateResult pairs a rate series with the overall rate
type RateResult struct {
	Buckets     []RateBucket `json:"buckets"`
	OverallRate float64      `json:"overall_rate"`
}

// PointsBucket is one row of a points trend series
type PointsBucket struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// DistributionSlice is one row of a format/type/genre breakdown
type DistributionSlice struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AuthorFrequency is one row of the most-read-authors list
type AuthorFrequency struct {
	Author      string `json:"author"`
	ReadCount   int    `json:"read_count"`
	UniqueBooks int    `json:"unique_books"`
}

// ===== COMMUNITY ANALYTICS =====

// UserInfo identifies a reader in community responses
type UserInfo struct {
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name"`
	ProfilePhotoURL *string   `json:"profile_photo_url"`
}

// ReadsInCommonEntry is one book read by multiple users
type ReadsInCommonEntry struct {
	BookID    uuid.UUID  `json:"book_id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	UserCount int        `json:"user_count"`
	ReadCount int        `json:"read_count"`
	Formats   []string   `json:"formats"`
	Users     []UserInfo `json:"users"`
}

// SimilarSentimentEntry is one book the community rated consistently
type SimilarSentimentEntry struct {
	BookID        uuid.UUID          `json:"book_id"`
	Title         string             `json:"title"`
	Author        string             `json:"author"`
	AverageRating float64            `json:"average_rating"`
	RatingStdDev  float64            `json:"rating_std_dev"`
	UserRatings   map[string]float64 `json:"user_ratings"`
	Users         []UserInfo         `json:"users"`
}

// ConjugationScore ranks how closely reading periods coincided
type ConjugationScore string

const (
	ScoreHigh   ConjugationScore = "high"
	ScoreMedium ConjugationScore = "medium"
	ScoreLow    ConjugationScore = "low"
)

// ReadingPeriod is one user's estimated reading window
type ReadingPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ConjugationUser is a reader plus the format they read
type ConjugationUser struct {
	UserInfo
	Format *string `json:"format"`
}

// ConjugationEntry is one book multiple users read around the same time
type ConjugationEntry struct {
	BookID            uuid.UUID                `json:"book_id"`
	Title             string                   `json:"title"`
	Author            string                   `json:"author"`
	Score             ConjugationScore         `json:"conjugation_score"`
	FinishDates       map[string]time.Time     `json:"finish_dates"`
	ReadingPeriods    map[string]ReadingPeriod `json:"reading_periods"`
	OverlapPercentage float64                  `json:"overlap_percentage"`
	OverlapDates      []time.Time              `json:"overlap_dates"`
	Users             []ConjugationUser        `json:"users"`
}
