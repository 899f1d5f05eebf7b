package service

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/statistics/model"
)

// ServiceInterface defines statistics business logic.
// All per-user series treat finished reads, not books, as the unit of
// measurement: a book read twice counts twice.
type ServiceInterface interface {
	// Summary returns the all-time headline numbers for one reader
	Summary(ctx context.Context, userID uuid.UUID) (*model.SummaryResponse, error)

	// ReadingStats returns reads and points bucketed over time
	ReadingStats(ctx context.Context, userID uuid.UUID, dim model.TimeDimension) ([]model.TimeBucket, error)

	// PointsTrend returns one algorithm's points over time.
	// Algorithm is "allegory" or "reasonable", defaulting to allegory.
	PointsTrend(ctx context.Context, userID uuid.UUID, dim model.TimeDimension, algorithm string) ([]model.PointsBucket, error)

	// FormatBreakdown, BookTypeBreakdown and GenreBreakdown return
	// distributions over finished reads.
	FormatBreakdown(ctx context.Context, userID uuid.UUID, dim model.TimeDimension) ([]model.DistributionSlice, error)
	BookTypeBreakdown(ctx context.Context, userID uuid.UUID, dim model.TimeDimension) ([]model.DistributionSlice, error)
	GenreBreakdown(ctx context.Context, userID uuid.UUID, dim model.TimeDimension, limit int) ([]model.DistributionSlice, error)

	// AuthorFrequency returns the most-read authors
	AuthorFrequency(ctx context.Context, userID uuid.UUID, limit int) ([]model.AuthorFrequency, error)

	// ReviewRate and CommentRate return engagement rates over time
	ReviewRate(ctx context.Context, userID uuid.UUID, dim model.TimeDimension) (*model.RateResult, error)
	CommentRate(ctx context.Context, userID uuid.UUID, dim model.TimeDimension) (*model.RateResult, error)

	// Community analytics span every user
	ReadsInCommon(ctx context.Context, minUserCount int) ([]model.ReadsInCommonEntry, error)
	SimilarSentiment(ctx context.Context, threshold float64) ([]model.SimilarSentimentEntry, error)
	ConjugationHighlights(ctx context.Context, limit int) ([]model.ConjugationEntry, error)

	// RefreshCommunityCache drops cached community results so the next
	// request recomputes them.
	RefreshCommunityCache(ctx context.Context) error
}
