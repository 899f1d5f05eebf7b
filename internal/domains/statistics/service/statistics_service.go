package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	readModel "booklog-backend/internal/domains/read/model"
	readRepository "booklog-backend/internal/domains/read/repository"
	"booklog-backend/internal/domains/statistics/model"
	"booklog-backend/internal/domains/statistics/repository"
	"booklog-backend/pkg/cache"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type statisticsService struct {
	statsRepo repository.StatisticsRepository
	readRepo  readRepository.ReadRepository
	cache     cache.Cache
}

func NewStatisticsService(
	statsRepo repository.StatisticsRepository,
	readRepo readRepository.ReadRepository,
	cacheClient cache.Cache,
) ServiceInterface {
	return &statisticsService{
		statsRepo: statsRepo,
		readRepo:  readRepo,
		cache:     cacheClient,
	}
}

// =====================================================
// SUMMARY
// =====================================================

func (s *statisticsService) Summary(ctx context.Context, userID uuid.UUID) (*model.SummaryResponse, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &model.SummaryResponse{}
	uniqueBooks := make(map[uuid.UUID]struct{})
	reviewed := 0
	ratingSum := decimal.Zero
	rated := 0
	var allegory, reasonable readModel.Points

	for _, read := range reads {
		summary.TotalReads++
		uniqueBooks[read.BookID] = struct{}{}
		if read.HasReview() {
			reviewed++
		}
		if read.Rating != nil {
			ratingSum = ratingSum.Add(*read.Rating)
			rated++
		}
		if read.PointsAllegory != nil {
			allegory += *read.PointsAllegory
		}
		if read.PointsReasonable != nil {
			reasonable += *read.PointsReasonable
		}
	}

	summary.UniqueBooks = len(uniqueBooks)
	summary.PointsAllegory = allegory.Float()
	summary.PointsReasonable = reasonable.Float()
	if summary.TotalReads > 0 {
		summary.ReviewRate = float64(reviewed) / float64(summary.TotalReads)
	}
	if rated > 0 {
		avg, _ := ratingSum.Div(decimal.NewFromInt(int64(rated))).Round(2).Float64()
		summary.AverageRating = &avg
	}
	return summary, nil
}

// =====================================================
// READING STATS
// =====================================================

func (s *statisticsService) ReadingStats(
	ctx context.Context,
	userID uuid.UUID,
	dim model.TimeDimension,
) ([]model.TimeBucket, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildTimeBuckets(dim, reads)
}

// buildTimeBuckets groups finished reads by dimension label, counting
// reads and summing both point algorithms.
func buildTimeBuckets(dim model.TimeDimension, reads []*readModel.Read) ([]model.TimeBucket, error) {
	type acc struct {
		count      int
		allegory   readModel.Points
		reasonable readModel.Points
	}
	grouped := make(map[string]*acc)

	for _, read := range reads {
		if read.DateFinished == nil {
			continue
		}
		label, err := DimensionLabel(dim, *read.DateFinished)
		if err != nil {
			return nil, err
		}

		bucket, ok := grouped[label]
		if !ok {
			bucket = &acc{}
			grouped[label] = bucket
		}
		bucket.count++
		// Sums stay in fixed-point space, converted once per bucket
		if read.PointsAllegory != nil {
			bucket.allegory += *read.PointsAllegory
		}
		if read.PointsReasonable != nil {
			bucket.reasonable += *read.PointsReasonable
		}
	}

	result := make([]model.TimeBucket, 0, len(grouped))
	for _, label := range sortedLabels(dim, grouped) {
		bucket := grouped[label]
		result = append(result, model.TimeBucket{
			Label:            label,
			ReadCount:        bucket.count,
			PointsAllegory:   bucket.allegory.Float(),
			PointsReasonable: bucket.reasonable.Float(),
		})
	}
	return result, nil
}

// =====================================================
// POINTS TREND
// =====================================================

func (s *statisticsService) PointsTrend(
	ctx context.Context,
	userID uuid.UUID,
	dim model.TimeDimension,
	algorithm string,
) ([]model.PointsBucket, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildPointsTrend(dim, algorithm, reads)
}

func buildPointsTrend(dim model.TimeDimension, algorithm string, reads []*readModel.Read) ([]model.PointsBucket, error) {
	type acc struct {
		points readModel.Points
		count  int
	}
	grouped := make(map[string]*acc)

	for _, read := range reads {
		if read.DateFinished == nil {
			continue
		}
		label, err := DimensionLabel(dim, *read.DateFinished)
		if err != nil {
			return nil, err
		}

		bucket, ok := grouped[label]
		if !ok {
			bucket = &acc{}
			grouped[label] = bucket
		}
		bucket.count++

		if algorithm == "reasonable" {
			if read.PointsReasonable != nil {
				bucket.points += *read.PointsReasonable
			}
		} else if read.PointsAllegory != nil {
			bucket.points += *read.PointsAllegory
		}
	}

	result := make([]model.PointsBucket, 0, len(grouped))
	for _, label := range sortedLabels(dim, grouped) {
		bucket := grouped[label]
		result = append(result, model.PointsBucket{
			Label: label,
			Value: bucket.points.Float(),
			Count: bucket.count,
		})
	}
	return result, nil
}

// =====================================================
// DISTRIBUTIONS
// =====================================================

func (s *statisticsService) FormatBreakdown(
	ctx context.Context,
	userID uuid.UUID,
	dim model.TimeDimension,
) ([]model.DistributionSlice, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildDistribution(reads, func(read *readModel.Read) []string {
		if read.Book == nil || read.Book.Format == "" {
			return nil
		}
		return []string{string(read.Book.Format)}
	}, 0), nil
}

func (s *statisticsService) BookTypeBreakdown(
	ctx context.Context,
	userID uuid.UUID,
	dim model.TimeDimension,
) ([]model.DistributionSlice, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildDistribution(reads, func(read *readModel.Read) []string {
		if read.Book == nil || read.Book.BookType == nil {
			return nil
		}
		return []string{string(*read.Book.BookType)}
	}, 0), nil
}

func (s *statisticsService) GenreBreakdown(
	ctx context.Context,
	userID uuid.UUID,
	dim model.TimeDimension,
	limit int,
) ([]model.DistributionSlice, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return buildDistribution(reads, func(read *readModel.Read) []string {
		if read.Book == nil {
			return nil
		}
		return read.Book.Genres
	}, limit), nil
}

// buildDistribution counts keys across reads. Percentages are relative
// to the total read count, so multi-genre books can push genre
// percentages past a 100% sum.
func buildDistribution(
	reads []*readModel.Read,
	keysOf func(*readModel.Read) []string,
	limit int,
) []model.DistributionSlice {
	total := len(reads)
	if total == 0 {
		return []model.DistributionSlice{}
	}

	counts := make(map[string]int)
	for _, read := range reads {
		for _, key := range keysOf(read) {
			counts[key]++
		}
	}

	result := make([]model.DistributionSlice, 0, len(counts))
	for key, count := range counts {
		result = append(result, model.DistributionSlice{
			Key:        key,
			Count:      count,
			Percentage: float64(count) / float64(total) * 100,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Key < result[j].Key
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// =====================================================
// AUTHOR FREQUENCY
// =====================================================

func (s *statisticsService) AuthorFrequency(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]model.AuthorFrequency, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return buildAuthorFrequency(reads, limit), nil
}

func buildAuthorFrequency(reads []*readModel.Read, limit int) []model.AuthorFrequency {
	readCounts := make(map[string]int)
	bookSets := make(map[string]map[uuid.UUID]struct{})

	for _, read := range reads {
		if read.Book == nil || read.Book.Author == "" {
			continue
		}
		author := read.Book.Author
		readCounts[author]++
		if bookSets[author] == nil {
			bookSets[author] = make(map[uuid.UUID]struct{})
		}
		bookSets[author][read.BookID] = struct{}{}
	}

	result := make([]model.AuthorFrequency, 0, len(readCounts))
	for author, count := range readCounts {
		result = append(result, model.AuthorFrequency{
			Author:      author,
			ReadCount:   count,
			UniqueBooks: len(bookSets[author]),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ReadCount != result[j].ReadCount {
			return result[i].ReadCount > result[j].ReadCount
		}
		return result[i].Author < result[j].Author
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// =====================================================
// REVIEW RATE
// =====================================================

func (s *statisticsService) ReviewRate(
	ctx context.Context,
	userID uuid.UUID,
	dim model.TimeDimension,
) (*model.RateResult, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildRate(dim, reads, func(read *readModel.Read) bool {
		return read.HasReview()
	})
}

// =====================================================
// COMMENT RATE
// =====================================================

func (s *statisticsService) CommentRate(
	ctx context.Context,
	userID uuid.UUID,
	dim model.TimeDimension,
) (*model.RateResult, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	readIDs := make([]uuid.UUID, 0, len(reads))
	for _, read := range reads {
		readIDs = append(readIDs, read.ID)
	}

	commented, err := s.statsRepo.ListCommentedReadIDs(ctx, readIDs)
	if err != nil {
		return nil, err
	}

	return buildRate(dim, reads, func(read *readModel.Read) bool {
		_, ok := commented[read.ID]
		return ok
	})
}

// buildRate computes the share of finished reads satisfying a predicate,
// per time bucket and overall.
func buildRate(
	dim model.TimeDimension,
	reads []*readModel.Read,
	predicate func(*readModel.Read) bool,
) (*model.RateResult, error) {
	type acc struct {
		total   int
		matched int
	}
	grouped := make(map[string]*acc)
	totalReads, totalMatched := 0, 0

	for _, read := range reads {
		if read.DateFinished == nil {
			continue
		}
		label, err := DimensionLabel(dim, *read.DateFinished)
		if err != nil {
			return nil, err
		}

		bucket, ok := grouped[label]
		if !ok {
			bucket = &acc{}
			grouped[label] = bucket
		}
		bucket.total++
		totalReads++
		if predicate(read) {
			bucket.matched++
			totalMatched++
		}
	}

	result := &model.RateResult{Buckets: []model.RateBucket{}}
	for _, label := range sortedLabels(dim, grouped) {
		bucket := grouped[label]
		rate := 0.0
		if bucket.total > 0 {
			rate = float64(bucket.matched) / float64(bucket.total) * 100
		}
		result.Buckets = append(result.Buckets, model.RateBucket{
			Label: label,
			Value: rate,
			Count: bucket.matched,
			Total: bucket.total,
		})
	}

	if totalReads > 0 {
		result.OverallRate = float64(totalMatched) / float64(totalReads) * 100
	}
	return result, nil
}

// sortedLabels extracts map keys in chronological order
func sortedLabels[V any](dim model.TimeDimension, grouped map[string]V) []string {
	labels := make([]string, 0, len(grouped))
	for label := range grouped {
		labels = append(labels, label)
	}
	sortLabels(dim, labels)
	return labels
}
