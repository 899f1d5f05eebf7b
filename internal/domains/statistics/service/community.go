package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	readModel "booklog-backend/internal/domains/read/model"
	"booklog-backend/internal/domains/statistics/model"
	"booklog-backend/pkg/logger"
)

// Community analytics compare reading activity across every user. The
// snapshots are recomputed from scratch on each cache miss, results are
// cached briefly since they only change when someone logs a read.

const (
	communityCacheTTL = 10 * time.Minute

	defaultMinUserCount       = 2
	defaultSentimentThreshold = 1.5
	defaultConjugationLimit   = 10

	// Reads without a start date get a 30-day window ending at the
	// finish date when estimating reading periods.
	estimatedPeriodDays = 30
)

// =====================================================
// READS IN COMMON
// =====================================================

func (s *statisticsService) ReadsInCommon(ctx context.Context, minUserCount int) ([]model.ReadsInCommonEntry, error) {
	if minUserCount < 2 {
		minUserCount = defaultMinUserCount
	}

	cacheKey := fmt.Sprintf("community:reads_in_common:%d", minUserCount)
	var cached []model.ReadsInCommonEntry
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	reads, err := s.statsRepo.ListAllFinishedReads(ctx)
	if err != nil {
		return nil, err
	}

	groups := groupByIdentity(reads)
	infos, err := s.userInfosFor(ctx, reads)
	if err != nil {
		return nil, err
	}

	result := buildReadsInCommon(groups, minUserCount, infos)

	if err := s.cache.Set(ctx, cacheKey, result, communityCacheTTL); err != nil {
		logger.Error("cache community reads in common: ", err)
	}
	return result, nil
}

func buildReadsInCommon(
	groups []*identityGroup,
	minUserCount int,
	infos map[uuid.UUID]model.UserInfo,
) []model.ReadsInCommonEntry {
	result := []model.ReadsInCommonEntry{}

	for _, group := range groups {
		users := make(map[uuid.UUID]struct{})
		formats := make(map[string]struct{})
		var userList []model.UserInfo

		for _, read := range group.reads {
			if _, seen := users[read.UserID]; !seen {
				users[read.UserID] = struct{}{}
				userList = append(userList, lookupUserInfo(infos, read.UserID))
			}
			if read.Book != nil && read.Book.Format != "" {
				formats[string(read.Book.Format)] = struct{}{}
			}
		}

		if len(users) < minUserCount {
			continue
		}

		formatList := make([]string, 0, len(formats))
		for format := range formats {
			formatList = append(formatList, format)
		}
		sort.Strings(formatList)

		result = append(result, model.ReadsInCommonEntry{
			BookID:    group.bookID,
			Title:     group.title,
			Author:    group.author,
			UserCount: len(users),
			ReadCount: len(group.reads),
			Formats:   formatList,
			Users:     userList,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UserCount > result[j].UserCount
	})
	return result
}

// =====================================================
// SIMILAR SENTIMENT
// =====================================================

func (s *statisticsService) SimilarSentiment(ctx context.Context, threshold float64) ([]model.SimilarSentimentEntry, error) {
	if threshold <= 0 {
		threshold = defaultSentimentThreshold
	}

	cacheKey := fmt.Sprintf("community:similar_sentiment:%.2f", threshold)
	var cached []model.SimilarSentimentEntry
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	reads, err := s.statsRepo.ListAllRatedReads(ctx)
	if err != nil {
		return nil, err
	}

	groups := groupByIdentity(reads)
	infos, err := s.userInfosFor(ctx, reads)
	if err != nil {
		return nil, err
	}

	result := buildSimilarSentiment(groups, threshold, infos)

	if err := s.cache.Set(ctx, cacheKey, result, communityCacheTTL); err != nil {
		logger.Error("cache community sentiment: ", err)
	}
	return result, nil
}

func buildSimilarSentiment(
	groups []*identityGroup,
	threshold float64,
	infos map[uuid.UUID]model.UserInfo,
) []model.SimilarSentimentEntry {
	result := []model.SimilarSentimentEntry{}

	for _, group := range groups {
		var ratings []float64
		var raters []*readModel.Read

		for _, read := range group.reads {
			if read.Rating == nil {
				continue
			}
			ratings = append(ratings, read.Rating.InexactFloat64())
			raters = append(raters, read)
		}

		// A single opinion is not a consensus
		if len(ratings) < 2 {
			continue
		}

		stdDev := sampleStdDev(ratings)
		if stdDev > threshold {
			continue
		}

		userRatings := make(map[string]float64, len(raters))
		var userList []model.UserInfo
		for i, read := range raters {
			info := lookupUserInfo(infos, read.UserID)
			userRatings[info.Username] = ratings[i]
			userList = append(userList, info)
		}

		result = append(result, model.SimilarSentimentEntry{
			BookID:        group.bookID,
			Title:         group.title,
			Author:        group.author,
			AverageRating: mean(ratings),
			RatingStdDev:  stdDev,
			UserRatings:   userRatings,
			Users:         userList,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AverageRating > result[j].AverageRating
	})
	return result
}

// =====================================================
// CONJUGATION HIGHLIGHTS
// =====================================================

func (s *statisticsService) ConjugationHighlights(ctx context.Context, limit int) ([]model.ConjugationEntry, error) {
	if limit <= 0 {
		limit = defaultConjugationLimit
	}

	cacheKey := fmt.Sprintf("community:conjugation:%d", limit)
	var cached []model.ConjugationEntry
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	reads, err := s.statsRepo.ListAllFinishedReads(ctx)
	if err != nil {
		return nil, err
	}

	groups := groupByIdentity(reads)
	infos, err := s.userInfosFor(ctx, reads)
	if err != nil {
		return nil, err
	}

	result := buildConjugation(groups, limit, infos)

	if err := s.cache.Set(ctx, cacheKey, result, communityCacheTTL); err != nil {
		logger.Error("cache community conjugation: ", err)
	}
	return result, nil
}

func buildConjugation(
	groups []*identityGroup,
	limit int,
	infos map[uuid.UUID]model.UserInfo,
) []model.ConjugationEntry {
	result := []model.ConjugationEntry{}

	for _, group := range groups {
		if len(group.reads) < 2 {
			continue
		}

		periods := make(map[string]model.ReadingPeriod)
		finishDates := make(map[string]time.Time)
		var userList []model.ConjugationUser

		for _, read := range group.reads {
			if read.DateFinished == nil {
				continue
			}

			info := lookupUserInfo(infos, read.UserID)

			// Use the logged start date when present, otherwise estimate
			// a 30-day window ending at the finish date.
			start := read.DateFinished.AddDate(0, 0, -estimatedPeriodDays)
			if read.DateStarted != nil {
				start = *read.DateStarted
			}

			periods[info.Username] = model.ReadingPeriod{
				StartDate: start,
				EndDate:   *read.DateFinished,
			}
			finishDates[info.Username] = *read.DateFinished

			var format *string
			if read.Book != nil && read.Book.Format != "" {
				f := string(read.Book.Format)
				format = &f
			}
			userList = append(userList, model.ConjugationUser{UserInfo: info, Format: format})
		}

		if len(finishDates) < 2 {
			continue
		}

		// Spread of finish dates in days
		var dates []time.Time
		for _, d := range finishDates {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		dateRange := daysBetween(dates[0], dates[len(dates)-1])

		// Average pairwise overlap of reading periods
		usernames := make([]string, 0, len(periods))
		for username := range periods {
			usernames = append(usernames, username)
		}
		sort.Strings(usernames)

		var overlaps []float64
		for i := 0; i < len(usernames); i++ {
			for j := i + 1; j < len(usernames); j++ {
				p1, p2 := periods[usernames[i]], periods[usernames[j]]
				overlaps = append(overlaps, overlapPercentage(
					p1.StartDate, p1.EndDate, p2.StartDate, p2.EndDate))
			}
		}
		avgOverlap := mean(overlaps)

		// Any book read by multiple users is surfaced, distant reading
		// windows just land in the lowest tier.
		score := model.ScoreLow
		switch {
		case dateRange <= 2 || avgOverlap >= 80.0:
			score = model.ScoreHigh
		case dateRange <= 4 || avgOverlap >= 50.0:
			score = model.ScoreMedium
		}

		// Intersection of all reading periods, for visualization
		var overlapDates []time.Time
		intersectStart, intersectEnd := periods[usernames[0]].StartDate, periods[usernames[0]].EndDate
		for _, username := range usernames[1:] {
			period := periods[username]
			if period.StartDate.After(intersectStart) {
				intersectStart = period.StartDate
			}
			if period.EndDate.Before(intersectEnd) {
				intersectEnd = period.EndDate
			}
		}
		if !intersectStart.After(intersectEnd) {
			overlapDates = []time.Time{intersectStart, intersectEnd}
		}

		result = append(result, model.ConjugationEntry{
			BookID:            group.bookID,
			Title:             group.title,
			Author:            group.author,
			Score:             score,
			FinishDates:       finishDates,
			ReadingPeriods:    periods,
			OverlapPercentage: avgOverlap,
			OverlapDates:      overlapDates,
			Users:             userList,
		})
	}

	scoreOrder := map[model.ConjugationScore]int{
		model.ScoreHigh:   3,
		model.ScoreMedium: 2,
		model.ScoreLow:    1,
	}
	sort.SliceStable(result, func(i, j int) bool {
		return scoreOrder[result[i].Score] > scoreOrder[result[j].Score]
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// =====================================================
// CACHE MAINTENANCE
// =====================================================

func (s *statisticsService) RefreshCommunityCache(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, "community:*")
}

// =====================================================
// HELPERS
// =====================================================

func (s *statisticsService) userInfosFor(ctx context.Context, reads []*readModel.Read) (map[uuid.UUID]model.UserInfo, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, read := range reads {
		if _, ok := seen[read.UserID]; !ok {
			seen[read.UserID] = struct{}{}
			ids = append(ids, read.UserID)
		}
	}
	return s.statsRepo.GetUserInfos(ctx, ids)
}

// lookupUserInfo falls back to a placeholder when the user row is gone
func lookupUserInfo(infos map[uuid.UUID]model.UserInfo, userID uuid.UUID) model.UserInfo {
	if info, ok := infos[userID]; ok {
		return info
	}
	name := "user_" + userID.String()[:8]
	return model.UserInfo{
		UserID:      userID,
		Username:    name,
		DisplayName: name,
	}
}

// overlapPercentage measures how much two inclusive date ranges overlap,
// as a percentage of the shorter range.
func overlapPercentage(start1, end1, start2, end2 time.Time) float64 {
	overlapStart := start1
	if start2.After(overlapStart) {
		overlapStart = start2
	}
	overlapEnd := end1
	if end2.Before(overlapEnd) {
		overlapEnd = end2
	}

	if overlapStart.After(overlapEnd) {
		return 0.0
	}

	overlapDays := daysBetween(overlapStart, overlapEnd) + 1
	range1Days := daysBetween(start1, end1) + 1
	range2Days := daysBetween(start2, end2) + 1

	minRange := range1Days
	if range2Days < minRange {
		minRange = range2Days
	}
	if minRange == 0 {
		return 0.0
	}

	return float64(overlapDays) / float64(minRange) * 100.0
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the n-1 standard deviation, undefined below 2 samples
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
