package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	readModel "booklog-backend/internal/domains/read/model"
	readRepository "booklog-backend/internal/domains/read/repository"
	"booklog-backend/internal/domains/semester/model"
	"booklog-backend/internal/domains/semester/repository"
	statisticsRepository "booklog-backend/internal/domains/statistics/repository"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type semesterService struct {
	semesterRepo repository.SemesterRepository
	readRepo     readRepository.ReadRepository
	statsRepo    statisticsRepository.StatisticsRepository
}

func NewSemesterService(
	semesterRepo repository.SemesterRepository,
	readRepo readRepository.ReadRepository,
	statsRepo statisticsRepository.StatisticsRepository,
) ServiceInterface {
	return &semesterService{
		semesterRepo: semesterRepo,
		readRepo:     readRepo,
		statsRepo:    statsRepo,
	}
}

func (s *semesterService) GetSemester(
	ctx context.Context,
	userID uuid.UUID,
	number int,
) (*model.SemesterResponse, error) {
	return s.buildResponse(ctx, userID, number)
}

func (s *semesterService) GetSemesterForDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (*model.SemesterResponse, error) {
	number, err := SemesterOf(date)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, userID, number)
}

func (s *semesterService) GetCurrent(ctx context.Context, userID uuid.UUID) (*model.CurrentSemesterResponse, error) {
	number, err := CurrentSemester()
	if err != nil {
		return nil, err
	}

	resp, err := s.buildResponse(ctx, userID, number)
	if err != nil {
		return nil, err
	}

	return &model.CurrentSemesterResponse{
		SemesterResponse: *resp,
		Today:            time.Now().UTC().Format("2006-01-02"),
	}, nil
}

func (s *semesterService) ListSemesters(
	ctx context.Context,
	userID uuid.UUID,
	req *model.ListSemestersRequest,
) (*model.ListSemestersResponse, error) {
	req.Normalize()

	current, err := CurrentSemester()
	if err != nil {
		return nil, err
	}

	// Step 1: load the user's annotations into a lookup
	annotations, err := s.semesterRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	customNames := make(map[int]*string, len(annotations))
	for _, annotation := range annotations {
		customNames[annotation.SemesterNumber] = annotation.CustomName
	}

	// Step 2: one reads snapshot serves every page entry
	reads, commented, err := s.loadStatsInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Step 3: walk backwards from the current semester
	numbers, hasMore := semesterPage(current, req.Limit, req.Offset)
	items := make([]*model.SemesterResponse, 0, len(numbers))
	for _, number := range numbers {
		resp, err := buildCalendarResponse(number, customNames[number], current)
		if err != nil {
			return nil, err
		}
		resp.Stats = semesterStatsFor(reads, commented, number)
		items = append(items, resp)
	}

	return &model.ListSemestersResponse{
		Items:           items,
		Total:           current,
		HasMore:         hasMore,
		CurrentSemester: current,
	}, nil
}

func (s *semesterService) UpsertAnnotation(
	ctx context.Context,
	userID uuid.UUID,
	req model.UpsertSemesterRequest,
) (*model.SemesterResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Reject numbers outside the calendar
	if _, _, err := RangeOf(req.SemesterNumber); err != nil {
		return nil, err
	}

	// Step 3: Upsert the annotation
	now := time.Now()
	semester := &model.Semester{
		ID:             uuid.New(),
		UserID:         userID,
		SemesterNumber: req.SemesterNumber,
		CustomName:     req.CustomName,
		CreatedAt:      now,
		UpdatedAt:      &now,
	}

	if err := s.semesterRepo.Upsert(ctx, semester); err != nil {
		return nil, fmt.Errorf("failed to save semester annotation: %w", err)
	}

	return s.buildResponse(ctx, userID, req.SemesterNumber)
}

func (s *semesterService) DeleteAnnotation(ctx context.Context, userID uuid.UUID, number int) error {
	if _, _, err := RangeOf(number); err != nil {
		return err
	}
	return s.semesterRepo.Delete(ctx, userID, number)
}

// =====================================================
// HELPERS
// =====================================================

func (s *semesterService) buildResponse(
	ctx context.Context,
	userID uuid.UUID,
	number int,
) (*model.SemesterResponse, error) {
	// Annotation is optional, calendar data alone is a valid answer
	var customName *string
	annotation, err := s.semesterRepo.GetByUserAndNumber(ctx, userID, number)
	if err != nil && !errors.Is(err, model.ErrSemesterNotFound) {
		return nil, err
	}
	if annotation != nil {
		customName = annotation.CustomName
	}

	current, _ := CurrentSemester()
	resp, err := buildCalendarResponse(number, customName, current)
	if err != nil {
		return nil, err
	}

	reads, commented, err := s.loadStatsInput(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Stats = semesterStatsFor(reads, commented, number)

	return resp, nil
}

// loadStatsInput fetches the user's finished reads plus which of them carry
// live comments, the raw material for per-semester aggregation.
func (s *semesterService) loadStatsInput(
	ctx context.Context,
	userID uuid.UUID,
) ([]*readModel.Read, map[uuid.UUID]struct{}, error) {
	reads, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	readIDs := make([]uuid.UUID, 0, len(reads))
	for _, read := range reads {
		readIDs = append(readIDs, read.ID)
	}

	commented, err := s.statsRepo.ListCommentedReadIDs(ctx, readIDs)
	if err != nil {
		return nil, nil, err
	}

	return reads, commented, nil
}

// semesterPage enumerates one page of semester numbers, newest first.
// The first semester on the calendar is 1, so the walk stops there.
func semesterPage(current, limit, offset int) (numbers []int, hasMore bool) {
	start := current - offset
	for i := 0; i < limit; i++ {
		number := start - i
		if number < 1 {
			break
		}
		numbers = append(numbers, number)
	}
	return numbers, start-limit >= 1
}

// semesterStatsFor aggregates the finished reads that fall inside one
// semester's range. Reads without a finish date cannot be placed on the
// calendar and are skipped here, even though they still score points.
func semesterStatsFor(
	reads []*readModel.Read,
	commented map[uuid.UUID]struct{},
	number int,
) *model.SemesterStats {
	stats := &model.SemesterStats{}
	var totalAllegory, totalReasonable readModel.Points

	for _, read := range reads {
		if !read.IsFinished() {
			continue
		}
		semester, err := SemesterOf(*read.DateFinished)
		if err != nil || semester != number {
			continue
		}

		stats.ReadsFinished++
		if !read.HasReview() {
			stats.WithoutReview++
		}
		if _, ok := commented[read.ID]; ok {
			stats.Commented++
		}
		if read.PointsAllegory != nil {
			totalAllegory += *read.PointsAllegory
		}
		if read.PointsReasonable != nil {
			totalReasonable += *read.PointsReasonable
		}
	}

	stats.TotalPointsAllegory = totalAllegory.Float()
	stats.TotalPointsReasonable = totalReasonable.Float()
	if stats.ReadsFinished > 0 {
		stats.AvgPointsAllegory = stats.TotalPointsAllegory / float64(stats.ReadsFinished)
		stats.AvgPointsReasonable = stats.TotalPointsReasonable / float64(stats.ReadsFinished)
	}

	return stats
}

func buildCalendarResponse(number int, customName *string, current int) (*model.SemesterResponse, error) {
	start, end, err := RangeOf(number)
	if err != nil {
		return nil, err
	}

	dateRange, err := FormatRange(number)
	if err != nil {
		return nil, err
	}

	return &model.SemesterResponse{
		SemesterNumber: number,
		DisplayName:    DisplayName(number, customName),
		CustomName:     customName,
		StartDate:      start.Format("2006-01-02"),
		EndDate:        end.Format("2006-01-02"),
		DateRange:      dateRange,
		IsCurrent:      number == current,
	}, nil
}
