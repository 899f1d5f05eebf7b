package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authorService "booklog-backend/internal/domains/author/service"
	bookModel "booklog-backend/internal/domains/book/model"
	bookRepository "booklog-backend/internal/domains/book/repository"
	"booklog-backend/internal/domains/completionist/model"
	"booklog-backend/internal/domains/completionist/repository"
	readModel "booklog-backend/internal/domains/read/model"
	readRepository "booklog-backend/internal/domains/read/repository"
	"booklog-backend/pkg/logger"
)

type completionistService struct {
	completionistRepo repository.CompletionistRepository
	authorSvc         authorService.ServiceInterface
	bookRepo          bookRepository.BookRepository
	readRepo          readRepository.ReadRepository
}

func NewCompletionistService(
	completionistRepo repository.CompletionistRepository,
	authorSvc authorService.ServiceInterface,
	bookRepo bookRepository.BookRepository,
	readRepo readRepository.ReadRepository,
) ServiceInterface {
	return &completionistService{
		completionistRepo: completionistRepo,
		authorSvc:         authorSvc,
		bookRepo:          bookRepo,
		readRepo:          readRepo,
	}
}

// =====================================================
// CANON MANAGEMENT
// =====================================================

func (s *completionistService) EnsureCanon(ctx context.Context, authorID uuid.UUID) (*model.AuthorCanon, error) {
	canon, err := s.completionistRepo.GetCanonByAuthorID(ctx, authorID)
	if err == nil {
		return canon, nil
	}
	if !errors.Is(err, model.ErrCanonNotFound) {
		return nil, err
	}

	source := model.SourceManual
	canon = &model.AuthorCanon{
		ID:                 uuid.New(),
		AuthorID:           authorID,
		TotalWorksCount:    0,
		BibliographySource: &source,
		IsLiving:           true,
		CreatedAt:          time.Now(),
	}
	if err := s.completionistRepo.CreateCanon(ctx, canon); err != nil {
		// Lost a create race; the row exists now
		if existing, lookupErr := s.completionistRepo.GetCanonByAuthorID(ctx, authorID); lookupErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return canon, nil
}

// =====================================================
// PROGRESS SYNC
// =====================================================

func (s *completionistService) SyncUserProgress(ctx context.Context, userID uuid.UUID, canonID *uuid.UUID) error {
	// Step 1: load the user's finished reads once, grouped by book
	finished, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return err
	}

	if canonID != nil {
		return s.syncCanon(ctx, userID, *canonID, finished)
	}

	// Step 2: walk every distinct author in the user's library
	books, err := s.bookRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})
	for _, book := range books {
		if book.NormalizedAuthor == "" {
			continue
		}
		if _, done := seen[book.NormalizedAuthor]; done {
			continue
		}
		seen[book.NormalizedAuthor] = struct{}{}

		author, err := s.authorSvc.FindOrCreate(ctx, book.Author)
		if err != nil {
			logger.Error("failed to resolve author during progress sync", err)
			continue
		}
		if err := s.syncAuthor(ctx, userID, author.ID, author.NormalizedName, finished); err != nil {
			logger.Error("failed to sync author progress", err)
		}
	}
	return nil
}

func (s *completionistService) SyncAllUsers(ctx context.Context) error {
	userIDs, err := s.completionistRepo.ListUserIDsWithBooks(ctx)
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		if err := s.SyncUserProgress(ctx, userID, nil); err != nil {
			logger.Error("failed to sync user progress", err)
		}
	}
	return nil
}

func (s *completionistService) syncCanon(ctx context.Context, userID, canonID uuid.UUID, finished []*readModel.Read) error {
	canon, err := s.completionistRepo.GetCanonByID(ctx, canonID)
	if err != nil {
		if errors.Is(err, model.ErrCanonNotFound) {
			return model.NewCanonNotFoundError()
		}
		return err
	}
	author, err := s.authorSvc.GetAuthor(ctx, canon.AuthorID)
	if err != nil {
		return err
	}
	return s.syncAuthor(ctx, userID, author.ID, author.NormalizedName, finished)
}

// syncAuthor recomputes one (user, author) progress row and awards any
// achievements the new counts unlock
func (s *completionistService) syncAuthor(ctx context.Context, userID, authorID uuid.UUID, normalizedAuthor string, finished []*readModel.Read) error {
	canon, err := s.EnsureCanon(ctx, authorID)
	if err != nil {
		return err
	}

	userBooks, err := s.bookRepo.ListByAuthorNormalized(ctx, userID, normalizedAuthor)
	if err != nil {
		return err
	}

	// Finished reads of this author's books, kept in finish-date order
	reads := readsForBooks(finished, userBooks)

	readBookIDs := make(map[uuid.UUID]struct{})
	for _, read := range reads {
		readBookIDs[read.BookID] = struct{}{}
	}
	booksRead := len(readBookIDs)

	booksTotal, err := s.totalWorks(ctx, canon, normalizedAuthor, len(userBooks))
	if err != nil {
		return err
	}

	pct := 0
	if booksTotal > 0 {
		pct = booksRead * 100 / booksTotal
	}

	progress := &model.AuthorProgress{
		ID:                   uuid.New(),
		UserID:               userID,
		AuthorCanonID:        canon.ID,
		BooksReadCount:       booksRead,
		BooksTotalCount:      booksTotal,
		CompletionPercentage: pct,
		CreatedAt:            time.Now(),
	}
	if len(reads) > 0 {
		first, last := reads[0], reads[len(reads)-1]
		progress.FirstBookReadID = &first.BookID
		progress.FirstReadDate = first.DateFinished
		progress.MostRecentBookReadID = &last.BookID
		progress.MostRecentReadDate = last.DateFinished
	}

	if err := s.completionistRepo.UpsertProgress(ctx, progress); err != nil {
		return err
	}

	return s.awardAchievements(ctx, userID, canon.ID, progress)
}

// totalWorks resolves the denominator for completion: the curated canon
// size, then distinct titles by this author across the whole system, then
// the user's own shelf as a last resort.
func (s *completionistService) totalWorks(ctx context.Context, canon *model.AuthorCanon, normalizedAuthor string, userBookCount int) (int, error) {
	if canon.TotalWorksCount > 0 {
		return canon.TotalWorksCount, nil
	}
	count, err := s.completionistRepo.CountDistinctTitlesByAuthor(ctx, normalizedAuthor)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return count, nil
	}
	return userBookCount, nil
}

func (s *completionistService) awardAchievements(ctx context.Context, userID, canonID uuid.UUID, progress *model.AuthorProgress) error {
	var types []string
	if progress.CompletionPercentage >= model.CompleteThreshold {
		types = append(types, model.AchievementCanonComplete)
	}
	if progress.CompletionPercentage >= model.NearlyThereThreshold {
		types = append(types, model.AchievementNearlyThere)
	}
	if progress.BooksReadCount >= model.DeepDiveThreshold {
		types = append(types, model.AchievementDeepDive)
	}

	for _, achievementType := range types {
		id := canonID
		achievement := &model.Achievement{
			ID:              uuid.New(),
			UserID:          userID,
			AchievementType: achievementType,
			AuthorCanonID:   &id,
			AwardedAt:       time.Now(),
		}
		if err := s.completionistRepo.AwardAchievement(ctx, achievement); err != nil {
			return err
		}
	}
	return nil
}

// =====================================================
// QUERIES
// =====================================================

func (s *completionistService) ListProgress(ctx context.Context, userID uuid.UUID, req *model.ListProgressRequest) ([]*model.ProgressEntry, int64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	req.Normalize()
	return s.completionistRepo.ListProgress(ctx, userID, req)
}

func (s *completionistService) AuthorDetail(ctx context.Context, userID, canonID uuid.UUID) (*model.AuthorDetailResponse, error) {
	progress, err := s.completionistRepo.GetProgress(ctx, userID, canonID)
	if err != nil {
		if errors.Is(err, model.ErrProgressNotFound) {
			return nil, model.NewProgressNotFoundError()
		}
		return nil, err
	}

	canon, err := s.completionistRepo.GetCanonByID(ctx, canonID)
	if err != nil {
		return nil, err
	}
	author, err := s.authorSvc.GetAuthor(ctx, canon.AuthorID)
	if err != nil {
		return nil, err
	}

	works, err := s.completionistRepo.ListMajorWorks(ctx, canonID)
	if err != nil {
		return nil, err
	}
	userBooks, err := s.bookRepo.ListByAuthorNormalized(ctx, userID, author.NormalizedName)
	if err != nil {
		return nil, err
	}
	finished, err := s.readRepo.ListFinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reads := readsForBooks(finished, userBooks)
	readByBook := make(map[uuid.UUID]*readModel.Read)
	readBookIDs := make(map[uuid.UUID]struct{})
	for _, read := range reads {
		readByBook[read.BookID] = read
		readBookIDs[read.BookID] = struct{}{}
	}

	timeline := buildTimeline(works, userBooks, readByBook)

	achievements, err := s.completionistRepo.ListAchievementTypes(ctx, userID, canonID)
	if err != nil {
		return nil, err
	}

	return &model.AuthorDetailResponse{
		AuthorCanonID:        canonID,
		AuthorName:           author.Name,
		AuthorPhotoURL:       author.PhotoURL,
		BooksRead:            progress.BooksReadCount,
		BooksTotal:           progress.BooksTotalCount,
		CompletionPercentage: progress.CompletionPercentage,
		Achievements:         achievements,
		ReadingPattern:       buildReadingPattern(timeline),
		Timeline:             timeline,
		Recommendations:      buildRecommendations(works, userBooks, readBookIDs),
	}, nil
}

// =====================================================
// GOALS + ACHIEVEMENTS
// =====================================================

func (s *completionistService) SetGoal(ctx context.Context, userID uuid.UUID, req model.SetGoalRequest) (*model.AuthorProgress, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}
	canonID, err := uuid.Parse(req.AuthorCanonID)
	if err != nil {
		return nil, model.NewCanonNotFoundError()
	}

	// Step 2: Update the goal flag on the existing progress row
	if err := s.completionistRepo.UpdateGoal(ctx, userID, canonID, req.IsGoal, req.GoalDeadline); err != nil {
		if errors.Is(err, model.ErrProgressNotFound) {
			return nil, model.NewProgressNotFoundError()
		}
		return nil, err
	}

	return s.completionistRepo.GetProgress(ctx, userID, canonID)
}

func (s *completionistService) ListAchievements(ctx context.Context, userID uuid.UUID) ([]*model.AchievementEntry, error) {
	return s.completionistRepo.ListAchievementsByUser(ctx, userID)
}

func (s *completionistService) Leaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.completionistRepo.Leaderboard(ctx, limit)
}

// readsForBooks filters a finish-date-ordered read list down to the
// given books, preserving order
func readsForBooks(finished []*readModel.Read, books []*bookModel.Book) []*readModel.Read {
	bookIDs := make(map[uuid.UUID]struct{}, len(books))
	for _, book := range books {
		bookIDs[book.ID] = struct{}{}
	}

	reads := make([]*readModel.Read, 0)
	for _, read := range finished {
		if _, ok := bookIDs[read.BookID]; ok {
			reads = append(reads, read)
		}
	}
	return reads
}
