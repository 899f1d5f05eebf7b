package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	bookModel "booklog-backend/internal/domains/book/model"
	bookRepository "booklog-backend/internal/domains/book/repository"
	"booklog-backend/internal/domains/read/model"
	"booklog-backend/internal/domains/read/repository"
	"booklog-backend/internal/shared"
	"booklog-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type readService struct {
	readRepo    repository.ReadRepository
	bookRepo    bookRepository.BookRepository
	calculator  *PointCalculator
	asynqClient *asynq.Client
}

func NewReadService(
	readRepo repository.ReadRepository,
	bookRepo bookRepository.BookRepository,
	calculator *PointCalculator,
	asynqClient *asynq.Client,
) ServiceInterface {
	return &readService{
		readRepo:    readRepo,
		bookRepo:    bookRepo,
		calculator:  calculator,
		asynqClient: asynqClient,
	}
}

// =====================================================
// CREATE READ
// =====================================================

func (s *readService) CreateRead(
	ctx context.Context,
	userID uuid.UUID,
	req model.CreateReadRequest,
) (*model.ReadResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Verify the book exists and belongs to this user
	book, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if book.UserID != userID {
		return nil, model.NewNotOwnerError()
	}

	status, _ := model.ParseReadStatus(req.Status)

	// Step 3: Build read entity
	now := time.Now()
	read := &model.Read{
		ID:           uuid.New(),
		BookID:       req.BookID,
		UserID:       userID,
		DateStarted:  req.DateStarted,
		DateFinished: req.DateFinished,
		Status:       status,
		IsReread:     req.IsReread,
		Rating:       req.Rating,
		Review:       req.Review,
		CreatedAt:    now,
		UpdatedAt:    &now,
	}

	if req.BasePoints != nil {
		base := model.Points(*req.BasePoints)
		read.BasePoints = &base
		read.PointsOverridden = true
	}

	// Step 4: Compute scores for finished reads
	s.applyPoints(read, book)

	// Step 5: Save to database
	if err := s.readRepo.Create(ctx, read); err != nil {
		return nil, fmt.Errorf("failed to create read: %w", err)
	}

	// Step 6: Kick off author progress sync in the background
	s.enqueueProgressSync(ctx, userID)

	read.Book = book
	return read.ToResponse(), nil
}

// =====================================================
// GET READ
// =====================================================

func (s *readService) GetRead(ctx context.Context, userID, id uuid.UUID) (*model.ReadResponse, error) {
	read, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return read.ToResponse(), nil
}

// =====================================================
// UPDATE READ
// =====================================================

func (s *readService) UpdateRead(
	ctx context.Context,
	userID, id uuid.UUID,
	req model.UpdateReadRequest,
) (*model.ReadResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Load and check ownership
	read, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// Step 3: Apply provided fields
	if req.DateStarted != nil {
		read.DateStarted = req.DateStarted
	}
	if req.DateFinished != nil {
		read.DateFinished = req.DateFinished
	}
	if req.Status != nil {
		status, _ := model.ParseReadStatus(*req.Status)
		read.Status = status
	}
	if req.IsReread != nil {
		read.IsReread = *req.IsReread
	}
	if req.Rating != nil {
		read.Rating = req.Rating
	}
	if req.ClearRating {
		read.Rating = nil
	}
	if req.Review != nil {
		read.Review = req.Review
	}

	// Base point override: setting a value flips the override flag on,
	// clearing returns the read to table-driven scoring.
	if req.BasePoints != nil {
		base := model.Points(*req.BasePoints)
		read.BasePoints = &base
		read.PointsOverridden = true
	}
	if req.ClearPoints {
		read.BasePoints = nil
		read.PointsOverridden = false
	}

	if read.DateStarted != nil && read.DateFinished != nil && read.DateStarted.After(*read.DateFinished) {
		return nil, model.NewInvalidDatesError()
	}

	// Step 4: Recompute scores against current book metadata
	book, err := s.bookRepo.GetByID(ctx, read.BookID)
	if err != nil {
		return nil, err
	}
	s.applyPoints(read, book)

	// Step 5: Persist
	if err := s.readRepo.Update(ctx, read); err != nil {
		return nil, fmt.Errorf("failed to update read: %w", err)
	}

	s.enqueueProgressSync(ctx, userID)

	read.Book = book
	return read.ToResponse(), nil
}

// =====================================================
// DELETE READ
// =====================================================

func (s *readService) DeleteRead(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.readRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete read: %w", err)
	}

	s.enqueueProgressSync(ctx, userID)
	return nil
}

// =====================================================
// LIST READS
// =====================================================

func (s *readService) ListReads(
	ctx context.Context,
	userID uuid.UUID,
	req *model.ListReadsRequest,
) (*model.ListReadsResponse, error) {
	req.Normalize()

	reads, total, err := s.readRepo.List(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.ReadResponse, 0, len(reads))
	for _, read := range reads {
		responses = append(responses, read.ToResponse())
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &model.ListReadsResponse{
		Reads: responses,
		Meta: model.PaginationMeta{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

func (s *readService) ListBookReads(ctx context.Context, userID, bookID uuid.UUID) ([]*model.ReadResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.UserID != userID {
		return nil, model.NewNotOwnerError()
	}

	reads, err := s.readRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.ReadResponse, 0, len(reads))
	for _, read := range reads {
		responses = append(responses, read.ToResponse())
	}
	return responses, nil
}

// =====================================================
// POINTS RECALCULATION
// =====================================================

func (s *readService) RecalculatePoints(ctx context.Context, readID uuid.UUID) error {
	read, err := s.readRepo.GetByID(ctx, readID)
	if err != nil {
		return err
	}

	// Missing book metadata degrades to default scoring, other
	// failures abort the recalculation.
	book, err := s.bookRepo.GetByID(ctx, read.BookID)
	if err != nil {
		if !errors.Is(err, bookModel.ErrBookNotFound) {
			return err
		}
		book = nil
	}

	s.applyPoints(read, book)

	return s.readRepo.UpdatePoints(ctx, read.ID, read.PointsAllegory, read.PointsReasonable)
}

func (s *readService) RecalculateMissing(ctx context.Context, limit int) (int, error) {
	if limit < 1 {
		limit = 500
	}

	ids, err := s.readRepo.ListIDsNeedingPoints(ctx, limit)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, id := range ids {
		if err := s.RecalculatePoints(ctx, id); err != nil {
			logger.Error("recalculate read points: ", err)
			continue
		}
		updated++
	}
	return updated, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *readService) getOwned(ctx context.Context, userID, id uuid.UUID) (*model.Read, error) {
	read, err := s.readRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if read.UserID != userID {
		return nil, model.NewNotOwnerError()
	}
	return read, nil
}

// applyPoints sets or clears the computed scores in place.
// Reads outside READ status carry no scores.
func (s *readService) applyPoints(read *model.Read, book *bookModel.Book) {
	allegory, reasonable, ok := s.calculator.CalculateForRead(read, book)
	if !ok {
		read.PointsAllegory = nil
		read.PointsReasonable = nil
		return
	}
	read.PointsAllegory = &allegory
	read.PointsReasonable = &reasonable
}

func (s *readService) enqueueProgressSync(ctx context.Context, userID uuid.UUID) {
	if s.asynqClient == nil {
		return
	}

	payload, err := json.Marshal(shared.SyncAuthorProgressPayload{UserID: userID.String()})
	if err != nil {
		return
	}

	task := asynq.NewTask(shared.TypeSyncAuthorProgress, payload)
	if _, err := s.asynqClient.EnqueueContext(
		ctx,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	); err != nil {
		logger.Error("enqueue progress sync: ", err)
	}
}
