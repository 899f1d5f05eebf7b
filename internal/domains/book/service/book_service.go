package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"booklog-backend/internal/domains/book/model"
	"booklog-backend/internal/domains/book/repository"
	readRepository "booklog-backend/internal/domains/read/repository"
	"booklog-backend/internal/shared"
	"booklog-backend/internal/shared/utils"
	"booklog-backend/pkg/logger"
)

type bookService struct {
	bookRepo    repository.BookRepository
	readRepo    readRepository.ReadRepository
	asynqClient *asynq.Client
}

func NewBookService(
	bookRepo repository.BookRepository,
	readRepo readRepository.ReadRepository,
	asynqClient *asynq.Client,
) ServiceInterface {
	return &bookService{
		bookRepo:    bookRepo,
		readRepo:    readRepo,
		asynqClient: asynqClient,
	}
}

// =====================================================
// CREATE BOOK
// =====================================================

func (s *bookService) CreateBook(ctx context.Context, userID uuid.UUID, req model.CreateBookRequest) (*model.BookResponse, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Build entity
	book := &model.Book{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            req.Title,
		Author:           req.Author,
		NormalizedAuthor: utils.NormalizeAuthorName(req.Author),
		ISBN10:           req.ISBN10,
		ISBN13:           req.ISBN13,
		PageCount:        req.PageCount,
		Language:         req.Language,
		CoverImageURL:    req.CoverImageURL,
		Description:      req.Description,
		Genres:           req.Genres,
		Series:           req.Series,
		SeriesNum:        req.SeriesNum,
		CreatedAt:        time.Now(),
	}

	if req.PublicationDate != nil {
		date, err := time.Parse("2006-01-02", *req.PublicationDate)
		if err != nil {
			return nil, model.NewInvalidPayloadError("publication_date must be YYYY-MM-DD")
		}
		book.PublicationDate = &date
	}
	if req.BookType != nil {
		bookType, _ := model.ParseBookType(*req.BookType)
		book.BookType = &bookType
	}
	format, _ := model.ParseFormat(req.Format)
	book.Format = format

	// Step 3: Persist
	if err := s.bookRepo.Create(ctx, book); err != nil {
		logger.Error("failed to create book", err)
		return nil, err
	}

	// Step 4: New author might change canon progress
	s.enqueueProgressSync(ctx, userID)

	resp := book.ToResponse()
	return &resp, nil
}

// =====================================================
// GET BOOK
// =====================================================

func (s *bookService) GetBook(ctx context.Context, userID, id uuid.UUID) (*model.BookResponse, error) {
	book, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := book.ToResponse()
	return &resp, nil
}

// =====================================================
// UPDATE BOOK
// =====================================================

func (s *bookService) UpdateBook(ctx context.Context, userID, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// Scores depend on page count and book type; flag when they move
	scoringChanged := false
	authorChanged := false

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil && *req.Author != book.Author {
		book.Author = *req.Author
		book.NormalizedAuthor = utils.NormalizeAuthorName(*req.Author)
		authorChanged = true
	}
	if req.ISBN10 != nil {
		book.ISBN10 = req.ISBN10
	}
	if req.ISBN13 != nil {
		book.ISBN13 = req.ISBN13
	}
	if req.PublicationDate != nil {
		date, err := time.Parse("2006-01-02", *req.PublicationDate)
		if err != nil {
			return nil, model.NewInvalidPayloadError("publication_date must be YYYY-MM-DD")
		}
		book.PublicationDate = &date
	}
	if req.PageCount != nil && (book.PageCount == nil || *book.PageCount != *req.PageCount) {
		book.PageCount = req.PageCount
		scoringChanged = true
	}
	if req.Language != nil {
		book.Language = req.Language
	}
	if req.CoverImageURL != nil {
		book.CoverImageURL = req.CoverImageURL
	}
	if req.Description != nil {
		book.Description = req.Description
	}
	if req.Genres != nil {
		book.Genres = req.Genres
	}
	if req.BookType != nil {
		bookType, _ := model.ParseBookType(*req.BookType)
		if book.BookType == nil || *book.BookType != bookType {
			book.BookType = &bookType
			scoringChanged = true
		}
	}
	if req.Series != nil {
		book.Series = req.Series
	}
	if req.SeriesNum != nil {
		book.SeriesNum = req.SeriesNum
	}
	if req.Format != nil {
		format, _ := model.ParseFormat(*req.Format)
		book.Format = format
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	if scoringChanged {
		s.enqueuePointsRecalc(ctx, book.ID)
	}
	if authorChanged {
		s.enqueueProgressSync(ctx, userID)
	}

	resp := book.ToResponse()
	return &resp, nil
}

// =====================================================
// DELETE BOOK
// =====================================================

func (s *bookService) DeleteBook(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.enqueueProgressSync(ctx, userID)
	return nil
}

// =====================================================
// LIST BOOKS
// =====================================================

func (s *bookService) ListBooks(ctx context.Context, userID uuid.UUID, req *model.ListBooksRequest) (*model.ListBooksResponse, error) {
	req.Normalize()

	books, total, err := s.bookRepo.List(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	responses := make([]model.BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, book.ToResponse())
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &model.ListBooksResponse{
		Books: responses,
		Pagination: model.PaginationMeta{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      int(total),
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *bookService) getOwned(ctx context.Context, userID, id uuid.UUID) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.UserID != userID {
		return nil, model.NewNotOwnerError()
	}
	return book, nil
}

// enqueuePointsRecalc re-scores every read of this book after its
// metadata changed
func (s *bookService) enqueuePointsRecalc(ctx context.Context, bookID uuid.UUID) {
	if s.asynqClient == nil {
		return
	}

	reads, err := s.readRepo.ListByBook(ctx, bookID)
	if err != nil {
		logger.Error("list reads for recalc: ", err)
		return
	}
	if len(reads) == 0 {
		return
	}

	readIDs := make([]string, 0, len(reads))
	for _, read := range reads {
		readIDs = append(readIDs, read.ID.String())
	}

	payload, err := json.Marshal(shared.RecalculateReadPointsPayload{ReadIDs: readIDs})
	if err != nil {
		return
	}

	task := asynq.NewTask(shared.TypeRecalculateReadPoints, payload)
	if _, err := s.asynqClient.EnqueueContext(
		ctx,
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	); err != nil {
		logger.Error("enqueue points recalc: ", err)
	}
}

func (s *bookService) enqueueProgressSync(ctx context.Context, userID uuid.UUID) {
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
