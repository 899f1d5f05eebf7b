package service

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/book/model"
)

// ServiceInterface defines book business logic
type ServiceInterface interface {
	CreateBook(ctx context.Context, userID uuid.UUID, req model.CreateBookRequest) (*model.BookResponse, error)
	GetBook(ctx context.Context, userID, id uuid.UUID) (*model.BookResponse, error)
	UpdateBook(ctx context.Context, userID, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, userID, id uuid.UUID) error
	ListBooks(ctx context.Context, userID uuid.UUID, req *model.ListBooksRequest) (*model.ListBooksResponse, error)
}
