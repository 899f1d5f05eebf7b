package repository

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/book/model"
)

// BookRepository defines data access for books
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of a user's books plus the unpaginated total
	List(ctx context.Context, userID uuid.UUID, req *model.ListBooksRequest) ([]*model.Book, int64, error)

	// ListByUser returns the user's full library, used by analytics snapshots
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Book, error)

	// ListByAuthorNormalized returns a user's books whose normalized author
	// matches, for canon progress matching.
	ListByAuthorNormalized(ctx context.Context, userID uuid.UUID, normalizedAuthor string) ([]*model.Book, error)
}
